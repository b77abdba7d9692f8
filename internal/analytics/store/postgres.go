package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/serroba/qr-code-manager/internal/analytics"
)

const (
	eventCreated = "created"
	eventDeleted = "deleted"
)

const schema = `
	CREATE TABLE IF NOT EXISTS qr_code_events (
		event_id    TEXT PRIMARY KEY,
		event_type  TEXT NOT NULL,
		filename    TEXT NOT NULL,
		url         TEXT NOT NULL,
		fill_color  TEXT,
		back_color  TEXT,
		size        INTEGER,
		actor       TEXT NOT NULL,
		client_ip   TEXT,
		user_agent  TEXT,
		occurred_at TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS qr_code_events_filename_idx ON qr_code_events (filename);
`

// Postgres persists QR code events into the qr_code_events table.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres creates a new PostgreSQL-backed analytics store.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// EnsureSchema creates the events table if it does not exist.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, schema)

	return err
}

func (p *Postgres) SaveCreated(ctx context.Context, event *analytics.QRCodeCreatedEvent) error {
	query := `
		INSERT INTO qr_code_events
			(event_id, event_type, filename, url, fill_color, back_color, size, actor, client_ip, user_agent, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (event_id) DO NOTHING
	`

	_, err := p.pool.Exec(ctx, query,
		event.EventID,
		eventCreated,
		event.Filename,
		event.URL,
		nullableString(event.FillColor),
		nullableString(event.BackColor),
		event.Size,
		event.Actor,
		nullableString(event.ClientIP),
		nullableString(event.UserAgent),
		event.CreatedAt,
	)

	return err
}

func (p *Postgres) SaveDeleted(ctx context.Context, event *analytics.QRCodeDeletedEvent) error {
	query := `
		INSERT INTO qr_code_events
			(event_id, event_type, filename, url, actor, client_ip, user_agent, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (event_id) DO NOTHING
	`

	_, err := p.pool.Exec(ctx, query,
		event.EventID,
		eventDeleted,
		event.Filename,
		event.URL,
		event.Actor,
		nullableString(event.ClientIP),
		nullableString(event.UserAgent),
		event.DeletedAt,
	)

	return err
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}

var _ analytics.Store = (*Postgres)(nil)
