package store

import (
	"context"

	"github.com/serroba/qr-code-manager/internal/analytics"
	"go.uber.org/zap"
)

// Noop is a no-op implementation of analytics.Store that logs events.
type Noop struct {
	logger *zap.Logger
}

// NewNoop creates a new no-op analytics store.
func NewNoop(logger *zap.Logger) *Noop {
	return &Noop{logger: logger}
}

func (n *Noop) SaveCreated(_ context.Context, event *analytics.QRCodeCreatedEvent) error {
	n.logger.Info("qr code created event received",
		zap.String("eventId", event.EventID),
		zap.String("filename", event.Filename),
		zap.String("url", event.URL),
		zap.String("actor", event.Actor),
		zap.Int("size", event.Size),
		zap.Time("createdAt", event.CreatedAt),
	)

	return nil
}

func (n *Noop) SaveDeleted(_ context.Context, event *analytics.QRCodeDeletedEvent) error {
	n.logger.Info("qr code deleted event received",
		zap.String("eventId", event.EventID),
		zap.String("filename", event.Filename),
		zap.String("actor", event.Actor),
		zap.Time("deletedAt", event.DeletedAt),
	)

	return nil
}

var _ analytics.Store = (*Noop)(nil)
