package handlers_test

import (
	"context"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/serroba/qr-code-manager/internal/analytics"
	"github.com/serroba/qr-code-manager/internal/auth"
	"github.com/serroba/qr-code-manager/internal/handlers"
	"github.com/serroba/qr-code-manager/internal/messaging"
	"github.com/serroba/qr-code-manager/internal/qrcode"
	"github.com/serroba/qr-code-manager/internal/store"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	testBaseAPIURL  = "http://localhost:8888"
	testDownloadURL = "http://localhost:8888/downloads"
	testSecret      = "test-secret"
	testTokenTTL    = 30 * time.Minute
)

var testAuthConfig = auth.Config{
	AdminUsername: "admin",
	AdminPassword: "secret",
	SecretKey:     testSecret,
	Algorithm:     "HS256",
}

// recorder captures published events.
type recorder[T any] struct {
	events []*T
	err    error
}

func (r *recorder[T]) publish(_ context.Context, event *T) error {
	if r.err != nil {
		return r.err
	}

	r.events = append(r.events, event)

	return nil
}

type testEnv struct {
	api     humatest.TestAPI
	storage qrcode.Storage
	created *recorder[analytics.QRCodeCreatedEvent]
	deleted *recorder[analytics.QRCodeDeletedEvent]
}

type envOption func(*envConfig)

type envConfig struct {
	issuer  handlers.TokenIssuer
	storage qrcode.Storage
	pubErr  error
}

func withIssuer(issuer handlers.TokenIssuer) envOption {
	return func(c *envConfig) { c.issuer = issuer }
}

func withStorage(storage qrcode.Storage) envOption {
	return func(c *envConfig) { c.storage = storage }
}

func withPublishError(err error) envOption {
	return func(c *envConfig) { c.pubErr = err }
}

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()

	cfg := &envConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.issuer == nil {
		issuer, err := auth.NewIssuer(testAuthConfig, func() string { return "test-jti" })
		require.NoError(t, err)

		cfg.issuer = issuer
	}

	if cfg.storage == nil {
		fs, err := store.NewFileStorage(t.TempDir())
		require.NoError(t, err)

		cfg.storage = fs
	}

	created := &recorder[analytics.QRCodeCreatedEvent]{err: cfg.pubErr}
	deleted := &recorder[analytics.QRCodeDeletedEvent]{err: cfg.pubErr}

	tokenHandler := handlers.NewTokenHandler(
		auth.NewStaticAuthenticator(testAuthConfig, zap.NewNop()),
		cfg.issuer,
		testTokenTTL,
		zap.NewNop(),
	)
	qrHandler := handlers.NewQRCodeHandler(
		cfg.storage,
		qrcode.NewGenerator(),
		testBaseAPIURL,
		testDownloadURL,
		messaging.Publish[analytics.QRCodeCreatedEvent](created.publish),
		messaging.Publish[analytics.QRCodeDeletedEvent](deleted.publish),
		zap.NewNop(),
	)

	_, api := humatest.New(t)
	handlers.RegisterRoutes(api, tokenHandler, qrHandler)

	return &testEnv{
		api:     api,
		storage: cfg.storage,
		created: created,
		deleted: deleted,
	}
}
