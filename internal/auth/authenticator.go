package auth

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

var ErrInvalidCredentials = errors.New("incorrect username or password")

// DefaultTokenTTL is used when a token is issued without an explicit lifetime.
const DefaultTokenTTL = 15 * time.Minute

// Config holds the process-wide credential and signing settings.
// It is built once at startup and never mutated.
type Config struct {
	AdminUsername string
	AdminPassword string
	SecretKey     string
	Algorithm     string
	TokenTTL      time.Duration
}

// Identity is the authenticated principal a token is issued for.
type Identity struct {
	Username string
}

// Authenticator checks a username/password pair.
type Authenticator interface {
	// Authenticate returns the identity for valid credentials or ErrInvalidCredentials.
	Authenticate(ctx context.Context, username, password string) (*Identity, error)
}

// StaticAuthenticator accepts only the single configured admin credential.
type StaticAuthenticator struct {
	username string
	password string
	logger   *zap.Logger
}

// NewStaticAuthenticator creates an authenticator for the admin credential in cfg.
func NewStaticAuthenticator(cfg Config, logger *zap.Logger) *StaticAuthenticator {
	return &StaticAuthenticator{
		username: cfg.AdminUsername,
		password: cfg.AdminPassword,
		logger:   logger,
	}
}

func (a *StaticAuthenticator) Authenticate(_ context.Context, username, password string) (*Identity, error) {
	if username == a.username && password == a.password {
		return &Identity{Username: username}, nil
	}

	a.logger.Warn("authentication failed", zap.String("username", username))

	return nil, ErrInvalidCredentials
}

// Compile-time check.
var _ Authenticator = (*StaticAuthenticator)(nil)
