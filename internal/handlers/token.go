package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/qr-code-manager/internal/auth"
	"go.uber.org/zap"
)

// TokenType is reported with every issued token.
const TokenType = "bearer"

// TokenIssuer signs tokens for authenticated identities.
type TokenIssuer interface {
	Issue(identity auth.Identity, ttl time.Duration) (string, error)
}

// TokenHandler exchanges admin credentials for a bearer token.
type TokenHandler struct {
	authenticator auth.Authenticator
	issuer        TokenIssuer
	ttl           time.Duration
	logger        *zap.Logger
}

// NewTokenHandler creates a token handler issuing tokens valid for ttl.
func NewTokenHandler(
	authenticator auth.Authenticator,
	issuer TokenIssuer,
	ttl time.Duration,
	logger *zap.Logger,
) *TokenHandler {
	return &TokenHandler{
		authenticator: authenticator,
		issuer:        issuer,
		ttl:           ttl,
		logger:        logger,
	}
}

func (h *TokenHandler) Login(ctx context.Context, req *TokenRequest) (*TokenResponse, error) {
	form, err := url.ParseQuery(string(req.RawBody))
	if err != nil {
		return nil, huma.Error400BadRequest("malformed form body", err)
	}

	username, password := form.Get("username"), form.Get("password")
	if username == "" || password == "" {
		return nil, huma.Error422UnprocessableEntity("username and password are required")
	}

	identity, err := h.authenticator.Authenticate(ctx, username, password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return nil, Unauthorized("Incorrect username or password")
		}

		h.logger.Error("authentication backend failed", zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to authenticate")
	}

	token, err := h.issuer.Issue(*identity, h.ttl)
	if err != nil {
		h.logger.Error("failed to issue token",
			zap.String("username", identity.Username),
			zap.Error(err),
		)

		return nil, huma.Error500InternalServerError("failed to issue token")
	}

	resp := &TokenResponse{}
	resp.Body.AccessToken = token
	resp.Body.TokenType = TokenType

	return resp, nil
}

// Unauthorized returns a 401 error carrying the bearer challenge header.
func Unauthorized(msg string) error {
	return huma.ErrorWithHeaders(
		huma.Error401Unauthorized(msg),
		http.Header{"WWW-Authenticate": {"Bearer"}},
	)
}
