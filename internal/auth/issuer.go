package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrUnsupportedAlgorithm = errors.New("unsupported signing algorithm")
	ErrMissingSecret        = errors.New("signing secret is empty")
	ErrSigning              = errors.New("failed to sign token")
)

// IDGenerator produces unique token identifiers.
type IDGenerator func() string

// Issuer signs access tokens for authenticated identities.
type Issuer struct {
	secret []byte
	method jwt.SigningMethod
	newID  IDGenerator
	now    func() time.Time
}

// NewIssuer creates an issuer from the configured secret and HMAC algorithm.
func NewIssuer(cfg Config, newID IDGenerator) (*Issuer, error) {
	method, err := hmacMethod(cfg.Algorithm)
	if err != nil {
		return nil, err
	}

	if cfg.SecretKey == "" {
		return nil, ErrMissingSecret
	}

	return &Issuer{
		secret: []byte(cfg.SecretKey),
		method: method,
		newID:  newID,
		now:    time.Now,
	}, nil
}

// WithClock returns a copy of the issuer that reads the current time from now.
func (i *Issuer) WithClock(now func() time.Time) *Issuer {
	cp := *i
	cp.now = now

	return &cp
}

// Issue signs a token for identity that expires after ttl.
// A non-positive ttl falls back to DefaultTokenTTL.
func (i *Issuer) Issue(identity Identity, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}

	now := i.now()

	claims := jwt.RegisteredClaims{
		Subject:   identity.Username,
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	if i.newID != nil {
		claims.ID = i.newID()
	}

	signed, err := jwt.NewWithClaims(i.method, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSigning, err)
	}

	return signed, nil
}

func hmacMethod(name string) (jwt.SigningMethod, error) {
	method := jwt.GetSigningMethod(name)
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, name)
	}

	return method, nil
}
