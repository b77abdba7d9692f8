package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/serroba/qr-code-manager/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func parseClaims(t *testing.T, token, secret string) *jwt.RegisteredClaims {
	t.Helper()

	claims := &jwt.RegisteredClaims{}

	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithoutClaimsValidation())
	require.NoError(t, err)

	return claims
}

func TestNewIssuer(t *testing.T) {
	t.Run("accepts hmac algorithms", func(t *testing.T) {
		for _, alg := range []string{"HS256", "HS384", "HS512"} {
			cfg := testConfig()
			cfg.Algorithm = alg

			issuer, err := auth.NewIssuer(cfg, nil)

			require.NoError(t, err, alg)
			assert.NotNil(t, issuer)
		}
	})

	t.Run("rejects non hmac algorithms", func(t *testing.T) {
		for _, alg := range []string{"RS256", "none", "", "HS1"} {
			cfg := testConfig()
			cfg.Algorithm = alg

			_, err := auth.NewIssuer(cfg, nil)

			assert.ErrorIs(t, err, auth.ErrUnsupportedAlgorithm, alg)
		}
	})

	t.Run("rejects empty secret", func(t *testing.T) {
		cfg := testConfig()
		cfg.SecretKey = ""

		_, err := auth.NewIssuer(cfg, nil)

		assert.ErrorIs(t, err, auth.ErrMissingSecret)
	})
}

func TestIssuer_Issue(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("sets subject and expiry", func(t *testing.T) {
		issuer, err := auth.NewIssuer(testConfig(), func() string { return "token-id" })
		require.NoError(t, err)

		token, err := issuer.WithClock(fixedClock(now)).Issue(auth.Identity{Username: testUser}, 30*time.Minute)
		require.NoError(t, err)

		claims := parseClaims(t, token, testSecret)
		assert.Equal(t, testUser, claims.Subject)
		assert.Equal(t, now.Add(30*time.Minute).Unix(), claims.ExpiresAt.Unix())
		assert.Equal(t, now.Unix(), claims.IssuedAt.Unix())
		assert.Equal(t, "token-id", claims.ID)
	})

	t.Run("defaults to fifteen minutes", func(t *testing.T) {
		issuer, err := auth.NewIssuer(testConfig(), nil)
		require.NoError(t, err)

		for _, ttl := range []time.Duration{0, -time.Minute} {
			token, err := issuer.WithClock(fixedClock(now)).Issue(auth.Identity{Username: testUser}, ttl)
			require.NoError(t, err)

			claims := parseClaims(t, token, testSecret)
			assert.Equal(t, now.Add(auth.DefaultTokenTTL).Unix(), claims.ExpiresAt.Unix())
			assert.Empty(t, claims.ID)
		}
	})

	t.Run("signs with configured algorithm", func(t *testing.T) {
		cfg := testConfig()
		cfg.Algorithm = "HS512"

		issuer, err := auth.NewIssuer(cfg, nil)
		require.NoError(t, err)

		token, err := issuer.Issue(auth.Identity{Username: testUser}, time.Minute)
		require.NoError(t, err)

		parsed, _, err := jwt.NewParser().ParseUnverified(token, &jwt.RegisteredClaims{})
		require.NoError(t, err)
		assert.Equal(t, "HS512", parsed.Method.Alg())
	})

	t.Run("different secret fails verification", func(t *testing.T) {
		issuer, err := auth.NewIssuer(testConfig(), nil)
		require.NoError(t, err)

		token, err := issuer.Issue(auth.Identity{Username: testUser}, time.Minute)
		require.NoError(t, err)

		_, err = jwt.Parse(token, func(*jwt.Token) (any, error) {
			return []byte("other-secret"), nil
		})
		assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
	})
}
