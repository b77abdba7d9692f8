package container

import (
	"github.com/jaevor/go-nanoid"
	"github.com/samber/do"
	"github.com/serroba/qr-code-manager/internal/auth"
	"github.com/serroba/qr-code-manager/internal/ratelimit"
	"github.com/serroba/qr-code-manager/internal/store"
	"go.uber.org/zap"
)

const tokenIDLength = 21

func AuthPackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (auth.Authenticator, error) {
		opts := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)

		return auth.NewStaticAuthenticator(opts.AuthConfig(), logger.Named("auth")), nil
	})

	do.Provide(i, func(i *do.Injector) (*auth.Issuer, error) {
		opts := do.MustInvoke[*Options](i)

		newID, err := nanoid.Standard(tokenIDLength)
		if err != nil {
			return nil, err
		}

		return auth.NewIssuer(opts.AuthConfig(), newID)
	})

	do.Provide(i, func(i *do.Injector) (*auth.Verifier, error) {
		opts := do.MustInvoke[*Options](i)

		return auth.NewVerifier(opts.AuthConfig())
	})
}

func RateLimitPackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (*ratelimit.PolicyLimiter, error) {
		opts := do.MustInvoke[*Options](i)

		var backend ratelimit.Store = store.NewRateLimitMemoryStore()
		if opts.RateLimitBackend == BackendRedis {
			backend = store.NewRedisRateLimitStore(do.MustInvoke[*Redis](i).Client)
		}

		return ratelimit.NewPolicyLimiter(backend, ratelimit.DefaultPolicy()), nil
	})
}
