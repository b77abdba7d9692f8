package container

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor" // CBOR format support for huma
	"github.com/go-chi/chi/v5"
	"github.com/samber/do"
	"github.com/serroba/qr-code-manager/internal/analytics"
	"github.com/serroba/qr-code-manager/internal/auth"
	"github.com/serroba/qr-code-manager/internal/handlers"
	"github.com/serroba/qr-code-manager/internal/health"
	"github.com/serroba/qr-code-manager/internal/messaging"
	"github.com/serroba/qr-code-manager/internal/middleware"
	"github.com/serroba/qr-code-manager/internal/qrcode"
	"github.com/serroba/qr-code-manager/internal/ratelimit"
	"go.uber.org/zap"
)

// NewAPIConfig returns the huma config with the bearer security scheme declared.
func NewAPIConfig() huma.Config {
	config := huma.DefaultConfig("QR Code Manager", "1.0.0")
	if config.Components.SecuritySchemes == nil {
		config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{}
	}

	config.Components.SecuritySchemes[handlers.BearerScheme] = &huma.SecurityScheme{
		Type: "oauth2",
		Flows: &huma.OAuthFlows{
			Password: &huma.OAuthFlow{
				TokenURL: "/token",
				Scopes:   map[string]string{},
			},
		},
	}

	return config
}

func HTTPPackage(i *do.Injector) {
	do.Provide(i, func(_ *do.Injector) (*chi.Mux, error) {
		return chi.NewMux(), nil
	})

	do.Provide(i, func(i *do.Injector) (huma.API, error) {
		opts := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)
		router := do.MustInvoke[*chi.Mux](i)

		api := humachi.New(router, NewAPIConfig())

		api.UseMiddleware(middleware.RequestMeta(api))
		api.UseMiddleware(middleware.PolicyRateLimiter(
			api,
			do.MustInvoke[*ratelimit.PolicyLimiter](i),
			ratelimit.NewOperationScopeResolver(),
			logger.Named("ratelimit"),
		))
		api.UseMiddleware(middleware.Bearer(
			api,
			do.MustInvoke[*auth.Verifier](i),
			handlers.BearerScheme,
			logger.Named("auth"),
		))

		storage := do.MustInvoke[qrcode.Storage](i)
		publishCreated, publishDeleted := newEventPublishers(i, opts)

		tokenHandler := handlers.NewTokenHandler(
			do.MustInvoke[auth.Authenticator](i),
			do.MustInvoke[*auth.Issuer](i),
			opts.AuthConfig().TokenTTL,
			logger,
		)
		qrHandler := handlers.NewQRCodeHandler(
			storage,
			qrcode.NewGenerator(),
			opts.BaseURL,
			opts.DownloadURL,
			publishCreated,
			publishDeleted,
			logger,
		)

		handlers.RegisterRoutes(api, tokenHandler, qrHandler)

		var redisChecker health.Checker
		if opts.RedisEnabled() {
			redisChecker = health.NewRedisChecker(do.MustInvoke[*Redis](i).Client)
		}

		health.RegisterRoutes(api, health.NewHandler(redisChecker, storage))

		return api, nil
	})
}

// newEventPublishers drops events when the events backend is none.
func newEventPublishers(
	i *do.Injector,
	opts *Options,
) (messaging.Publish[analytics.QRCodeCreatedEvent], messaging.Publish[analytics.QRCodeDeletedEvent]) {
	if opts.EventsBackend == BackendNone {
		return messaging.Discard[analytics.QRCodeCreatedEvent](), messaging.Discard[analytics.QRCodeDeletedEvent]()
	}

	publisher := do.MustInvoke[*messaging.PublisherGroup](i).Publisher()

	return messaging.NewPublishFunc[analytics.QRCodeCreatedEvent](publisher, analytics.TopicQRCodeCreated),
		messaging.NewPublishFunc[analytics.QRCodeDeletedEvent](publisher, analytics.TopicQRCodeDeleted)
}
