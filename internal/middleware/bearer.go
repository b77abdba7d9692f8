package middleware

import (
	"net/http"
	"slices"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/qr-code-manager/internal/auth"
	"go.uber.org/zap"
)

// TokenVerifier validates a bearer token and returns its identity.
type TokenVerifier interface {
	Verify(token string) (*auth.Identity, error)
}

// Bearer returns a Huma middleware that requires a valid bearer token on every
// operation whose security requirements name scheme. Other operations pass through.
// The verified identity is stored in the request context.
func Bearer(
	api huma.API,
	verifier TokenVerifier,
	scheme string,
	logger *zap.Logger,
) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		if !requiresScheme(ctx.Operation(), scheme) {
			next(ctx)

			return
		}

		token, ok := bearerToken(ctx.Header("Authorization"))
		if !ok {
			writeUnauthorized(api, ctx, "Not authenticated")

			return
		}

		identity, err := verifier.Verify(token)
		if err != nil {
			logger.Debug("rejected bearer token",
				zap.String("path", getOperationPath(ctx)),
				zap.String("client_ip", clientIP(ctx)),
				zap.Error(err),
			)
			writeUnauthorized(api, ctx, "Could not validate credentials")

			return
		}

		next(huma.WithContext(ctx, auth.ContextWithIdentity(ctx.Context(), identity)))
	}
}

func requiresScheme(op *huma.Operation, scheme string) bool {
	if op == nil {
		return false
	}

	return slices.ContainsFunc(op.Security, func(req map[string][]string) bool {
		_, ok := req[scheme]

		return ok
	})
}

func bearerToken(header string) (string, bool) {
	kind, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(kind, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)

	return token, token != ""
}

func writeUnauthorized(api huma.API, ctx huma.Context, msg string) {
	ctx.SetHeader("WWW-Authenticate", "Bearer")
	_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, msg)
}
