package health

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/redis/go-redis/v9"
	"github.com/serroba/qr-code-manager/internal/ratelimit"
)

const (
	statusOK        = "ok"
	statusDegraded  = "degraded"
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"
	statusDisabled  = "disabled"
)

// Checker defines the interface for checking service health.
type Checker interface {
	Ping(ctx context.Context) error
}

// RedisChecker adapts redis.Client to Checker interface.
type RedisChecker struct {
	client *redis.Client
}

// NewRedisChecker creates a new Redis health checker.
func NewRedisChecker(client *redis.Client) *RedisChecker {
	return &RedisChecker{client: client}
}

// Ping checks Redis connectivity.
func (r *RedisChecker) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Handler handles health check operations.
type Handler struct {
	redis   Checker
	storage Checker
}

// NewHandler creates a new health handler. A nil redis checker is reported as disabled.
func NewHandler(redis Checker, storage Checker) *Handler {
	return &Handler{redis: redis, storage: storage}
}

// Response is the response for health check endpoint.
type Response struct {
	Body struct {
		Status  string `enum:"ok,degraded" json:"status"`
		Redis   string `json:"redis"`
		Storage string `json:"storage"`
	}
}

// Check performs a health check of the application and its dependencies.
func (h *Handler) Check(ctx context.Context, _ *struct{}) (*Response, error) {
	resp := &Response{}
	resp.Body.Status = statusOK

	resp.Body.Redis = h.probe(ctx, h.redis, &resp.Body.Status)
	resp.Body.Storage = h.probe(ctx, h.storage, &resp.Body.Status)

	return resp, nil
}

func (h *Handler) probe(ctx context.Context, checker Checker, status *string) string {
	if checker == nil {
		return statusDisabled
	}

	if err := checker.Ping(ctx); err != nil {
		*status = statusDegraded

		return statusUnhealthy
	}

	return statusHealthy
}

// RegisterRoutes registers health check routes. Health probes are not rate limited.
func RegisterRoutes(api huma.API, h *Handler) {
	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Tags:        []string{"Health"},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{Disabled: true},
		},
	}, h.Check)
}
