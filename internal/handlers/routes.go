package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/qr-code-manager/internal/ratelimit"
)

// BearerScheme names the security scheme protected operations declare.
const BearerScheme = "bearer"

var bearerSecurity = []map[string][]string{{BearerScheme: {}}}

// RegisterRoutes registers the token and QR code routes with per-endpoint rate limit configuration.
func RegisterRoutes(api huma.API, tokenHandler *TokenHandler, qrHandler *QRCodeHandler) {
	// POST /token - Exchange credentials for a bearer token
	// Counted against the auth scope to slow down password guessing
	huma.Register(api, huma.Operation{
		OperationID: "issue-token",
		Method:      http.MethodPost,
		Path:        "/token",
		Summary:     "Issue access token",
		Description: "Exchanges the admin username and password for a signed bearer token.",
		Tags:        []string{"Auth"},
		Errors:      []int{http.StatusUnauthorized},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{Scope: ratelimit.ScopeAuth},
		},
	}, tokenHandler.Login)

	huma.Register(api, huma.Operation{
		OperationID:   "create-qr-code",
		Method:        http.MethodPost,
		Path:          "/qr-codes",
		Summary:       "Create QR code",
		Description:   "Renders the URL as a PNG QR code and stores it under its encoded filename.",
		Tags:          []string{"QR Codes"},
		DefaultStatus: http.StatusCreated,
		Errors:        []int{http.StatusUnauthorized, http.StatusConflict},
		Security:      bearerSecurity,
	}, qrHandler.Create)

	huma.Register(api, huma.Operation{
		OperationID: "list-qr-codes",
		Method:      http.MethodGet,
		Path:        "/qr-codes",
		Summary:     "List QR codes",
		Description: "Lists every stored QR code with the URL it encodes.",
		Tags:        []string{"QR Codes"},
		Errors:      []int{http.StatusUnauthorized},
		Security:    bearerSecurity,
	}, qrHandler.List)

	huma.Register(api, huma.Operation{
		OperationID:   "delete-qr-code",
		Method:        http.MethodDelete,
		Path:          "/qr-codes/{filename}",
		Summary:       "Delete QR code",
		Tags:          []string{"QR Codes"},
		DefaultStatus: http.StatusNoContent,
		Errors:        []int{http.StatusBadRequest, http.StatusUnauthorized, http.StatusNotFound},
		Security:      bearerSecurity,
	}, qrHandler.Delete)

	// GET /downloads/{filename} - Public image download
	// High-traffic reads, so they use the read scope
	huma.Register(api, huma.Operation{
		OperationID: "download-qr-code",
		Method:      http.MethodGet,
		Path:        "/downloads/{filename}",
		Summary:     "Download QR code image",
		Tags:        []string{"Downloads"},
		Errors:      []int{http.StatusBadRequest, http.StatusNotFound},
		Responses: map[string]*huma.Response{
			"200": {
				Description: "PNG image",
				Content:     map[string]*huma.MediaType{"image/png": {}},
			},
		},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{Scope: ratelimit.ScopeRead},
		},
	}, qrHandler.Download)
}
