// ABOUTME: HTTP handlers for the BFF API and server-rendered pages
// ABOUTME: Shared handler state plus JSON response helpers

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/edududs/PoliticSystem/config"
	"github.com/edududs/PoliticSystem/metrics"
	"github.com/edududs/PoliticSystem/middleware"
	"github.com/edududs/PoliticSystem/models"
	"github.com/edududs/PoliticSystem/serverauth"
	"github.com/edududs/PoliticSystem/services"
	"github.com/edududs/PoliticSystem/views"
)

// maxBodyBytes bounds request bodies the BFF decodes
const maxBodyBytes = 1 << 20

type Handler struct {
	cfg      *config.Config
	upstream *services.UpstreamClient
	cookies  *services.SessionCookies
	auth     *serverauth.Helper
	views    *views.Renderer
	metrics  *metrics.Metrics
	now      func() time.Time
}

// NewHandler wires the handler. auth, renderer and m may be nil in API-only
// setups; the routes that need them are then left out of Routes.
func NewHandler(cfg *config.Config, upstream *services.UpstreamClient, auth *serverauth.Helper, renderer *views.Renderer, m *metrics.Metrics) *Handler {
	if cfg == nil {
		cfg = &config.Config{}
	}
	if upstream == nil {
		upstream = services.NewUpstreamClient(cfg.UpstreamURL, nil, m)
	}
	return &Handler{
		cfg:      cfg,
		upstream: upstream,
		cookies:  services.NewSessionCookies(cfg.CookieSecure),
		auth:     auth,
		views:    renderer,
		metrics:  m,
		now:      time.Now,
	}
}

// writeJSON writes a JSON response with the given status code
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
	}
}

// writeRawJSON relays an already-encoded JSON body unchanged
func (h *Handler) writeRawJSON(w http.ResponseWriter, status int, body json.RawMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		slog.Debug("Failed to write response body", "error", err)
	}
}

// writeError writes the error body every BFF failure uses: {"error": message}
func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	h.writeJSON(w, code, models.ErrorResponse{Error: message})
}

// writeAppError surfaces a normalized failure and logs its cause
func (h *Handler) writeAppError(w http.ResponseWriter, r *http.Request, appErr *services.Error) {
	attrs := []any{
		"request_id", middleware.RequestID(r.Context()),
		"path", services.SanitizeForLog(r.URL.Path),
		"kind", appErr.Kind,
		"status", appErr.Status,
	}
	if appErr.Err != nil {
		attrs = append(attrs, "error", appErr.Err)
	}

	switch appErr.Kind {
	case services.KindMissingInput, services.KindInvalidCredentials, services.KindUnauthorized:
		slog.Debug("Request rejected", attrs...)
	default:
		slog.Error("Request failed", attrs...)
	}

	h.writeError(w, appErr.Message, appErr.Status)
}

// asAppError converts err into a *services.Error, using fallback for unknown errors
func asAppError(err error, fallback func(error) *services.Error) *services.Error {
	var appErr *services.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return fallback(err)
}
