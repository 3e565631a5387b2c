// ABOUTME: Auth handlers implementing the BFF credential exchange
// ABOUTME: Login stores the upstream token pair in httpOnly cookies; logout clears them

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/edududs/PoliticSystem/middleware"
	"github.com/edududs/PoliticSystem/models"
	"github.com/edududs/PoliticSystem/services"
)

// Login exchanges credentials for a token pair and stores it in cookies.
// No cookie is set on any failure.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		h.writeAppError(w, r, services.NewMissingCredentials(err))
		return
	}

	if err := services.ValidateLogin(&req); err != nil {
		h.writeAppError(w, r, asAppError(err, services.NewMissingCredentials))
		return
	}

	if !h.upstream.Configured() {
		h.writeAppError(w, r, services.NewConfigurationError())
		return
	}

	pair, err := h.upstream.ObtainTokenPair(r.Context(), req.Username, req.Password)
	if err != nil {
		slog.Warn("Authentication failed",
			"request_id", middleware.RequestID(r.Context()),
			"username", services.SanitizeForLog(req.Username),
			"upstream_status", services.UpstreamStatus(err),
		)
		h.writeAppError(w, r, services.LoginFailure(err))
		return
	}

	h.cookies.Write(w, pair)

	slog.Info("Login succeeded",
		"request_id", middleware.RequestID(r.Context()),
		"username", services.SanitizeForLog(req.Username),
	)
	h.writeJSON(w, http.StatusOK, models.MessageResponse{Message: services.MsgLoginSuccess})
}

// Logout notifies the upstream best-effort and always clears both cookies.
// The response is 200 whatever happened upstream.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	token, ok := services.ResolveAccessToken(services.SourcesFromRequest(r))
	if ok {
		if err := h.upstream.Logout(r.Context(), token); err != nil {
			slog.Warn("Upstream logout failed, clearing session anyway",
				"request_id", middleware.RequestID(r.Context()),
				"error", err,
			)
		}
	}

	h.cookies.Clear(w)
	h.writeJSON(w, http.StatusOK, models.MessageResponse{Message: services.MsgLogoutSuccess})
}
