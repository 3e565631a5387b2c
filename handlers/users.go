// ABOUTME: User handlers relaying the upstream profile API
// ABOUTME: Bodies are passed through verbatim; nothing is cached

package handlers

import (
	"net/http"

	"github.com/edududs/PoliticSystem/services"
)

// Me returns the signed-in user's profile exactly as the upstream sent it.
// The token comes from the cookie jar, or the raw Cookie header for
// server-to-server callers.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	token, ok := services.ResolveAccessToken(services.SourcesFromRequest(r))
	if !ok {
		h.writeAppError(w, r, services.NewNoTokenError())
		return
	}

	if !h.upstream.Configured() {
		h.writeAppError(w, r, services.NewConfigurationError())
		return
	}

	profile, err := h.upstream.CurrentUser(r.Context(), token)
	if err != nil {
		h.writeAppError(w, r, services.BackendFailure(err))
		return
	}

	h.writeRawJSON(w, http.StatusOK, profile)
}

// ListUsers relays the upstream user collection
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	if !h.upstream.Configured() {
		h.writeAppError(w, r, services.NewConfigurationError())
		return
	}

	users, err := h.upstream.ListUsers(r.Context())
	if err != nil {
		h.writeAppError(w, r, services.BackendFailure(err))
		return
	}

	h.writeRawJSON(w, http.StatusOK, users)
}
