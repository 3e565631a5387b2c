// ABOUTME: HTTP handler for the health endpoint
// ABOUTME: Reports process liveness and whether the upstream API is configured

package handlers

import "net/http"

// HealthResponse is the /health body
type HealthResponse struct {
	Status   string `json:"status"`
	Upstream string `json:"upstream"`
}

// Health reports liveness. The upstream is not called.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "ok", Upstream: "not_configured"}
	if h.upstream.Configured() {
		resp.Upstream = "ok"
	}
	h.writeJSON(w, http.StatusOK, resp)
}
