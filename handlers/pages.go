// ABOUTME: Server-rendered page handlers
// ABOUTME: Home, login and profile pages backed by the server-side auth helper

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/edududs/PoliticSystem/middleware"
	"github.com/edududs/PoliticSystem/views"
)

// Home renders the authenticated or unauthenticated home page. Expects the
// user to be resolved by middleware.WithUser.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		h.render(w, r, views.PageHomeAnon, nil)
		return
	}
	h.render(w, r, views.PageHome, views.NewHomeData(user, h.now()))
}

// LoginPage renders the login form, sending signed-in users home
func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if middleware.GetUser(r) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.render(w, r, views.PageLogin, nil)
}

// Profile renders the profile page. Expects middleware.RequireUser.
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	h.render(w, r, views.PageProfile, views.ProfileData{User: user})
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, page string, data any) {
	if err := h.views.Render(w, http.StatusOK, page, data); err != nil {
		slog.Error("Failed to render page",
			"request_id", middleware.RequestID(r.Context()),
			"page", page,
			"error", err,
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
