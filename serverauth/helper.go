// ABOUTME: Server-side auth helper used by page handlers
// ABOUTME: Resolves the signed-in user for a request or redirects anonymous visitors to /login

package serverauth

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/edududs/PoliticSystem/models"
	"github.com/edududs/PoliticSystem/services"
)

// LoginPath is where RequireAuth sends anonymous visitors
const LoginPath = "/login"

// ErrUnauthorized is returned by a UserSource when the token is not accepted
var ErrUnauthorized = errors.New("not authenticated")

// UserSource fetches the profile that belongs to an access token
type UserSource interface {
	FetchUser(ctx context.Context, accessToken string) (*models.User, error)
}

// Helper answers "who is signed in?" for server-rendered pages. It never
// returns errors to callers: anything other than a clean answer is logged and
// treated as anonymous.
type Helper struct {
	source UserSource
	logger *slog.Logger
	now    func() time.Time
}

// New creates a helper backed by source. A nil logger uses slog.Default.
func New(source UserSource, logger *slog.Logger) *Helper {
	if logger == nil {
		logger = slog.Default()
	}
	return &Helper{source: source, logger: logger, now: time.Now}
}

// GetServerUser returns the current user or nil
func (h *Helper) GetServerUser(r *http.Request) *models.User {
	token, ok := services.ResolveAccessToken(services.SourcesFromRequest(r))
	if !ok {
		return nil
	}

	// An expired JWT would only earn a 401 upstream
	if claims, ok := services.InspectAccessToken(token); ok && claims.Expired(h.now()) {
		h.logger.Debug("Access token expired, skipping profile lookup", "user_id", claims.UserID)
		return nil
	}

	user, err := h.source.FetchUser(r.Context(), token)
	if err != nil {
		if !errors.Is(err, ErrUnauthorized) {
			h.logger.Error("Failed to resolve server user", "path", services.SanitizeForLog(r.URL.Path), "error", err)
		}
		return nil
	}
	return user
}

// RequireAuth returns the current user, or writes a 303 redirect to the login
// page and returns false.
func (h *Helper) RequireAuth(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	user := h.GetServerUser(r)
	if user == nil {
		http.Redirect(w, r, LoginPath, http.StatusSeeOther)
		return nil, false
	}
	return user, true
}

// IsAuthenticated reports whether the request carries a usable session
func (h *Helper) IsAuthenticated(r *http.Request) bool {
	return h.GetServerUser(r) != nil
}
