// ABOUTME: Page guards backed by the server-side auth helper
// ABOUTME: Resolve the current user once per request and stash it in the context

package middleware

import (
	"context"
	"net/http"

	"github.com/edududs/PoliticSystem/models"
)

// contextKey is a private type for context keys to avoid collisions
type contextKey string

const userKey contextKey = "user"

// UserResolver looks up the signed-in user for a request, returning nil when anonymous
type UserResolver interface {
	GetServerUser(r *http.Request) *models.User
}

// WithUser resolves the user (possibly nil) and makes it available through GetUser
func WithUser(resolver UserResolver) Middleware {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			next(w, withUser(r, resolver.GetServerUser(r)))
		}
	}
}

// AuthGuard returns the user or answers the request itself (typically with a
// redirect to the login page)
type AuthGuard interface {
	RequireAuth(w http.ResponseWriter, r *http.Request) (*models.User, bool)
}

// RequireUser lets only signed-in users reach next
func RequireUser(guard AuthGuard) Middleware {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			user, ok := guard.RequireAuth(w, r)
			if !ok {
				return
			}
			next(w, withUser(r, user))
		}
	}
}

// GetUser returns the user stashed by WithUser or RequireUser
func GetUser(r *http.Request) *models.User {
	user, _ := r.Context().Value(userKey).(*models.User)
	return user
}

func withUser(r *http.Request, user *models.User) *http.Request {
	if user == nil {
		return r
	}
	return r.WithContext(context.WithValue(r.Context(), userKey, user))
}
