// ABOUTME: Declarative route table for API endpoints and pages
// ABOUTME: Defines all routes with their HTTP methods, handlers and rate limiting

package handlers

import (
	"net/http"

	"github.com/edududs/PoliticSystem/middleware"
)

// Route defines an endpoint with its HTTP method and handler.
type Route struct {
	Method      string           // HTTP method (GET, POST, etc.)
	Path        string           // ServeMux path pattern (e.g., "/api/users/me")
	Handler     http.HandlerFunc // Handler function
	RateLimited bool             // Subject to the per-client login limiter
}

// Pattern returns the ServeMux pattern for the route
func (r Route) Pattern() string {
	return r.Method + " " + r.Path
}

// Routes returns all routes for registration. Pages are only included when
// the handler has a renderer and an auth helper; /metrics only with metrics.
func (h *Handler) Routes() []Route {
	routes := []Route{
		// BFF API
		{Method: http.MethodPost, Path: "/api/auth/login", Handler: h.Login, RateLimited: true},
		{Method: http.MethodPost, Path: "/api/auth/logout", Handler: h.Logout},
		{Method: http.MethodGet, Path: "/api/users/me", Handler: h.Me},
		{Method: http.MethodGet, Path: "/api/users", Handler: h.ListUsers},

		// Operations
		{Method: http.MethodGet, Path: "/health", Handler: h.Health},
	}

	if h.metrics != nil {
		routes = append(routes, Route{Method: http.MethodGet, Path: "/metrics", Handler: h.metrics.Handler().ServeHTTP})
	}

	if h.views != nil && h.auth != nil {
		routes = append(routes,
			Route{Method: http.MethodGet, Path: "/{$}", Handler: middleware.WithUser(h.auth)(h.Home)},
			Route{Method: http.MethodGet, Path: "/login", Handler: middleware.WithUser(h.auth)(h.LoginPage)},
			Route{Method: http.MethodGet, Path: "/perfil", Handler: middleware.RequireUser(h.auth)(h.Profile)},
		)
	}

	return routes
}

// NewMux registers routes on a fresh ServeMux. wrap, when non-nil, decorates
// each handler (middleware chain) before registration.
func NewMux(routes []Route, wrap func(Route) http.HandlerFunc) *http.ServeMux {
	mux := http.NewServeMux()
	for _, route := range routes {
		handler := route.Handler
		if wrap != nil {
			handler = wrap(route)
		}
		mux.HandleFunc(route.Pattern(), handler)
	}
	return mux
}
