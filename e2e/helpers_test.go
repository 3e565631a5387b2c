// ABOUTME: Test helpers for e2e tests
// ABOUTME: Provides a mock upstream, token minting and the full middleware-wrapped stack

package e2e

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/edududs/PoliticSystem/config"
	"github.com/edududs/PoliticSystem/handlers"
	"github.com/edududs/PoliticSystem/internal/client"
	"github.com/edududs/PoliticSystem/metrics"
	"github.com/edududs/PoliticSystem/middleware"
	"github.com/edududs/PoliticSystem/serverauth"
	"github.com/edududs/PoliticSystem/services"
	"github.com/edududs/PoliticSystem/views"
)

var signingKey = []byte("e2e-signing-key")

const aliceProfile = `{"id":7,"username":"alice","name":"Alice Souza","email":"alice@example.com","is_active":true,"date_birth":"1990-03-01"}`

// withTestEnv sets environment variables, returning a cleanup function that
// restores the original values.
//
// Example:
//
//	func TestSomething(t *testing.T) {
//	    t.Cleanup(withTestEnv(t, map[string]string{
//	        "CORS_ALLOWED_ORIGINS": "https://example.com",
//	    }))
//	}
func withTestEnv(t *testing.T, vars map[string]string) func() {
	t.Helper()

	originals := make(map[string]*string, len(vars))
	for key := range vars {
		if value, ok := os.LookupEnv(key); ok {
			originals[key] = &value
		} else {
			originals[key] = nil
		}
	}

	for key, value := range vars {
		os.Setenv(key, value)
	}

	return func() {
		for key, value := range originals {
			if value == nil {
				os.Unsetenv(key)
			} else {
				os.Setenv(key, *value)
			}
		}
	}
}

// mintToken signs an access token the way the upstream issues them
func mintToken(t *testing.T, userID string, ttl time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"token_type": "access",
		"user_id":    userID,
		"exp":        time.Now().Add(ttl).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(signingKey)
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}
	return token
}

// mockUpstream is the identity/profile API. It accepts alice/secret and
// validates bearer tokens by signature.
type mockUpstream struct {
	*httptest.Server

	mu          sync.Mutex
	accessToken string
	meCalls     int
	logoutCalls int
}

func newMockUpstream(t *testing.T, accessToken string) *mockUpstream {
	t.Helper()
	m := &mockUpstream{accessToken: accessToken}
	m.Server = httptest.NewServer(http.HandlerFunc(m.serve))
	t.Cleanup(m.Close)
	return m
}

func (m *mockUpstream) serve(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	defer m.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	bearer := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")

	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/token/pair":
		var creds map[string]string
		json.NewDecoder(r.Body).Decode(&creds)
		if creds["username"] != "alice" || creds["password"] != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"detail":"No active account found with the given credentials"}`))
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"access": m.accessToken, "refresh": "refresh-" + creds["username"]})

	case r.Method == http.MethodPost && r.URL.Path == "/auth/logout":
		m.logoutCalls++
		w.Write([]byte(`{}`))

	case r.Method == http.MethodGet && r.URL.Path == "/users/me":
		m.meCalls++
		if !validToken(bearer) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"detail":"Given token not valid for any token type"}`))
			return
		}
		w.Write([]byte(aliceProfile))

	case r.Method == http.MethodGet && r.URL.Path == "/users/":
		w.Write([]byte("[" + aliceProfile + "]"))

	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (m *mockUpstream) counts() (me, logout int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.meCalls, m.logoutCalls
}

func validToken(token string) bool {
	parsed, err := jwt.Parse(token, func(*jwt.Token) (interface{}, error) {
		return signingKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	return err == nil && parsed.Valid
}

// newStack builds the full server the way the serve command does. In loopback
// mode the auth helper calls back into the returned server itself.
func newStack(t *testing.T, cfg *config.Config, limiter *middleware.RateLimiter) *httptest.Server {
	t.Helper()

	var root http.Handler
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		root.ServeHTTP(w, r)
	}))
	t.Cleanup(server.Close)

	if cfg.PublicBaseURL == "" {
		cfg.PublicBaseURL = server.URL
	}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := metrics.New()
	upstream := services.NewUpstreamClient(cfg.UpstreamURL, nil, m)

	var source serverauth.UserSource = serverauth.NewLoopbackSource(client.New(cfg.PublicBaseURL))
	if cfg.AuthHelperMode == config.AuthHelperDirect {
		source = serverauth.NewDirectSource(upstream)
	}

	renderer, err := views.NewRenderer()
	if err != nil {
		t.Fatalf("Failed to parse templates: %v", err)
	}

	h := handlers.NewHandler(cfg, upstream, serverauth.New(source, log), renderer, m)
	mux := handlers.NewMux(h.Routes(), func(route handlers.Route) http.HandlerFunc {
		chain := []middleware.Middleware{middleware.LogRequest, m.Instrument, middleware.Recover}
		if route.RateLimited && limiter != nil {
			chain = append(chain, middleware.RateLimit(limiter, middleware.ClientIP))
		}
		return middleware.Chain(route.Handler, chain...)
	})
	root = middleware.CORS(cfg.CORSAllowedOrigins)(mux.ServeHTTP)

	return server
}

// noRedirectClient returns a client that keeps cookies and surfaces redirects
func noRedirectClient(jar http.CookieJar) *http.Client {
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read body: %v", err)
	}
	return string(data)
}
