// ABOUTME: Shared fixtures for handler tests
// ABOUTME: A fake upstream API and a handler wired against it

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/edududs/PoliticSystem/config"
	"github.com/edududs/PoliticSystem/metrics"
	"github.com/edududs/PoliticSystem/services"
)

const testProfile = `{"id":7,"username":"alice","name":"Alice Souza","email":"alice@example.com","is_active":true,"date_joined":"2024-01-10T12:00:00Z","date_birth":"1990-03-01","contacts":[{"id":1,"value":"+55 11 99999-0000","type":"whatsapp"}]}`

// fakeUpstream mimics the identity/profile API
type fakeUpstream struct {
	*httptest.Server

	mu          sync.Mutex
	tokenStatus int    // 0 = success
	tokenBody   string // overrides the success body
	logoutFail  bool
	meStatus    int // 0 = success
	usersStatus int // 0 = success
	logoutCalls int
	lastBearer  string
}

func newFakeUpstream(t *testing.T) *fakeUpstream {
	t.Helper()
	f := &fakeUpstream{}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.Close)
	return f
}

func (f *fakeUpstream) serve(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.lastBearer = strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")

	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/token/pair":
		if f.tokenStatus != 0 {
			w.WriteHeader(f.tokenStatus)
			w.Write([]byte(`{"detail":"No active account found with the given credentials"}`))
			return
		}
		var creds map[string]string
		json.NewDecoder(r.Body).Decode(&creds)
		if creds["username"] != "alice" || creds["password"] != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"detail":"No active account found with the given credentials"}`))
			return
		}
		body := f.tokenBody
		if body == "" {
			body = `{"access":"acc-token","refresh":"ref-token"}`
		}
		w.Write([]byte(body))

	case r.Method == http.MethodPost && r.URL.Path == "/auth/logout":
		f.logoutCalls++
		if f.logoutFail {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{}`))

	case r.Method == http.MethodGet && r.URL.Path == "/users/me":
		if f.meStatus != 0 {
			w.WriteHeader(f.meStatus)
			w.Write([]byte(`{"detail":"Unauthorized"}`))
			return
		}
		if f.lastBearer != "acc-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(testProfile))

	case r.Method == http.MethodGet && r.URL.Path == "/users/":
		if f.usersStatus != 0 {
			w.WriteHeader(f.usersStatus)
			return
		}
		w.Write([]byte(`[{"id":7,"username":"alice"},{"id":8,"username":"bob"}]`))

	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

// newTestHandler builds an API-only handler pointed at upstreamURL ("" = unconfigured)
func newTestHandler(upstreamURL string) (*Handler, *metrics.Metrics) {
	cfg := &config.Config{UpstreamURL: upstreamURL}
	m := metrics.New()
	return NewHandler(cfg, services.NewUpstreamClient(upstreamURL, nil, m), nil, nil, m), m
}

func cookieByName(resp *http.Response, name string) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode error body: %v", err)
	}
	if len(body) != 1 {
		t.Errorf("error body should only carry the error field, got %v", body)
	}
	msg, _ := body["error"].(string)
	return msg
}
