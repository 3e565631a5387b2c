// ABOUTME: Cookie-backed session credential store for the BFF
// ABOUTME: Writes/clears the token cookies and resolves the access token from request sources

package services

import (
	"net/http"
	"strings"

	"github.com/edududs/PoliticSystem/models"
)

const (
	AccessTokenCookie  = "access_token"
	RefreshTokenCookie = "refresh_token"

	AccessTokenMaxAge  = 60 * 60 * 24 * 7  // 1 week
	RefreshTokenMaxAge = 60 * 60 * 24 * 30 // 30 days
)

// SessionCookies owns the Session Credential Pair cookies. The cookies are the
// only session state; nothing is kept server-side.
type SessionCookies struct {
	secure bool
}

// NewSessionCookies creates a cookie store. secure sets the Secure attribute.
func NewSessionCookies(secure bool) *SessionCookies {
	return &SessionCookies{secure: secure}
}

// Write sets the access token cookie and, when present, the refresh token cookie
func (s *SessionCookies) Write(w http.ResponseWriter, pair *models.TokenPair) {
	http.SetCookie(w, s.cookie(AccessTokenCookie, pair.Access, AccessTokenMaxAge))
	if pair.Refresh != "" {
		http.SetCookie(w, s.cookie(RefreshTokenCookie, pair.Refresh, RefreshTokenMaxAge))
	}
}

// Clear expires both session cookies
func (s *SessionCookies) Clear(w http.ResponseWriter) {
	http.SetCookie(w, s.cookie(AccessTokenCookie, "", -1))
	http.SetCookie(w, s.cookie(RefreshTokenCookie, "", -1))
}

func (s *SessionCookies) cookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   maxAge,
	}
}

// TokenSources are the places an access token may arrive in
type TokenSources struct {
	Jar       []*http.Cookie // parsed cookie jar of the request
	RawHeader string         // raw Cookie header, for server-to-server calls
}

// SourcesFromRequest collects the token sources of r
func SourcesFromRequest(r *http.Request) TokenSources {
	return TokenSources{Jar: r.Cookies(), RawHeader: r.Header.Get("Cookie")}
}

// ResolveAccessToken returns the access token, checking the cookie jar first and
// the raw Cookie header second.
func ResolveAccessToken(src TokenSources) (string, bool) {
	for _, c := range src.Jar {
		if c.Name == AccessTokenCookie && c.Value != "" {
			return c.Value, true
		}
	}

	if src.RawHeader == "" {
		return "", false
	}
	token := parseRawCookies(src.RawHeader)[AccessTokenCookie]
	return token, token != ""
}

// parseRawCookies splits a Cookie header leniently. Later duplicates win and
// values are taken verbatim after the first '='.
func parseRawCookies(header string) map[string]string {
	out := make(map[string]string)
	for _, part := range strings.Split(header, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, value, _ := strings.Cut(part, "=")
		out[strings.TrimSpace(name)] = value
	}
	return out
}
