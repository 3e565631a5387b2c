// ABOUTME: Unverified inspection of upstream-issued JWT access tokens
// ABOUTME: Extracts expiry and user id so stale sessions skip the profile lookup

package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is what the BFF reads out of an access token. The signature is
// NOT verified here: the upstream remains the only authority on validity, so
// these values must never grant access on their own.
type TokenClaims struct {
	UserID    string
	ExpiresAt time.Time
}

// Expired reports whether the token carries an exp claim that is in the past
func (c *TokenClaims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}

// InspectAccessToken parses a JWT without verifying it. Opaque tokens return false.
func InspectAccessToken(token string) (*TokenClaims, bool) {
	if token == "" {
		return nil, false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, false
	}

	out := &TokenClaims{
		UserID: claimString(claims["user_id"]),
	}
	if out.UserID == "" {
		out.UserID = claimString(claims["sub"])
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}

	return out, true
}

func claimString(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return fmt.Sprintf("%.0f", val)
	default:
		return ""
	}
}
