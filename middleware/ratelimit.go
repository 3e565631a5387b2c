// ABOUTME: Rate limiting middleware with per-client token buckets
// ABOUTME: Buckets live in a TTL cache keyed by client IP so idle clients are forgotten

package middleware

import (
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/edududs/PoliticSystem/cache"
	"github.com/edududs/PoliticSystem/services"
)

// RateLimiter allows a steady number of requests per minute per key with a
// burst of the same size.
type RateLimiter struct {
	buckets *cache.Cache[*rate.Limiter]
	limit   rate.Limit
	burst   int
}

// NewRateLimiter creates a limiter allowing perMinute requests per key. A key
// idle for longer than idle loses its bucket.
func NewRateLimiter(perMinute int, idle time.Duration) *RateLimiter {
	if perMinute < 1 {
		perMinute = 1
	}
	return &RateLimiter{
		buckets: cache.New[*rate.Limiter](idle),
		limit:   rate.Every(time.Minute / time.Duration(perMinute)),
		burst:   perMinute,
	}
}

// Allow reports whether a request for key may proceed. When it may not, the
// returned duration is how long until a token is available.
func (rl *RateLimiter) Allow(key string) (bool, time.Duration) {
	bucket := rl.buckets.GetOrCreate(key, func() *rate.Limiter {
		return rate.NewLimiter(rl.limit, rl.burst)
	})

	res := bucket.Reserve()
	if delay := res.Delay(); delay > 0 {
		res.Cancel()
		return false, delay
	}
	return true, 0
}

// Close releases the bucket cache
func (rl *RateLimiter) Close() {
	rl.buckets.Close()
}

// ClientIP extracts the client IP from X-Forwarded-For (leftmost) or RemoteAddr.
// This trusts the X-Forwarded-For header, which is only safe behind a reverse
// proxy that sets it.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.SplitN(xff, ",", 2)
		ip := strings.TrimSpace(parts[0])
		if ip != "" && net.ParseIP(ip) != nil {
			return "ip:" + ip
		}
	}

	host := r.RemoteAddr
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return "ip:" + host
}

// RateLimit returns middleware that enforces rate limits using the given limiter and key function.
// If limiter is nil, the middleware is a no-op (disabled mode).
// If keyFunc returns an empty string, the request passes through (unidentifiable client).
func RateLimit(limiter *RateLimiter, keyFunc func(*http.Request) string) Middleware {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if limiter == nil || keyFunc == nil {
				next(w, r)
				return
			}

			key := keyFunc(r)
			if key == "" {
				next(w, r)
				return
			}

			allowed, retryAfter := limiter.Allow(key)
			if allowed {
				next(w, r)
				return
			}

			retrySeconds := int(math.Ceil(retryAfter.Seconds()))
			slog.Warn("Rate limit exceeded",
				"request_id", RequestID(r.Context()),
				"key", key,
				"path", sanitizePath(r.URL.Path),
				"retry_after", retrySeconds,
			)

			appErr := services.NewRateLimited()
			w.Header().Set("Retry-After", strconv.Itoa(retrySeconds))
			writeJSONError(w, appErr.Message, appErr.Status)
		}
	}
}
