// ABOUTME: Configuration loader for the BFF service
// ABOUTME: Loads settings from .env and environment variables with defaults

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Auth helper modes
const (
	AuthHelperLoopback = "loopback"
	AuthHelperDirect   = "direct"
)

type Config struct {
	// Server
	Port               string
	Env                string   // development, production
	CookieSecure       bool     // Set Secure flag on session cookies (default: Env == production)
	CORSAllowedOrigins []string // allowed CORS origins (empty = same-origin only)
	ShutdownTimeout    time.Duration

	// Upstream identity/profile API
	UpstreamURL string // DJANGO_API_URL; empty is a per-request configuration error

	// Server-side auth helper
	PublicBaseURL  string // loopback base for the current-user lookup
	AuthHelperMode string // loopback, direct (default: loopback)

	// Rate Limiting
	RateLimitEnabled bool // Enable rate limiting (default: true)
	RateLimitAuth    int  // Login requests per minute per client (default: 5)
}

// UpstreamConfigured returns true if the upstream base URL is set
func (c *Config) UpstreamConfigured() bool {
	return c.UpstreamURL != ""
}

// IsProduction reports whether the service runs with production settings
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads .env (when present) and the process environment.
// A missing DJANGO_API_URL is not an error here: every endpoint that needs it
// reports a configuration error per request instead.
func Load() (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	env := strings.ToLower(getEnv("APP_ENV", getEnv("NODE_ENV", "development")))
	port := getEnv("PORT", "3000")

	cfg := &Config{
		Port:               port,
		Env:                env,
		CORSAllowedOrigins: getEnvStringList("CORS_ALLOWED_ORIGINS"),
		ShutdownTimeout:    time.Duration(getEnvInt("SHUTDOWN_TIMEOUT", 10)) * time.Second,

		UpstreamURL: trimBaseURL(os.Getenv("DJANGO_API_URL")),

		PublicBaseURL:  trimBaseURL(getEnv("PUBLIC_BASE_URL", getEnv("NEXT_PUBLIC_BASE_URL", "http://localhost:"+port))),
		AuthHelperMode: strings.ToLower(getEnv("AUTH_HELPER_MODE", AuthHelperLoopback)),

		RateLimitEnabled: getEnvBool("RATE_LIMIT_ENABLED", true),
		RateLimitAuth:    getEnvInt("RATE_LIMIT_AUTH", 5),
	}

	cfg.CookieSecure = getEnvBool("COOKIE_SECURE", cfg.IsProduction())

	switch cfg.AuthHelperMode {
	case AuthHelperLoopback, AuthHelperDirect:
	default:
		return nil, fmt.Errorf("invalid AUTH_HELPER_MODE: %q (must be loopback or direct)", cfg.AuthHelperMode)
	}

	if cfg.RateLimitAuth < 1 || cfg.RateLimitAuth > 10000 {
		return nil, fmt.Errorf("RATE_LIMIT_AUTH must be between 1 and 10000, got %d", cfg.RateLimitAuth)
	}

	return cfg, nil
}

// loadDotEnv populates the environment from a dotenv file without overriding
// variables that are already set. A missing file is fine.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("failed to load %s: %w", path, err)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvStringList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// trimBaseURL drops surrounding whitespace and trailing slashes so paths can be appended
func trimBaseURL(url string) string {
	return strings.TrimRight(strings.TrimSpace(url), "/")
}
