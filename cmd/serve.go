// ABOUTME: Serve command running the BFF and the server-rendered pages
// ABOUTME: Wires config, upstream client, auth helper, middleware and graceful shutdown

package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/edududs/PoliticSystem/config"
	"github.com/edududs/PoliticSystem/handlers"
	"github.com/edududs/PoliticSystem/internal/client"
	"github.com/edududs/PoliticSystem/logger"
	"github.com/edududs/PoliticSystem/metrics"
	"github.com/edududs/PoliticSystem/middleware"
	"github.com/edududs/PoliticSystem/serverauth"
	"github.com/edududs/PoliticSystem/services"
	"github.com/edududs/PoliticSystem/views"
)

// rateLimitIdle is how long an idle client's limiter is kept
const rateLimitIdle = 10 * time.Minute

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web server",
	Long: `Run the backend-for-frontend API and the server-rendered pages.

Environment Variables:
  PORT                  Listen port (default: 3000)
  DJANGO_API_URL        Upstream identity/profile API base URL
  PUBLIC_BASE_URL       Base URL the auth helper calls back into (default: http://localhost:$PORT)
  AUTH_HELPER_MODE      loopback or direct (default: loopback)
  COOKIE_SECURE         Secure flag on session cookies (default: true in production)
  CORS_ALLOWED_ORIGINS  Comma-separated origins allowed to call the API
  RATE_LIMIT_ENABLED    Limit login attempts per client (default: true)
  RATE_LIMIT_AUTH       Login attempts per minute per client (default: 5)
  LOG_LEVEL, LOG_FORMAT Logging (info/text by default)`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		return runServe(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(ctx context.Context) error {
	log := logger.Init()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log.Info("Starting PoliticSystem", "env", cfg.Env, "auth_helper", cfg.AuthHelperMode)
	if cfg.UpstreamConfigured() {
		log.Info("Upstream configured", "url", cfg.UpstreamURL)
	} else {
		log.Warn("DJANGO_API_URL not set, API requests will fail with a configuration error")
	}

	handler, cleanup, err := newServerHandler(cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	ln, err := net.Listen("tcp", ":"+cfg.Port)
	if err != nil {
		return fmt.Errorf("failed to listen on port %s: %w", cfg.Port, err)
	}

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Info("Server listening", "addr", ln.Addr().String())
	return serve(ctx, srv, ln, cfg.ShutdownTimeout)
}

// newServerHandler assembles the full HTTP stack for cfg. The returned
// cleanup releases background resources (rate limiter sweeps).
func newServerHandler(cfg *config.Config, log *slog.Logger) (http.Handler, func(), error) {
	m := metrics.New()
	upstream := services.NewUpstreamClient(cfg.UpstreamURL, nil, m)

	auth := serverauth.New(newUserSource(cfg, upstream), log)

	renderer, err := views.NewRenderer()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	h := handlers.NewHandler(cfg, upstream, auth, renderer, m)

	var limiter *middleware.RateLimiter
	if cfg.RateLimitEnabled {
		limiter = middleware.NewRateLimiter(cfg.RateLimitAuth, rateLimitIdle)
		log.Info("Login rate limiting enabled", "per_minute", cfg.RateLimitAuth)
	}

	mux := handlers.NewMux(h.Routes(), func(route handlers.Route) http.HandlerFunc {
		chain := []middleware.Middleware{middleware.LogRequest, m.Instrument, middleware.Recover}
		if route.RateLimited && limiter != nil {
			chain = append(chain, middleware.RateLimit(limiter, middleware.ClientIP))
		}
		return middleware.Chain(route.Handler, chain...)
	})

	// CORS sits in front of the mux so preflight requests never hit method-specific patterns.
	root := middleware.CORS(cfg.CORSAllowedOrigins)(mux.ServeHTTP)

	cleanup := func() {
		if limiter != nil {
			limiter.Close()
		}
	}
	return root, cleanup, nil
}

// newUserSource picks how the auth helper looks up the current user. The
// loopback client has no timeout of its own; the page request's context bounds it.
func newUserSource(cfg *config.Config, upstream *services.UpstreamClient) serverauth.UserSource {
	if cfg.AuthHelperMode == config.AuthHelperDirect {
		return serverauth.NewDirectSource(upstream)
	}
	return serverauth.NewLoopbackSource(client.New(cfg.PublicBaseURL, client.WithHTTPClient(&http.Client{})))
}

// serve runs srv on ln until ctx is canceled, then shuts it down within timeout.
func serve(ctx context.Context, srv *http.Server, ln net.Listener, timeout time.Duration) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down server", "timeout", timeout)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		return nil
	})

	return g.Wait()
}

