// ABOUTME: Serve command running the capacity planner HTTP API
// ABOUTME: Wires configuration, cache, metrics, middleware, and graceful shutdown

package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/markalston/graphite-capacity-planner/cache"
	"github.com/markalston/graphite-capacity-planner/config"
	"github.com/markalston/graphite-capacity-planner/handlers"
	"github.com/markalston/graphite-capacity-planner/logger"
	"github.com/markalston/graphite-capacity-planner/metrics"
	"github.com/markalston/graphite-capacity-planner/middleware"
	"github.com/markalston/graphite-capacity-planner/services"
)

const shutdownTimeout = 10 * time.Second

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Run the capacity planner HTTP API.

Configuration comes from environment variables, optionally loaded from a .env
file in the working directory: PORT, LOG_LEVEL, LOG_FORMAT, CACHE_TTL,
CACHE_MAX_ENTRIES, CORS_ALLOWED_ORIGINS, RATE_LIMIT_ENABLED, RATE_LIMIT_RPS,
RATE_LIMIT_BURST, METRICS_ENABLED, TUNING_FILE.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			slog.Error("Failed to load configuration", "error", err)
			os.Exit(1)
		}
		if cmd.Flags().Changed("port") {
			cfg.Port = servePort
		}

		logger.Init(cfg.LogLevel, cfg.LogFormat)

		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if err := runServe(ctx, cfg); err != nil {
			slog.Error("Server failed", "error", err)
			cancel()
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&servePort, "port", "", "Listen port (overrides PORT)")
}

// server bundles the HTTP server with resources released on shutdown.
type server struct {
	http  *http.Server
	cache *cache.Cache
}

func (s *server) close() {
	if s.cache != nil {
		s.cache.Close()
	}
}

// buildServer assembles the API from configuration.
func buildServer(cfg *config.Config) (*server, error) {
	tuning, err := config.LoadTuning(cfg.TuningFile)
	if err != nil {
		return nil, fmt.Errorf("loading tuning: %w", err)
	}
	estimator := services.NewEstimator(tuning)

	var c *cache.Cache
	if cfg.CacheTTL > 0 {
		c, err = cache.New(cfg.CacheTTLDuration(), cfg.CacheMaxEntries)
		if err != nil {
			return nil, fmt.Errorf("creating cache: %w", err)
		}
		slog.Info("Cache initialized", "ttl", cfg.CacheTTLDuration(), "max_entries", cfg.CacheMaxEntries)
	} else {
		slog.Info("Result caching disabled")
	}

	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m = metrics.New()
		if c != nil {
			m.RegisterGaugeFunc("cache", "entries", "Results currently held in the cache.", func() float64 {
				return float64(c.Stats().Entries)
			})
		}
	}

	h := handlers.NewHandler(estimator, c, m).WithTuningSource(cfg.TuningFile)

	shared := []middleware.Middleware{
		middleware.Recover,
		middleware.LogRequest,
		middleware.CORS(cfg.CORSAllowedOrigins),
	}
	if cfg.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(float64(cfg.RateLimitRPS), cfg.RateLimitBurst)
		if m != nil {
			limiter.OnReject = func(string) { m.RateLimited.Inc() }
		}
		shared = append(shared, middleware.RateLimit(limiter, middleware.ClientIP))
		slog.Info("Rate limiting enabled", "rps", cfg.RateLimitRPS, "burst", cfg.RateLimitBurst)
	}

	return &server{
		http: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           h.Mux(shared...),
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
		cache: c,
	}, nil
}

// runServe serves until ctx is canceled, then shuts down gracefully.
func runServe(ctx context.Context, cfg *config.Config) error {
	srv, err := buildServer(cfg)
	if err != nil {
		return err
	}
	defer srv.close()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server listening", "addr", srv.http.Addr)
		errCh <- srv.http.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
