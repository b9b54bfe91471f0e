// Command server runs the news digest HTTP server: an HTML digest page, a
// JSON feed endpoint, health checks, and Prometheus metrics, backed by a
// single-slot cache in SQLite or Postgres.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"news-digest/internal/config"
	hhttp "news-digest/internal/handler/http"
	hfeed "news-digest/internal/handler/http/feed"
	"news-digest/internal/handler/http/requestid"
	pgRepo "news-digest/internal/infra/adapter/persistence/postgres"
	sqliteRepo "news-digest/internal/infra/adapter/persistence/sqlite"
	"news-digest/internal/infra/db"
	"news-digest/internal/infra/source"
	"news-digest/internal/observability/logging"
	"news-digest/internal/observability/tracing"
	"news-digest/internal/pkg/clock"
	"news-digest/internal/repository"
	feedUC "news-digest/internal/usecase/feed"
)

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	shutdownTracing := tracing.Setup("news-digest")
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			logger.Error("failed to shut down tracer provider", slog.Any("error", err))
		}
	}()

	database, cacheRepo := initCacheStore(logger, cfg)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close cache store", slog.Any("error", err))
		}
	}()

	clk := clock.Real{}
	httpClient := &http.Client{Timeout: cfg.SourceTimeout}

	sources, err := source.Build(cfg, httpClient, clk)
	if err != nil {
		logger.Error("failed to build sources", slog.Any("error", err))
		os.Exit(1)
	}

	svc := feedUC.NewService(cacheRepo, sources, clk, feedUC.Config{
		MaxAge:        cfg.CacheMaxAge,
		SourceTimeout: cfg.SourceTimeout,
	})

	warmer := startWarmer(logger, cfg, svc)
	if warmer != nil {
		defer warmer.Stop()
	}

	handler := buildHandler(logger, cfg, svc, database)

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	runServer(logger, server)
}

// initCacheStore opens the cache backend. DATABASE_URL selects Postgres;
// otherwise the embedded SQLite file is used.
func initCacheStore(logger *slog.Logger, cfg *config.Config) (*sql.DB, repository.CacheRepository) {
	if cfg.DatabaseURL != "" {
		database, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to connect to postgres", slog.Any("error", err))
			os.Exit(1)
		}
		if err := pgRepo.MigrateUp(database); err != nil {
			logger.Error("failed to migrate cache schema", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("cache store ready", slog.String("backend", "postgres"))
		return database, pgRepo.NewCacheRepo(database)
	}

	database, err := sqliteRepo.Open(cfg.CachePath)
	if err != nil {
		logger.Error("failed to open sqlite cache", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("cache store ready",
		slog.String("backend", "sqlite"),
		slog.String("path", cfg.CachePath))
	return database, sqliteRepo.NewCacheRepo(database)
}

// buildHandler assembles the route table and middleware chain.
func buildHandler(logger *slog.Logger, cfg *config.Config, svc *feedUC.Service, database *sql.DB) http.Handler {
	mux := http.NewServeMux()
	hfeed.Register(mux, svc, logger)
	mux.Handle("GET /healthz", &hhttp.HealthHandler{CacheStore: database})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())

	// Outermost first: request ID, tracing, metrics, logging, recovery,
	// then the per-request deadline.
	var handler http.Handler = mux
	handler = hhttp.Timeout(cfg.RequestTimeout)(handler)
	handler = hhttp.Recover(logger)(handler)
	handler = hhttp.Logging(logger)(handler)
	handler = hhttp.Metrics(handler)
	handler = tracing.Middleware(handler)
	handler = requestid.Middleware(handler)
	return handler
}

// startWarmer schedules background cache refreshes when REFRESH_SCHEDULE is
// set. Returns nil when no schedule is configured.
func startWarmer(logger *slog.Logger, cfg *config.Config, svc *feedUC.Service) *cron.Cron {
	if cfg.RefreshSchedule == "" {
		return nil
	}

	c := cron.New()
	_, err := c.AddFunc(cfg.RefreshSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.SourceTimeout+30*time.Second)
		defer cancel()

		if _, err := svc.GetArticles(ctx); err != nil {
			logger.Warn("scheduled cache refresh failed", slog.Any("error", err))
		}
	})
	if err != nil {
		logger.Error("invalid refresh schedule",
			slog.String("schedule", cfg.RefreshSchedule),
			slog.Any("error", err))
		os.Exit(1)
	}

	c.Start()
	logger.Info("cache warmer scheduled", slog.String("schedule", cfg.RefreshSchedule))
	return c
}

// runServer starts the HTTP server and blocks until SIGINT or SIGTERM,
// then drains in-flight requests.
func runServer(logger *slog.Logger, server *http.Server) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", slog.String("addr", server.Addr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped")
	}
}
