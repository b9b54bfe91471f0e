// Command digest runs one aggregation cycle and prints the digest as JSON
// on stdout. It shares the cache slot with the server, so a fresh cache
// means no network calls at all.
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"time"

	"news-digest/internal/config"
	pgRepo "news-digest/internal/infra/adapter/persistence/postgres"
	sqliteRepo "news-digest/internal/infra/adapter/persistence/sqlite"
	"news-digest/internal/infra/db"
	"news-digest/internal/infra/source"
	"news-digest/internal/observability/logging"
	"news-digest/internal/pkg/clock"
	"news-digest/internal/repository"
	feedUC "news-digest/internal/usecase/feed"
)

func main() {
	logger := logging.NewTextLogger()
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	database, cacheRepo := openCacheStore(logger, cfg)
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

	ctx, cancel := context.WithTimeout(context.Background(), cfg.SourceTimeout+30*time.Second)
	defer cancel()

	articles, err := svc.GetArticles(ctx)
	if err != nil {
		if feedUC.IsCredentialError(err) {
			logger.Error("news source credentials are missing or invalid; check NEWS_API_KEY")
		} else {
			logger.Error("aggregation failed", slog.Any("error", err))
		}
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(articles); err != nil {
		logger.Error("failed to encode digest", slog.Any("error", err))
		os.Exit(1)
	}
}

func openCacheStore(logger *slog.Logger, cfg *config.Config) (*sql.DB, repository.CacheRepository) {
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
		return database, pgRepo.NewCacheRepo(database)
	}

	database, err := sqliteRepo.Open(cfg.CachePath)
	if err != nil {
		logger.Error("failed to open sqlite cache", slog.Any("error", err))
		os.Exit(1)
	}
	return database, sqliteRepo.NewCacheRepo(database)
}
