// Package feed provides the aggregation use case: the cache-or-fetch
// decision, concurrent multi-source fan-out, merge and recency ordering,
// and the best-effort cache write.
package feed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"news-digest/internal/domain/entity"
	"news-digest/internal/observability/metrics"
	"news-digest/internal/observability/tracing"
	"news-digest/internal/pkg/clock"
	"news-digest/internal/repository"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Source is one external provider of articles. Configuration (endpoint,
// query, credentials) is bound at construction; Fetch performs exactly one
// external call and returns articles in unspecified order.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]entity.Article, error)
}

// Config holds the aggregation policy knobs.
type Config struct {
	// MaxAge is the freshness window: a cache entry younger than this is
	// served verbatim without any source call.
	MaxAge time.Duration
	// SourceTimeout bounds each individual source fetch so one slow
	// source cannot stall the whole cycle indefinitely.
	SourceTimeout time.Duration
}

// DefaultConfig returns the default aggregation policy: an 8 hour
// freshness window and a 10 second per-source timeout.
func DefaultConfig() Config {
	return Config{
		MaxAge:        8 * time.Hour,
		SourceTimeout: 10 * time.Second,
	}
}

// Service aggregates articles from all registered sources through the
// cache slot. It is safe for concurrent use; overlapping stale-cache
// requests share a single fetch cycle.
type Service struct {
	cache   repository.CacheRepository
	sources []Source
	clock   clock.Clock
	cfg     Config
	group   singleflight.Group
}

// NewService creates a new aggregation Service.
// A nil clk defaults to the system clock; zero config fields take the
// defaults from DefaultConfig.
func NewService(cache repository.CacheRepository, sources []Source, clk clock.Clock, cfg Config) *Service {
	if clk == nil {
		clk = clock.Real{}
	}
	def := DefaultConfig()
	if cfg.MaxAge <= 0 {
		cfg.MaxAge = def.MaxAge
	}
	if cfg.SourceTimeout <= 0 {
		cfg.SourceTimeout = def.SourceTimeout
	}
	return &Service{
		cache:   cache,
		sources: sources,
		clock:   clk,
		cfg:     cfg,
	}
}

// GetArticles returns the article list of the current digest. See
// GetDigest for the full contract.
func (s *Service) GetArticles(ctx context.Context) ([]entity.Article, error) {
	entry, err := s.GetDigest(ctx)
	if err != nil {
		return nil, err
	}
	return entry.Articles, nil
}

// GetDigest returns the current digest with its fetch timestamp: the
// cached entry when the slot is fresh, otherwise the result of a full
// aggregation cycle. On a failed cycle nothing is returned and the cache
// is left untouched.
func (s *Service) GetDigest(ctx context.Context) (*entity.CacheEntry, error) {
	if len(s.sources) == 0 {
		return nil, ErrNoSources
	}

	logger := slog.Default()

	entry, err := s.cache.Load(ctx)
	switch {
	case err == nil:
	case errors.Is(err, entity.ErrCacheMiss):
		entry = nil
	default:
		// A degraded cache must not break the feed: treat as absent.
		logger.Warn("cache load failed, treating as miss", slog.Any("error", err))
		metrics.RecordCacheLookup("error")
		entry = nil
	}

	if entry.IsFresh(s.clock.Now(), s.cfg.MaxAge) {
		metrics.RecordCacheLookup("hit")
		metrics.UpdateArticlesServed(len(entry.Articles))
		logger.Debug("serving fresh cache entry",
			slog.Int("articles", len(entry.Articles)),
			slog.Time("fetched_at", entry.FetchedAt))
		return entry, nil
	}
	metrics.RecordCacheLookup("miss")

	// Concurrent stale-cache callers share one fetch cycle. The single
	// slot has one logical key. The cycle runs on a detached context so
	// one caller's cancellation cannot fail everyone waiting on it.
	v, err, shared := s.group.Do("digest", func() (interface{}, error) {
		return s.refresh(context.WithoutCancel(ctx))
	})
	if err != nil {
		metrics.RecordFetchCycle(false)
		return nil, err
	}

	fresh := v.(*entity.CacheEntry)
	metrics.RecordFetchCycle(true)
	metrics.UpdateArticlesServed(len(fresh.Articles))
	if shared {
		logger.Debug("aggregation cycle shared with concurrent caller")
	}
	return fresh, nil
}

// refresh runs one full aggregation cycle: fan out to every source, wait
// for all, merge, sort newest first, and store the result best-effort.
// Any single source failure fails the whole cycle and skips the write.
func (s *Service) refresh(ctx context.Context) (*entity.CacheEntry, error) {
	ctx, span := tracing.GetTracer().Start(ctx, "feed.refresh")
	defer span.End()

	logger := slog.Default()
	start := s.clock.Now()

	results := make([][]entity.Article, len(s.sources))
	eg, egCtx := errgroup.WithContext(ctx)

	for i, src := range s.sources {
		eg.Go(func() error {
			fetchCtx, cancel := context.WithTimeout(egCtx, s.cfg.SourceTimeout)
			defer cancel()

			fetchStart := time.Now()
			articles, err := src.Fetch(fetchCtx)
			if err != nil {
				metrics.RecordSourceFetchError(src.Name(), errorType(err))
				logger.Warn("source fetch failed",
					slog.String("source", src.Name()),
					slog.Any("error", err))
				return fmt.Errorf("fetch source %q: %w", src.Name(), err)
			}

			metrics.RecordSourceFetch(src.Name(), time.Since(fetchStart), len(articles))
			results[i] = articles
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	merged := s.merge(results)

	entry := &entity.CacheEntry{Articles: merged, FetchedAt: s.clock.Now()}
	if err := s.cache.Save(ctx, entry); err != nil {
		// Best-effort: a failed write degrades the next request to a
		// re-fetch, it never fails this one.
		metrics.RecordCacheWriteFailure()
		logger.Warn("cache write failed", slog.Any("error", err))
	}

	logger.Info("aggregation cycle completed",
		slog.Int("sources", len(s.sources)),
		slog.Int("articles", len(merged)),
		slog.Duration("duration", s.clock.Now().Sub(start)))

	return entry, nil
}

// merge concatenates per-source results in registration order, applies
// presentation defaults, and sorts descending by publication time. The
// sort is stable: equal or zero timestamps keep arrival order.
func (s *Service) merge(results [][]entity.Article) []entity.Article {
	total := 0
	for _, r := range results {
		total += len(r)
	}

	merged := make([]entity.Article, 0, total)
	for _, r := range results {
		for _, a := range r {
			merged = append(merged, a.Normalize())
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].PublishedAt.After(merged[j].PublishedAt)
	})

	return merged
}

// errorType maps a source fetch error to a metrics label.
func errorType(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return "api"
	}
	return "transport"
}
