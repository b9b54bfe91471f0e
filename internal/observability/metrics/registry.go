// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics track HTTP request patterns and performance
var (
	// HTTPRequestsTotal counts total HTTP requests by method, path, and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration measures HTTP request duration in seconds
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

// Aggregation metrics track the cache-or-fetch pipeline
var (
	// CacheLookupsTotal counts cache slot lookups by result (hit/miss/error)
	CacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_cache_lookups_total",
			Help: "Total number of cache slot lookups by result",
		},
		[]string{"result"},
	)

	// CacheWriteFailuresTotal counts best-effort cache writes that failed
	CacheWriteFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "feed_cache_write_failures_total",
			Help: "Total number of failed cache slot writes",
		},
	)

	// FetchCyclesTotal counts full aggregation cycles by outcome
	FetchCyclesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_fetch_cycles_total",
			Help: "Total number of aggregation cycles by outcome",
		},
		[]string{"outcome"},
	)

	// SourceFetchDuration measures per-source fetch duration in seconds
	SourceFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "feed_source_fetch_duration_seconds",
			Help:    "Duration of a single source fetch in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source"},
	)

	// SourceFetchErrorsTotal counts per-source fetch failures by error type
	SourceFetchErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_source_fetch_errors_total",
			Help: "Total number of source fetch failures",
		},
		[]string{"source", "error_type"},
	)

	// ArticlesFetchedTotal counts articles fetched from each source
	ArticlesFetchedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_articles_fetched_total",
			Help: "Total number of articles fetched from sources",
		},
		[]string{"source"},
	)

	// ArticlesServed tracks the article count of the last served digest
	ArticlesServed = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "feed_articles_served",
			Help: "Number of articles in the most recently served digest",
		},
	)
)
