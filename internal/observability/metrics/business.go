package metrics

import "time"

// RecordCacheLookup records the result of a cache slot lookup.
// Result should be one of "hit", "miss", or "error".
func RecordCacheLookup(result string) {
	CacheLookupsTotal.WithLabelValues(result).Inc()
}

// RecordCacheWriteFailure records a failed best-effort cache write.
func RecordCacheWriteFailure() {
	CacheWriteFailuresTotal.Inc()
}

// RecordFetchCycle records a completed aggregation cycle.
// Outcome should be either "success" or "failure".
func RecordFetchCycle(success bool) {
	outcome := "success"
	if !success {
		outcome = "failure"
	}
	FetchCyclesTotal.WithLabelValues(outcome).Inc()
}

// RecordSourceFetch records the duration and article count of a successful
// source fetch.
func RecordSourceFetch(source string, duration time.Duration, count int) {
	SourceFetchDuration.WithLabelValues(source).Observe(duration.Seconds())
	ArticlesFetchedTotal.WithLabelValues(source).Add(float64(count))
}

// RecordSourceFetchError records a failed source fetch.
// ErrorType should describe the failure class (e.g. "transport", "api").
func RecordSourceFetchError(source, errorType string) {
	SourceFetchErrorsTotal.WithLabelValues(source, errorType).Inc()
}

// UpdateArticlesServed updates the gauge tracking the size of the most
// recently served digest.
func UpdateArticlesServed(count int) {
	ArticlesServed.Set(float64(count))
}
