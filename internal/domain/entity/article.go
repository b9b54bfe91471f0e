// Package entity defines the core domain entities for the news digest.
// It contains the Article value type, the cache entry record, and the
// domain-specific errors shared across use cases and adapters.
package entity

import "time"

// DefaultTitle is substituted for articles whose provider omitted a title,
// so that stored articles always have displayable text.
const DefaultTitle = "(untitled)"

// Article represents a single news article in the common shape shared by
// all source clients. It is a value type and is never mutated after
// normalization.
type Article struct {
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Description string    `json:"description"`
	Source      string    `json:"source"`
	PublishedAt time.Time `json:"published_at"`
}

// Normalize returns a copy of the article with presentation defaults
// applied. A missing title becomes DefaultTitle; all other fields pass
// through unchanged.
func (a Article) Normalize() Article {
	if a.Title == "" {
		a.Title = DefaultTitle
	}
	return a
}

// CacheEntry is the single persisted cache record: the merged, sorted
// article list of the last successful aggregation cycle plus the time it
// was fetched. Both fields are written together or not at all.
type CacheEntry struct {
	Articles  []Article `json:"articles"`
	FetchedAt time.Time `json:"fetched_at"`
}

// IsFresh reports whether the entry is recent enough to serve without a
// live fetch. A nil entry is never fresh. The window is half-open:
// an entry written at T is fresh for any query time in [T, T+maxAge).
func (e *CacheEntry) IsFresh(now time.Time, maxAge time.Duration) bool {
	if e == nil {
		return false
	}
	return now.Sub(e.FetchedAt) < maxAge
}
