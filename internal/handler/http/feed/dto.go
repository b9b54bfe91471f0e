// Package feed provides HTTP handlers for the aggregated news digest:
// a JSON endpoint and a server-rendered HTML page.
package feed

import (
	"context"
	"time"

	"news-digest/internal/domain/entity"
)

// Service is the slice of the aggregation usecase the handlers need.
type Service interface {
	GetDigest(ctx context.Context) (*entity.CacheEntry, error)
}

// ArticleDTO represents the JSON structure for a single article.
type ArticleDTO struct {
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Description string    `json:"description,omitempty"`
	Source      string    `json:"source"`
	PublishedAt time.Time `json:"published_at"`
}

// DigestDTO is the JSON response of the feed endpoint. FetchedAt is the
// time the served digest was aggregated, which on a cache hit predates
// the request.
type DigestDTO struct {
	Articles  []ArticleDTO `json:"articles"`
	Count     int          `json:"count"`
	FetchedAt time.Time    `json:"fetched_at"`
}

func toDigestDTO(entry *entity.CacheEntry) DigestDTO {
	out := make([]ArticleDTO, len(entry.Articles))
	for i, a := range entry.Articles {
		out[i] = ArticleDTO{
			Title:       a.Title,
			URL:         a.URL,
			Description: a.Description,
			Source:      a.Source,
			PublishedAt: a.PublishedAt,
		}
	}
	return DigestDTO{Articles: out, Count: len(out), FetchedAt: entry.FetchedAt}
}
