package source

import (
	"context"
	"net/http"
	"time"

	"news-digest/internal/domain/entity"
	"news-digest/internal/usecase/feed"

	"github.com/mmcdole/gofeed"
)

// RSSSource fetches articles from an RSS/Atom feed using gofeed.
type RSSSource struct {
	name    string
	feedURL string
	client  *http.Client
}

// NewRSSSource creates a new RSS/Atom source. A nil httpClient defaults to
// one with a 15 second timeout.
func NewRSSSource(name, feedURL string, httpClient *http.Client) *RSSSource {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &RSSSource{name: name, feedURL: feedURL, client: httpClient}
}

// Name returns the human-readable source name.
func (s *RSSSource) Name() string { return s.name }

// Fetch retrieves and parses the feed, mapping entries into the common
// Article shape. Entries without a parseable publication date get the zero
// time and sort as oldest.
func (s *RSSSource) Fetch(ctx context.Context) ([]entity.Article, error) {
	fp := gofeed.NewParser()
	fp.UserAgent = "news-digest"
	fp.Client = s.client

	parsed, err := fp.ParseURLWithContext(s.feedURL, ctx)
	if err != nil {
		return nil, &feed.TransportError{Source: s.name, Err: err}
	}

	articles := make([]entity.Article, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		var publishedAt time.Time
		if item.PublishedParsed != nil {
			publishedAt = *item.PublishedParsed
		}

		articles = append(articles, entity.Article{
			Title:       item.Title,
			URL:         item.Link,
			Description: item.Description,
			Source:      s.name,
			PublishedAt: publishedAt,
		})
	}
	return articles, nil
}
