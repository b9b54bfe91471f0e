package source

import (
	"fmt"
	"net/http"
	"time"

	"news-digest/internal/config"
	"news-digest/internal/domain/entity"
	"news-digest/internal/pkg/clock"
	"news-digest/internal/usecase/feed"
)

// Build constructs the Source Clients for the configured static source
// list. All clients share one HTTP client; the NewsAPI credential comes
// from the application config.
func Build(cfg *config.Config, httpClient *http.Client, clk clock.Clock) ([]feed.Source, error) {
	sources := make([]feed.Source, 0, len(cfg.Sources))

	for _, sc := range cfg.Sources {
		switch sc.Kind {
		case config.KindNewsAPI, config.KindRSS:
			if sc.URL == "" {
				return nil, &entity.ValidationError{Field: "url", Message: fmt.Sprintf("source %q requires a url", sc.Name)}
			}
		}

		switch sc.Kind {
		case config.KindNewsAPI:
			sources = append(sources, NewNewsAPIClient(NewsAPIConfig{
				BaseURL:     sc.URL,
				Query:       sc.Query,
				Language:    sc.Language,
				PageSize:    sc.PageSize,
				APIKey:      cfg.NewsAPIKey,
				DisplayName: sc.Name,
			}, httpClient))

		case config.KindRSS:
			sources = append(sources, NewRSSSource(sc.Name, sc.URL, httpClient))

		case config.KindSimulated:
			sources = append(sources, NewSimulatedSource(sc.Name, sampleArticles(sc.Name), 200*time.Millisecond, clk))

		default:
			return nil, fmt.Errorf("source %q: unknown kind %q", sc.Name, sc.Kind)
		}
	}

	return sources, nil
}

// sampleArticles returns deterministic demo content for simulated sources.
func sampleArticles(sourceName string) []entity.Article {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	articles := make([]entity.Article, 0, 3)
	for i := 0; i < 3; i++ {
		articles = append(articles, entity.Article{
			Title:       fmt.Sprintf("%s sample article %d", sourceName, i+1),
			URL:         fmt.Sprintf("https://example.com/%s/%d", sourceName, i+1),
			Description: "Simulated article for local development.",
			Source:      sourceName,
			PublishedAt: base.Add(time.Duration(i) * time.Hour),
		})
	}
	return articles
}
