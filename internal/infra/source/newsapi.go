// Package source provides Source Client implementations for the feed
// aggregator: an HTTP JSON news provider, an RSS/Atom provider, and a
// deterministic simulated provider for tests and demos.
package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"news-digest/internal/domain/entity"
	"news-digest/internal/usecase/feed"

	"golang.org/x/time/rate"
)

// NewsAPIConfig holds the construction-time configuration of a NewsAPI
// style source: endpoint, topic query, and credential.
type NewsAPIConfig struct {
	// BaseURL is the search endpoint, e.g. "https://newsapi.org/v2/everything".
	BaseURL string
	// Query is the topic search term.
	Query string
	// Language restricts results, e.g. "en". Empty means no restriction.
	Language string
	// PageSize caps the number of returned articles per fetch.
	PageSize int
	// APIKey is the credential token sent as a query parameter.
	APIKey string
	// DisplayName is the human-readable source name used when the
	// provider omits a per-article source name. Defaults to "NewsAPI".
	DisplayName string
}

// NewsAPIClient fetches articles from a NewsAPI-compatible JSON endpoint.
// Outbound requests are paced client-side so that a burst of stale-cache
// cycles cannot hammer the provider.
type NewsAPIClient struct {
	cfg     NewsAPIConfig
	client  *http.Client
	limiter *rate.Limiter
}

// NewNewsAPIClient creates a new client with the given configuration.
// A nil httpClient defaults to one with a 15 second timeout.
func NewNewsAPIClient(cfg NewsAPIConfig, httpClient *http.Client) *NewsAPIClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	if cfg.DisplayName == "" {
		cfg.DisplayName = "NewsAPI"
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 50
	}
	return &NewsAPIClient{
		cfg:     cfg,
		client:  httpClient,
		limiter: rate.NewLimiter(rate.Every(time.Second), 2),
	}
}

// Name returns the human-readable source name.
func (c *NewsAPIClient) Name() string { return c.cfg.DisplayName }

// newsAPIResponse is the provider's success body.
type newsAPIResponse struct {
	Articles []newsAPIArticle `json:"articles"`
}

type newsAPIArticle struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Source      struct {
		Name string `json:"name"`
	} `json:"source"`
	PublishedAt string `json:"publishedAt"`
}

// newsAPIError is the provider's failure body on non-success status.
type newsAPIError struct {
	Errors  []string `json:"errors"`
	Message string   `json:"message"`
}

// Fetch performs one search request and maps the provider's article
// representation into the common Article shape. Order is unspecified; the
// aggregator re-sorts.
func (c *NewsAPIClient) Fetch(ctx context.Context) ([]entity.Article, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &feed.TransportError{Source: c.Name(), Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.requestURL(), nil)
	if err != nil {
		return nil, &feed.TransportError{Source: c.Name(), Err: err}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &feed.TransportError{Source: c.Name(), Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, c.apiError(resp)
	}

	var body newsAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, &feed.TransportError{Source: c.Name(), Err: fmt.Errorf("decode response: %w", err)}
	}

	articles := make([]entity.Article, 0, len(body.Articles))
	for _, item := range body.Articles {
		articles = append(articles, entity.Article{
			Title:       item.Title,
			URL:         item.URL,
			Description: item.Description,
			Source:      c.sourceName(item),
			PublishedAt: parsePublishedAt(item.PublishedAt),
		})
	}
	return articles, nil
}

// requestURL builds the search URL with query, language, page size, and
// the credential token.
func (c *NewsAPIClient) requestURL() string {
	params := url.Values{}
	params.Set("q", c.cfg.Query)
	if c.cfg.Language != "" {
		params.Set("language", c.cfg.Language)
	}
	params.Set("pageSize", strconv.Itoa(c.cfg.PageSize))
	params.Set("apiKey", c.cfg.APIKey)
	return c.cfg.BaseURL + "?" + params.Encode()
}

// apiError extracts the provider-supplied error message from a structured
// failure body, falling back to a generic status-code message.
func (c *NewsAPIClient) apiError(resp *http.Response) error {
	msg := fmt.Sprintf("unexpected status %d", resp.StatusCode)

	var body newsAPIError
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		switch {
		case len(body.Errors) > 0:
			msg = body.Errors[0]
		case body.Message != "":
			msg = body.Message
		}
	}

	return &feed.APIError{
		Source:     c.Name(),
		StatusCode: resp.StatusCode,
		Message:    msg,
	}
}

func (c *NewsAPIClient) sourceName(item newsAPIArticle) string {
	if item.Source.Name != "" {
		return item.Source.Name
	}
	return c.cfg.DisplayName
}

// parsePublishedAt parses the provider's ISO-8601 timestamp. Unparseable
// values map to the zero time, which sorts as oldest.
func parsePublishedAt(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
