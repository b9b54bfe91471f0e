package feed_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"news-digest/internal/domain/entity"
	"news-digest/internal/handler/http/feed"
	feedUC "news-digest/internal/usecase/feed"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageHandler_RendersArticles(t *testing.T) {
	h := feed.PageHandler{Svc: &stubService{entry: sampleEntry()}, Logger: discardLogger()}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")

	body := rr.Body.String()
	assert.Contains(t, body, "Go 1.25 released")
	assert.Contains(t, body, `href="https://example.com/go-1-25"`)
	assert.Contains(t, body, "Tech Wire")
	assert.Contains(t, body, "Aug 24, 2026")
	assert.Contains(t, body, "Updated Aug 24, 2026")
}

func TestPageHandler_EscapesArticleContent(t *testing.T) {
	svc := &stubService{entry: &entity.CacheEntry{
		Articles: []entity.Article{{
			Title:       "<script>alert(1)</script>",
			URL:         "https://example.com/a",
			Source:      "Tech Wire",
			PublishedAt: time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC),
		}},
		FetchedAt: sampleFetchedAt,
	}}
	h := feed.PageHandler{Svc: svc, Logger: discardLogger()}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	body := rr.Body.String()
	assert.NotContains(t, body, "<script>alert(1)</script>")
	assert.Contains(t, body, "&lt;script&gt;")
}

func TestPageHandler_UnknownDateForZeroTime(t *testing.T) {
	svc := &stubService{entry: &entity.CacheEntry{
		Articles: []entity.Article{{
			Title:  "No timestamp",
			URL:    "https://example.com/b",
			Source: "Go Blog",
		}},
		FetchedAt: sampleFetchedAt,
	}}
	h := feed.PageHandler{Svc: svc, Logger: discardLogger()}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Contains(t, rr.Body.String(), "unknown date")
}

func TestPageHandler_EmptyDigest(t *testing.T) {
	h := feed.PageHandler{Svc: &stubService{entry: &entity.CacheEntry{FetchedAt: sampleFetchedAt}}, Logger: discardLogger()}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "No articles available")
}

func TestPageHandler_ShowsErrorBanner(t *testing.T) {
	svc := &stubService{err: &feedUC.APIError{Source: "Tech Wire", StatusCode: http.StatusUnauthorized, Message: "invalid api key"}}
	h := feed.PageHandler{Svc: svc, Logger: discardLogger()}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusBadGateway, rr.Code)
	assert.Contains(t, rr.Body.String(), "news source credentials are missing or invalid")
}

func TestRegister_Routes(t *testing.T) {
	mux := http.NewServeMux()
	feed.Register(mux, &stubService{entry: sampleEntry()}, discardLogger())

	for _, path := range []string{"/", "/feed"} {
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rr.Code, "path %s", path)
	}

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
