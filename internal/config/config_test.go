package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"news-digest/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 8*time.Hour, cfg.CacheMaxAge)
	assert.Equal(t, 10*time.Second, cfg.SourceTimeout)
	assert.Equal(t, "data/cache.db", cfg.CachePath)

	require.Len(t, cfg.Sources, 1)
	assert.Equal(t, config.KindNewsAPI, cfg.Sources[0].Kind)
	assert.Equal(t, "technology", cfg.Sources[0].Query)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("LISTEN_ADDR", ":9999")
	t.Setenv("CACHE_MAX_AGE", "1h")
	t.Setenv("NEWS_QUERY", "golang")
	t.Setenv("NEWS_API_KEY", "secret")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, time.Hour, cfg.CacheMaxAge)
	assert.Equal(t, "golang", cfg.Sources[0].Query)
	assert.Equal(t, "secret", cfg.NewsAPIKey)
}

func TestLoad_InvalidMaxAgeFallsBackThenValidates(t *testing.T) {
	// An unparseable duration falls back to the default and still loads.
	t.Setenv("CACHE_MAX_AGE", "not-a-duration")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 8*time.Hour, cfg.CacheMaxAge)
}

func TestLoad_SourcesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.yaml")
	content := `sources:
  - name: Tech Wire
    kind: newsapi
    url: https://example.com/v2/everything
    query: golang
    language: en
    page_size: 20
  - name: Go Blog
    kind: rss
    url: https://go.dev/blog/feed.atom
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("SOURCES_FILE", path)

	cfg, err := config.Load()
	require.NoError(t, err)

	require.Len(t, cfg.Sources, 2)
	assert.Equal(t, "Tech Wire", cfg.Sources[0].Name)
	assert.Equal(t, 20, cfg.Sources[0].PageSize)
	assert.Equal(t, config.KindRSS, cfg.Sources[1].Kind)
}

func TestLoad_SourcesFileUnknownKind(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.yaml")
	content := `sources:
  - name: Carrier Pigeon
    kind: pigeon
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("SOURCES_FILE", path)

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown kind")
}

func TestLoad_SourcesFileMissing(t *testing.T) {
	t.Setenv("SOURCES_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_SourcesFileEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sources: []\n"), 0o644))
	t.Setenv("SOURCES_FILE", path)

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no sources")
}
