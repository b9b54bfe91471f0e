// Package config assembles the application configuration from the
// environment and an optional YAML source list. Configuration is loaded
// once at startup and passed explicitly to the components that need it;
// nothing reads the environment after startup.
package config

import (
	"fmt"
	"os"
	"time"

	pkgconfig "news-digest/pkg/config"

	"gopkg.in/yaml.v3"
)

// SourceKind identifies which Source Client implementation serves a
// configured source.
const (
	KindNewsAPI   = "newsapi"
	KindRSS       = "rss"
	KindSimulated = "simulated"
)

// SourceConfig describes one entry of the static source list.
type SourceConfig struct {
	Name     string `yaml:"name"`
	Kind     string `yaml:"kind"`
	URL      string `yaml:"url"`
	Query    string `yaml:"query"`
	Language string `yaml:"language"`
	PageSize int    `yaml:"page_size"`
}

// Config holds the full application configuration.
type Config struct {
	// Addr is the HTTP listen address of cmd/server.
	Addr string
	// CacheMaxAge is the freshness window of the cache slot.
	CacheMaxAge time.Duration
	// SourceTimeout bounds each individual source fetch.
	SourceTimeout time.Duration
	// RequestTimeout bounds one inbound HTTP request end to end.
	RequestTimeout time.Duration
	// CachePath is the SQLite cache file (default backend).
	CachePath string
	// DatabaseURL selects the Postgres cache backend when non-empty.
	DatabaseURL string
	// RefreshSchedule is a cron expression for the server-side cache
	// warmer; empty disables it.
	RefreshSchedule string
	// NewsAPIKey is the credential for newsapi-kind sources.
	NewsAPIKey string
	// Sources is the static source list.
	Sources []SourceConfig
}

// Load reads the configuration from the environment. When SOURCES_FILE is
// set, the source list is read from that YAML file; otherwise a single
// NewsAPI source is configured from NEWS_QUERY and NEWS_API_KEY.
func Load() (*Config, error) {
	cfg := &Config{
		Addr:            pkgconfig.GetEnvString("LISTEN_ADDR", ":8080"),
		CacheMaxAge:     pkgconfig.GetEnvDuration("CACHE_MAX_AGE", 8*time.Hour),
		SourceTimeout:   pkgconfig.GetEnvDuration("SOURCE_TIMEOUT", 10*time.Second),
		RequestTimeout:  pkgconfig.GetEnvDuration("REQUEST_TIMEOUT", 30*time.Second),
		CachePath:       pkgconfig.GetEnvString("CACHE_PATH", "data/cache.db"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		RefreshSchedule: os.Getenv("REFRESH_SCHEDULE"),
		NewsAPIKey:      os.Getenv("NEWS_API_KEY"),
	}

	if err := pkgconfig.ValidatePositiveDuration(cfg.CacheMaxAge); err != nil {
		return nil, fmt.Errorf("CACHE_MAX_AGE: %w", err)
	}
	if err := pkgconfig.ValidatePositiveDuration(cfg.SourceTimeout); err != nil {
		return nil, fmt.Errorf("SOURCE_TIMEOUT: %w", err)
	}

	if path := os.Getenv("SOURCES_FILE"); path != "" {
		sources, err := loadSourcesFile(path)
		if err != nil {
			return nil, err
		}
		cfg.Sources = sources
	} else {
		cfg.Sources = []SourceConfig{{
			Name:     "NewsAPI",
			Kind:     KindNewsAPI,
			URL:      pkgconfig.GetEnvString("NEWS_API_URL", "https://newsapi.org/v2/everything"),
			Query:    pkgconfig.GetEnvString("NEWS_QUERY", "technology"),
			Language: pkgconfig.GetEnvString("NEWS_LANGUAGE", "en"),
			PageSize: pkgconfig.GetEnvInt("NEWS_PAGE_SIZE", 50),
		}}
	}

	for _, src := range cfg.Sources {
		switch src.Kind {
		case KindNewsAPI, KindRSS, KindSimulated:
		default:
			return nil, fmt.Errorf("source %q: unknown kind %q", src.Name, src.Kind)
		}
	}

	return cfg, nil
}

// sourcesFile is the YAML shape of the static source list.
type sourcesFile struct {
	Sources []SourceConfig `yaml:"sources"`
}

func loadSourcesFile(path string) ([]SourceConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sources file: %w", err)
	}

	var file sourcesFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse sources file: %w", err)
	}
	if len(file.Sources) == 0 {
		return nil, fmt.Errorf("sources file %s lists no sources", path)
	}
	return file.Sources, nil
}
