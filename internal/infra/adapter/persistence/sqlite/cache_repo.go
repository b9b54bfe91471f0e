// Package sqlite provides the SQLite implementation of the cache slot.
// It is the default backend: a single file scoped to one profile, holding
// exactly one row.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"news-digest/internal/domain/entity"
	"news-digest/internal/repository"

	_ "modernc.org/sqlite"
)

// Open creates (or opens) the cache database file and ensures the schema
// exists. The parent directory is created if needed.
func Open(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open cache db: %w", err)
	}
	// A single writer keeps the slot update atomic without WAL tuning.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS cache_slot (
    id            INTEGER PRIMARY KEY CHECK (id = 1),
    articles      TEXT    NOT NULL,
    fetched_at_ms INTEGER NOT NULL
)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init cache schema: %w", err)
	}

	return db, nil
}

// CacheRepo implements repository.CacheRepository using SQLite.
type CacheRepo struct{ db *sql.DB }

// NewCacheRepo creates a new SQLite-backed cache repository.
func NewCacheRepo(db *sql.DB) repository.CacheRepository {
	return &CacheRepo{db: db}
}

// Load reads the single cache slot. Returns entity.ErrCacheMiss when the
// slot has never been written.
func (repo *CacheRepo) Load(ctx context.Context) (*entity.CacheEntry, error) {
	const query = `SELECT articles, fetched_at_ms FROM cache_slot WHERE id = 1`

	var (
		raw       string
		fetchedMs int64
	)
	err := repo.db.QueryRowContext(ctx, query).Scan(&raw, &fetchedMs)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("Load: QueryRowContext: %w", err)
	}

	var articles []entity.Article
	if err := json.Unmarshal([]byte(raw), &articles); err != nil {
		return nil, fmt.Errorf("Load: corrupted article payload: %w", err)
	}

	return &entity.CacheEntry{
		Articles:  articles,
		FetchedAt: time.UnixMilli(fetchedMs).UTC(),
	}, nil
}

// Save overwrites the single cache slot with the given entry. The article
// list and timestamp land in one statement, so readers never observe a
// partial update.
func (repo *CacheRepo) Save(ctx context.Context, entry *entity.CacheEntry) error {
	const query = `
INSERT INTO cache_slot (id, articles, fetched_at_ms) VALUES (1, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    articles      = excluded.articles,
    fetched_at_ms = excluded.fetched_at_ms`

	raw, err := json.Marshal(entry.Articles)
	if err != nil {
		return fmt.Errorf("Save: marshal articles: %w", err)
	}

	if _, err := repo.db.ExecContext(ctx, query, string(raw), entry.FetchedAt.UnixMilli()); err != nil {
		return fmt.Errorf("Save: ExecContext: %w", err)
	}
	return nil
}
