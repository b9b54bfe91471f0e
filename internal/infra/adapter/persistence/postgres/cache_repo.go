// Package postgres provides the PostgreSQL implementation of the cache
// slot, selected when DATABASE_URL is set. The schema mirrors the SQLite
// backend: one table, one row.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"news-digest/internal/domain/entity"
	"news-digest/internal/repository"
)

// MigrateUp creates the cache slot table if it does not exist.
func MigrateUp(db *sql.DB) error {
	_, err := db.Exec(`
CREATE TABLE IF NOT EXISTS cache_slot (
    id            INTEGER PRIMARY KEY CHECK (id = 1),
    articles      JSONB  NOT NULL,
    fetched_at_ms BIGINT NOT NULL
)`)
	if err != nil {
		return fmt.Errorf("create cache_slot table: %w", err)
	}
	return nil
}

// CacheRepo implements repository.CacheRepository using PostgreSQL.
type CacheRepo struct{ db *sql.DB }

// NewCacheRepo creates a new PostgreSQL-backed cache repository.
func NewCacheRepo(db *sql.DB) repository.CacheRepository {
	return &CacheRepo{db: db}
}

// Load reads the single cache slot. Returns entity.ErrCacheMiss when the
// slot has never been written.
func (repo *CacheRepo) Load(ctx context.Context) (*entity.CacheEntry, error) {
	const query = `SELECT articles, fetched_at_ms FROM cache_slot WHERE id = 1`

	var (
		raw       []byte
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
	if err := json.Unmarshal(raw, &articles); err != nil {
		return nil, fmt.Errorf("Load: corrupted article payload: %w", err)
	}

	return &entity.CacheEntry{
		Articles:  articles,
		FetchedAt: time.UnixMilli(fetchedMs).UTC(),
	}, nil
}

// Save overwrites the single cache slot atomically via upsert.
func (repo *CacheRepo) Save(ctx context.Context, entry *entity.CacheEntry) error {
	const query = `
INSERT INTO cache_slot (id, articles, fetched_at_ms) VALUES (1, $1, $2)
ON CONFLICT (id) DO UPDATE SET
    articles      = EXCLUDED.articles,
    fetched_at_ms = EXCLUDED.fetched_at_ms`

	raw, err := json.Marshal(entry.Articles)
	if err != nil {
		return fmt.Errorf("Save: marshal articles: %w", err)
	}

	if _, err := repo.db.ExecContext(ctx, query, raw, entry.FetchedAt.UnixMilli()); err != nil {
		return fmt.Errorf("Save: ExecContext: %w", err)
	}
	return nil
}
