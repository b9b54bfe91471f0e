package sqlite_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"news-digest/internal/domain/entity"
	"news-digest/internal/infra/adapter/persistence/sqlite"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestCacheRepo_LoadMissOnEmptySlot(t *testing.T) {
	repo := sqlite.NewCacheRepo(openTestDB(t))

	_, err := repo.Load(context.Background())
	assert.ErrorIs(t, err, entity.ErrCacheMiss)
}

func TestCacheRepo_SaveThenLoad(t *testing.T) {
	repo := sqlite.NewCacheRepo(openTestDB(t))
	ctx := context.Background()

	fetchedAt := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	entry := &entity.CacheEntry{
		Articles: []entity.Article{
			{Title: "Y", Source: "b", URL: "https://example.com/y", PublishedAt: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)},
			{Title: "X", Source: "a", URL: "https://example.com/x", PublishedAt: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)},
		},
		FetchedAt: fetchedAt,
	}

	require.NoError(t, repo.Save(ctx, entry))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, entry.Articles, got.Articles)
	assert.Equal(t, fetchedAt, got.FetchedAt)
}

func TestCacheRepo_SaveOverwritesSlot(t *testing.T) {
	repo := sqlite.NewCacheRepo(openTestDB(t))
	ctx := context.Background()

	first := &entity.CacheEntry{
		Articles:  []entity.Article{{Title: "old"}},
		FetchedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	second := &entity.CacheEntry{
		Articles:  []entity.Article{{Title: "new-1"}, {Title: "new-2"}},
		FetchedAt: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
	}

	require.NoError(t, repo.Save(ctx, first))
	require.NoError(t, repo.Save(ctx, second))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got.Articles, 2, "the slot holds exactly one entry")
	assert.Equal(t, "new-1", got.Articles[0].Title)
	assert.Equal(t, second.FetchedAt, got.FetchedAt)
}

func TestCacheRepo_LoadCorruptedPayload(t *testing.T) {
	db := openTestDB(t)
	repo := sqlite.NewCacheRepo(db)

	_, err := db.Exec(`INSERT INTO cache_slot (id, articles, fetched_at_ms) VALUES (1, 'not json', 0)`)
	require.NoError(t, err)

	_, err = repo.Load(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, entity.ErrCacheMiss, "corruption is an error, not a miss")
}
