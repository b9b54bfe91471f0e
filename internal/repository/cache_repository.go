// Package repository defines persistence interfaces used by the use case
// layer. Concrete implementations live under internal/infra/adapter.
package repository

import (
	"context"

	"news-digest/internal/domain/entity"
)

// CacheRepository persists the single cache slot holding the result of the
// last successful aggregation cycle.
//
// Load returns entity.ErrCacheMiss (possibly wrapped) when the slot is
// empty. Backend failures and corrupted records are returned as errors;
// the caller decides whether to treat them as a miss.
//
// Save overwrites the slot atomically: the article list and the fetch
// timestamp are stored together or not at all.
type CacheRepository interface {
	Load(ctx context.Context) (*entity.CacheEntry, error)
	Save(ctx context.Context, entry *entity.CacheEntry) error
}
