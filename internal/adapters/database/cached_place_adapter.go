package database

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/zatekoja/tripwise/internal/domain/entities"
	"github.com/zatekoja/tripwise/internal/domain/providers"
	"github.com/zatekoja/tripwise/internal/domain/repositories"
	"github.com/zatekoja/tripwise/internal/infrastructure/observability"
)

// defaultCatalogTTL is in seconds
const defaultCatalogTTL = 60

const placeCatalogCacheKey = "places:all"

// CachedPlaceAdapter wraps a PlaceRepository with a read-through cache. The
// catalog entry is dropped whenever places are upserted.
type CachedPlaceAdapter struct {
	adapter    repositories.PlaceRepository
	cache      providers.CacheProvider
	catalogTTL int
	metrics    *observability.Metrics
}

// NewCachedPlaceAdapter creates a new cached place adapter. A non-positive
// catalogTTL uses one minute.
func NewCachedPlaceAdapter(adapter repositories.PlaceRepository, cache providers.CacheProvider, catalogTTL int, metrics *observability.Metrics) repositories.PlaceRepository {
	if catalogTTL <= 0 {
		catalogTTL = defaultCatalogTTL
	}
	return &CachedPlaceAdapter{
		adapter:    adapter,
		cache:      cache,
		catalogTTL: catalogTTL,
		metrics:    metrics,
	}
}

// ListAll retrieves the catalog with caching
func (a *CachedPlaceAdapter) ListAll(ctx context.Context) ([]*entities.Place, error) {
	var places []*entities.Place
	if a.lookup(ctx, placeCatalogCacheKey, &places) {
		return places, nil
	}

	places, err := a.adapter.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	a.store(ctx, placeCatalogCacheKey, places, a.catalogTTL)
	return places, nil
}

// UpsertMany writes through and drops the cached catalog
func (a *CachedPlaceAdapter) UpsertMany(ctx context.Context, places []*entities.Place) error {
	if err := a.adapter.UpsertMany(ctx, places); err != nil {
		return err
	}

	if err := a.cache.Delete(ctx, placeCatalogCacheKey); err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).
			Str("key", placeCatalogCacheKey).
			Msg("failed to invalidate place cache")
	}
	return nil
}

func (a *CachedPlaceAdapter) lookup(ctx context.Context, key string, dest interface{}) bool {
	data, err := a.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, providers.ErrCacheMiss) {
			observability.LoggerFromContext(ctx).Warn().Err(err).Str("key", key).Msg("place cache read failed")
		}
		observability.RecordCacheMiss(ctx, a.metrics, key)
		return false
	}

	if err := json.Unmarshal(data, dest); err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).Str("key", key).Msg("failed to decode cached places")
		observability.RecordCacheMiss(ctx, a.metrics, key)
		return false
	}

	observability.RecordCacheHit(ctx, a.metrics, key)
	return true
}

func (a *CachedPlaceAdapter) store(ctx context.Context, key string, value interface{}, ttl int) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := a.cache.Set(ctx, key, data, ttl); err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).Str("key", key).Msg("failed to cache places")
	}
}
