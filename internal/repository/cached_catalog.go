package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/terminal-bench/truckconfig/internal/engine"
	"github.com/terminal-bench/truckconfig/internal/models"
)

// CachedCatalog is a read-through Redis cache in front of a CatalogStore.
// Per-model reads are cached with a TTL; id-set and candidate lookups pass
// through. Cache failures fall back to the underlying store, so the cache
// can never turn a healthy catalog into a StoreUnavailableError.
type CachedCatalog struct {
	store engine.CatalogStore
	redis *redis.Client
	ttl   time.Duration
}

// NewCachedCatalog wraps a catalog store with Redis caching.
func NewCachedCatalog(store engine.CatalogStore, addr string, ttl time.Duration) *CachedCatalog {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &CachedCatalog{store: store, redis: rdb, ttl: ttl}
}

// Close releases the Redis connection.
func (c *CachedCatalog) Close() error {
	return c.redis.Close()
}

// ListOptionsForModel returns the cached option list for a model, loading
// and caching it on a miss.
func (c *CachedCatalog) ListOptionsForModel(ctx context.Context, modelID string) ([]models.Option, error) {
	key := "catalog:options:" + modelID

	if data, err := c.redis.Get(ctx, key).Bytes(); err == nil {
		var options []models.Option
		if err := json.Unmarshal(data, &options); err == nil {
			return options, nil
		}
		// Stale or corrupt entry; reload below.
		c.redis.Del(ctx, key)
	}

	options, err := c.store.ListOptionsForModel(ctx, modelID)
	if err != nil {
		return nil, err
	}
	c.put(ctx, key, options)
	return options, nil
}

// ListDefaultOptionIDs returns the cached default ids for a model.
func (c *CachedCatalog) ListDefaultOptionIDs(ctx context.Context, modelID string) ([]string, error) {
	key := "catalog:defaults:" + modelID

	if data, err := c.redis.Get(ctx, key).Bytes(); err == nil {
		var ids []string
		if err := json.Unmarshal(data, &ids); err == nil {
			return ids, nil
		}
		c.redis.Del(ctx, key)
	}

	ids, err := c.store.ListDefaultOptionIDs(ctx, modelID)
	if err != nil {
		return nil, err
	}
	c.put(ctx, key, ids)
	return ids, nil
}

// GetOptionsByIDs passes through; id sets are too variable to cache usefully.
func (c *CachedCatalog) GetOptionsByIDs(ctx context.Context, ids []string) ([]models.Option, error) {
	return c.store.GetOptionsByIDs(ctx, ids)
}

// FindCheapestOptionsByGroup passes through to preserve the store's ordering
// guarantee without a second copy of it in cache keys.
func (c *CachedCatalog) FindCheapestOptionsByGroup(ctx context.Context, componentGroup, modelID string) ([]models.Option, error) {
	return c.store.FindCheapestOptionsByGroup(ctx, componentGroup, modelID)
}

// Invalidate drops the cached entries for a model.
func (c *CachedCatalog) Invalidate(ctx context.Context, modelID string) {
	c.redis.Del(ctx, "catalog:options:"+modelID, "catalog:defaults:"+modelID)
}

func (c *CachedCatalog) put(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
		zap.S().Warnw("catalog cache write failed", "key", key, "error", err)
	}
}
