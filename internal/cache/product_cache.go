// Package cache provides a redis read-through cache for product existence
// lookups. Cache trouble never fails a request; lookups fall through to the
// underlying repository.
package cache

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"storefinder-api/internal/metrics"

	"github.com/redis/go-redis/v9"
)

// ProductLookup mirrors the lookup collaborator being cached.
type ProductLookup interface {
	ExistsByName(ctx context.Context, name string) (bool, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
}

// CachedProductLookup wraps a ProductLookup with a redis read-through cache.
// A nil client disables caching entirely.
type CachedProductLookup struct {
	rdb  *redis.Client
	next ProductLookup
	ttl  time.Duration
}

// NewCachedProductLookup creates a cached product lookup with the given TTL.
func NewCachedProductLookup(rdb *redis.Client, next ProductLookup, ttl time.Duration) *CachedProductLookup {
	return &CachedProductLookup{rdb: rdb, next: next, ttl: ttl}
}

func (c *CachedProductLookup) lookup(ctx context.Context, key string, miss func() (bool, error)) (bool, error) {
	if c.rdb == nil {
		return miss()
	}

	val, err := c.rdb.Get(ctx, key).Result()
	if err == nil {
		metrics.ProductCacheHitsTotal.Inc()
		return val == "1", nil
	}
	if !errors.Is(err, redis.Nil) {
		// Redis being down must not fail the search path.
		return miss()
	}

	metrics.ProductCacheMissesTotal.Inc()
	exists, err := miss()
	if err != nil {
		return false, err
	}

	cached := "0"
	if exists {
		cached = "1"
	}
	c.rdb.Set(ctx, key, cached, c.ttl)

	return exists, nil
}

// ExistsByName reports whether a product with a matching name exists,
// consulting the cache first.
func (c *CachedProductLookup) ExistsByName(ctx context.Context, name string) (bool, error) {
	key := "product:name:" + strings.ToLower(strings.TrimSpace(name))
	return c.lookup(ctx, key, func() (bool, error) {
		return c.next.ExistsByName(ctx, name)
	})
}

// ExistsByID reports whether a product with the given id exists, consulting
// the cache first.
func (c *CachedProductLookup) ExistsByID(ctx context.Context, id int64) (bool, error) {
	key := "product:id:" + strconv.FormatInt(id, 10)
	return c.lookup(ctx, key, func() (bool, error) {
		return c.next.ExistsByID(ctx, id)
	})
}
