// README: Per-user recommendation cache backed by Redis.
package intelligence

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"trailbook/internal/types"
)

// Cache stores one recommendation set per user. There is no versioning and no
// concurrent-writer arbitration: Put overwrites, last writer wins.
type Cache interface {
	// Get returns the cached set for the user, or (nil, nil) on a miss.
	Get(ctx context.Context, userID types.ID) (*CachedRecommendationSet, error)
	Put(ctx context.Context, userID types.ID, set *CachedRecommendationSet) error
}

type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisCache returns a Cache keyed by user id. ttl is a storage bound
// only; freshness is judged by the set's GeneratedAt, not by key expiry.
func NewRedisCache(rdb *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{rdb: rdb, ttl: ttl}
}

func cacheKey(userID types.ID) string {
	return "recommendations:" + string(userID)
}

func (c *RedisCache) Get(ctx context.Context, userID types.ID) (*CachedRecommendationSet, error) {
	raw, err := c.rdb.Get(ctx, cacheKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var set CachedRecommendationSet
	if err := json.Unmarshal(raw, &set); err != nil {
		// A corrupt entry is treated as a miss; the next Put overwrites it.
		return nil, nil
	}
	return &set, nil
}

func (c *RedisCache) Put(ctx context.Context, userID types.ID, set *CachedRecommendationSet) error {
	raw, err := json.Marshal(set)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, cacheKey(userID), raw, c.ttl).Err()
}
