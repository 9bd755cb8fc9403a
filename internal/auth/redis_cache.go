package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisTokenCache backs TokenCache with redis. Errors are swallowed:
// a broken cache must never break validation, it just costs an extra
// introspection round trip.
type RedisTokenCache struct {
	rdb *redis.Client
}

func NewRedisTokenCache(rdb *redis.Client) *RedisTokenCache {
	return &RedisTokenCache{rdb: rdb}
}

func (c *RedisTokenCache) Get(ctx context.Context, key string) ([]byte, bool) {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return raw, true
}

func (c *RedisTokenCache) Set(ctx context.Context, key string, val []byte, ttl time.Duration) {
	_ = c.rdb.Set(ctx, key, val, ttl).Err()
}
