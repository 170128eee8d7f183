package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/unipair/match-service/internal/config"
	"github.com/unipair/match-service/internal/logger"
)

type RedisCache struct {
	Client *redis.Client
}

// NewRedisCache initializes Redis client from config.
// Only Addr is mandatory, Password/DB are optional.
func NewRedisCache(cfg *config.Config) *RedisCache {
	opts := &redis.Options{
		Addr: cfg.Redis.Addr,
	}
	if cfg.Redis.Password != "" {
		opts.Password = cfg.Redis.Password
	}
	if cfg.Redis.DB != 0 {
		opts.DB = cfg.Redis.DB
	}
	return &RedisCache{Client: redis.NewClient(opts)}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.Client.Ping(ctx).Err()
}

// GetJSON reads a key and unmarshals it into dest.
// Returns false on a miss. Backend errors degrade to a miss and are logged,
// so a flaky cache never fails a read path.
func (c *RedisCache) GetJSON(ctx context.Context, key string, dest any) bool {
	data, err := c.Client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false
	}
	if err != nil {
		logger.Warn("cache get failed, treating as miss", "key", key, "err", err)
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		logger.Warn("cache entry unmarshal failed, treating as miss", "key", key, "err", err)
		return false
	}
	return true
}

// SetJSON marshals value and stores it under key with a TTL.
// Failures are logged, not propagated: cache writes are best-effort.
func (c *RedisCache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		logger.Warn("cache value marshal failed", "key", key, "err", err)
		return
	}
	if err := c.Client.Set(ctx, key, data, ttl).Err(); err != nil {
		logger.Warn("cache set failed", "key", key, "err", err)
	}
}

func (c *RedisCache) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.Client.Del(ctx, keys...).Err()
}

// DeleteByPattern removes every key matching pattern using SCAN, so the
// backend is never blocked the way KEYS would.
func (c *RedisCache) DeleteByPattern(ctx context.Context, pattern string) (int, error) {
	var deleted int
	iter := c.Client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := c.Client.Del(ctx, iter.Val()).Err(); err != nil {
			return deleted, err
		}
		deleted++
	}
	if err := iter.Err(); err != nil {
		return deleted, err
	}
	return deleted, nil
}
