// Package cache is a thin JSON-over-Redis wrapper. A nil *Cache is a
// valid no-op instance so callers never have to branch on whether
// caching is configured.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/betterfund/betterfund-api/internal/config"
)

type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(conf *config.RedisConfig) *Cache {
	if conf == nil || conf.Addr == "" {
		return nil
	}

	ttl := time.Duration(conf.ActiveTTLSecond) * time.Second
	if ttl <= 0 {
		ttl = time.Minute
	}

	return &Cache{
		rdb: redis.NewClient(&redis.Options{
			Addr:     conf.Addr,
			Password: conf.Password,
			DB:       conf.DB,
		}),
		ttl: ttl,
	}
}

// Get unmarshals the cached value into dest and reports whether the
// key existed.
func (c *Cache) Get(ctx context.Context, key string, dest any) (bool, error) {
	if c == nil {
		return false, nil
	}

	val, err := c.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return true, json.Unmarshal([]byte(val), dest)
}

func (c *Cache) Set(ctx context.Context, key string, value any) error {
	if c == nil {
		return nil
	}

	b, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return c.rdb.Set(ctx, key, b, c.ttl).Err()
}

func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if c == nil || len(keys) == 0 {
		return nil
	}

	return c.rdb.Del(ctx, keys...).Err()
}
