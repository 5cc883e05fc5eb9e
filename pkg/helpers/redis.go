package helpers

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient initializes a redis client
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// JSONCache stores JSON documents under a key namespace with a fixed TTL.
// A nil *JSONCache is a valid cache that never hits.
type JSONCache struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

// NewJSONCache returns nil when rdb is nil or ttl is not positive
func NewJSONCache(rdb *redis.Client, namespace string, ttl time.Duration) *JSONCache {
	if rdb == nil || ttl <= 0 {
		return nil
	}
	return &JSONCache{rdb: rdb, prefix: namespace + ":", ttl: ttl}
}

// Key returns the full redis key for k
func (c *JSONCache) Key(k string) string {
	if c == nil {
		return k
	}
	return c.prefix + k
}

// Get decodes the cached value into dest. A miss reports false without error.
func (c *JSONCache) Get(ctx context.Context, k string, dest any) (bool, error) {
	if c == nil {
		return false, nil
	}
	raw, err := c.rdb.Get(ctx, c.Key(k)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *JSONCache) Set(ctx context.Context, k string, v any) error {
	if c == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, c.Key(k), b, c.ttl).Err()
}
