package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/golang/snappy"
	"github.com/redis/go-redis/v9"

	"github.com/qualimetry/qualimetry/internal/config"
)

// RedisCache is a ResultCache backed by Redis. Payloads are Snappy-compressed
// before storage; analysis results are repetitive JSON and compress well.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// newRedisCache connects to Redis and verifies the connection.
func newRedisCache(cfg config.CacheConfig) (*RedisCache, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		// Fallback to simple options
		opts = &redis.Options{
			Addr:     cfg.URL,
			Password: cfg.Password,
			DB:       cfg.DB,
		}
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisCache{client: client, ttl: cfg.TTL}, nil
}

// Get retrieves and decompresses a cached payload.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	compressed, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cache key %s: %w", key, err)
	}

	data, err := snappy.Decode(nil, compressed)
	if err != nil {
		// A corrupt entry is treated as a miss; it will be overwritten.
		return nil, false, nil
	}

	return data, true, nil
}

// Set compresses and stores a payload with the configured TTL.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte) error {
	compressed := snappy.Encode(nil, data)

	if err := c.client.Set(ctx, key, compressed, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cache key %s: %w", key, err)
	}
	return nil
}

// Close closes the Redis connection.
func (c *RedisCache) Close() error {
	return c.client.Close()
}
