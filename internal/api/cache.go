package api

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clutchly/internal/config"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
)

// Cache stores raw response bodies with a per-entry TTL.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

type nopCache struct{}

func (nopCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (nopCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

func NopCache() Cache {
	return nopCache{}
}

type RedisCache struct {
	client *redis.Client
	prefix string
}

func NewRedisCache(client *redis.Client, prefix string) *RedisCache {
	return &RedisCache{client: client, prefix: prefix}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, c.prefix+key, value, ttl).Err()
}

// NewCache returns a Redis-backed cache when REDIS_URL is set and a no-op
// cache otherwise. The redis client, if any, is returned so it can be closed.
func NewCache(cfg *config.Config, logger zerolog.Logger) (Cache, *redis.Client, error) {
	if cfg.RedisURL == "" {
		logger.Info().Msg("REDIS_URL not set, riot response cache disabled")
		return NopCache(), nil, nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn().Err(err).Msg("redis unreachable, riot response cache disabled")
		_ = client.Close()
		return NopCache(), nil, nil
	}

	logger.Info().Str("addr", opts.Addr).Msg("riot response cache connected")
	return NewRedisCache(client, "riot:"), client, nil
}
