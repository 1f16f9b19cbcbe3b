package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"wellnessapi/internal/config"
)

// Package cache wraps Redis for read-heavy lookups (site settings). The cache
// is optional: every accessor tolerates a nil *Client and callers fall
// through to the database.

// ErrMiss is returned when a key is absent from the cache.
var ErrMiss = errors.New("cache miss")

type Client struct {
	rdb *redis.Client
}

// NewRedis connects to Redis and verifies connectivity. An empty host returns
// (nil, nil): caching disabled.
func NewRedis(cfg config.RedisConfig) (*Client, error) {
	if cfg.Host == "" {
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Host + ":" + cfg.Port,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// Set stores value as JSON under key with the given TTL. No-op on a nil
// client.
func (c *Client) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if c == nil {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, data, ttl).Err()
}

// Get unmarshals the JSON stored under key into dest. Returns ErrMiss when
// the key is absent or the client is nil.
func (c *Client) Get(ctx context.Context, key string, dest any) error {
	if c == nil {
		return ErrMiss
	}
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrMiss
		}
		return err
	}
	return json.Unmarshal(data, dest)
}

// Delete drops keys. No-op on a nil client.
func (c *Client) Delete(ctx context.Context, keys ...string) error {
	if c == nil {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

// Close releases the underlying connection pool.
func (c *Client) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}
