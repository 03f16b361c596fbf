package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache is a ResponseCache shared through Redis. Expiry is delegated to
// the key TTL.
type RedisCache struct {
	Client *redis.Client
	Prefix string
}

// NewRedisCache connects to addr and verifies the connection.
func NewRedisCache(ctx context.Context, addr, password string) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis cache: ping %s: %w", addr, err)
	}

	return &RedisCache{Client: client, Prefix: "http-cache:"}, nil
}

// ResponseKey hashes the request key so long URLs make short Redis keys.
func (c *RedisCache) ResponseKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return c.Prefix + hex.EncodeToString(sum[:])
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	body, err := c.Client.Get(ctx, c.ResponseKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis cache: get: %w", err)
	}
	return body, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, body []byte, ttl time.Duration) error {
	if err := c.Client.Set(ctx, c.ResponseKey(key), body, ttl).Err(); err != nil {
		return fmt.Errorf("redis cache: set: %w", err)
	}
	return nil
}

func (c *RedisCache) Close() error {
	return c.Client.Close()
}
