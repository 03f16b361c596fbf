package storage

import (
	"context"
	"fmt"
	"time"
)

const (
	CacheBackendSQLite = "sqlite"
	CacheBackendRedis  = "redis"
	CacheBackendNone   = "none"
)

// CacheOptions selects and configures a ResponseCache backend.
type CacheOptions struct {
	Backend       string
	Path          string
	RedisAddr     string
	RedisPassword string
}

// OpenCache returns the backend named in opts.
func OpenCache(ctx context.Context, opts CacheOptions) (ResponseCache, error) {
	switch opts.Backend {
	case CacheBackendSQLite, "":
		return OpenSQLiteCache(opts.Path)
	case CacheBackendRedis:
		return NewRedisCache(ctx, opts.RedisAddr, opts.RedisPassword)
	case CacheBackendNone:
		return NoopCache{}, nil
	default:
		return nil, fmt.Errorf("cache: unknown backend %q", opts.Backend)
	}
}

// NoopCache never stores anything.
type NoopCache struct{}

func (NoopCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (NoopCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NoopCache) Close() error { return nil }
