// Package cache stores fetched photo pages and photo details.
//
// A Cache is a byte store with per-entry TTLs. Four backends exist:
//   - FileCache: one JSON file per entry under a directory, used by the CLI
//   - RedisCache: shared cache for the layout service
//   - MongoCache: shared cache backed by a TTL-indexed collection
//   - NullCache: stores nothing
//
// Keys come from a Keyer so every backend agrees on naming.
package cache

import (
	"context"
	"fmt"
	"time"
)

// Cache is a key/value byte store with expiry.
type Cache interface {
	// Get returns the stored bytes and whether the key was present and fresh.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Clearer is implemented by caches that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) error
}

// Backend names accepted by Open.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
	BackendNone  = "none"
)

// Config selects and configures a backend.
type Config struct {
	Backend       string
	Dir           string
	RedisAddr     string
	MongoURI      string
	MongoDatabase string
}

// Open builds the cache named by cfg.Backend. An empty backend opens a file cache.
func Open(ctx context.Context, cfg Config) (Cache, error) {
	switch cfg.Backend {
	case "", BackendFile:
		return NewFileCache(cfg.Dir)
	case BackendRedis:
		return NewRedisCache(ctx, cfg.RedisAddr)
	case BackendMongo:
		return NewMongoCache(ctx, cfg.MongoURI, cfg.MongoDatabase)
	case BackendNone:
		return NewNullCache(), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}
