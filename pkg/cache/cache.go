// Package cache stores rendered frames.
//
// Three backends implement [Cache]:
//
//   - [NullCache]: stores nothing (caching disabled)
//   - [FileCache]: one file per entry below a directory, for the CLI and
//     single-instance servers
//   - [RedisCache]: go-redis client, for servers sharing a cache
//
// [Open] selects a backend by name and wraps it so cache traffic reaches
// the observability cache hooks. Keys come from [FrameKey], which hashes
// everything that changes a frame's pixels.
package cache

import (
	"context"
	"time"

	"github.com/matzehuels/relgraph/pkg/errors"
	"github.com/matzehuels/relgraph/pkg/observability"
)

// Cache is a byte cache with per-entry TTL.
type Cache interface {
	// Get returns the value and true on a hit. Misses are not errors.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data. A zero ttl keeps the entry until deleted.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// Backend names accepted by Open.
const (
	BackendNone  = "none"
	BackendFile  = "file"
	BackendRedis = "redis"
)

// Options selects and configures a backend.
type Options struct {
	Backend string
	Dir     string // file backend
	Redis   RedisConfig
}

// Open returns the configured backend wrapped with observability hooks.
func Open(ctx context.Context, opts Options) (Cache, error) {
	var (
		c   Cache
		err error
	)
	switch opts.Backend {
	case "", BackendNone:
		return NewNullCache(), nil
	case BackendFile:
		c, err = NewFileCache(opts.Dir)
	case BackendRedis:
		c, err = NewRedisCache(ctx, opts.Redis)
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q (must be none, file or redis)", opts.Backend)
	}
	if err != nil {
		return nil, err
	}
	return WithHooks(c), nil
}

// WithHooks reports hits, misses and writes of c to observability.Cache().
func WithHooks(c Cache) Cache {
	return &hooked{Cache: c}
}

type hooked struct {
	Cache
}

func (h *hooked) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, ok, err := h.Cache.Get(ctx, key)
	if err != nil {
		return nil, false, err
	}
	if ok {
		observability.Cache().OnCacheHit(ctx, key)
	} else {
		observability.Cache().OnCacheMiss(ctx, key)
	}
	return data, ok, nil
}

func (h *hooked) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := h.Cache.Set(ctx, key, data, ttl); err != nil {
		return err
	}
	observability.Cache().OnCacheSet(ctx, key, len(data))
	return nil
}
