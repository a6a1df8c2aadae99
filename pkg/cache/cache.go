// Package cache stores planarity verdicts so repeated checks of the same
// island description skip the recursive search.
//
// Three backends implement [Cache]:
//   - [FileCache]: JSON entries under a local directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for the API server
//   - [NullCache]: caches nothing
//
// Keys come from a [Keyer]. [DefaultKeyer] hashes the input tokens together
// with every option that can change the verdict, so a key never aliases two
// different questions.
package cache

import (
	"context"
	"fmt"
	"time"
)

// DefaultTTL is how long a verdict stays cached when no TTL is configured.
// Verdicts depend only on the input, so the TTL just bounds disk usage.
const DefaultTTL = 7 * 24 * time.Hour

// Cache is a byte-oriented key/value store with expiry.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl <= 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// NullCache never stores anything. It backs --no-cache and the "none"
// backend.
type NullCache struct{}

// NewNullCache returns a cache on which every Get misses.
func NewNullCache() Cache { return &NullCache{} }

func (*NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (*NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (*NullCache) Delete(context.Context, string) error                     { return nil }
func (*NullCache) Close() error                                             { return nil }

// New builds the cache backend named by backend ("file", "redis" or
// "none"). dir is used by the file backend and addr by the redis backend.
func New(ctx context.Context, backend, dir, addr string) (Cache, error) {
	switch backend {
	case "", "file":
		fc, err := NewFileCache(dir)
		if err != nil {
			return nil, err
		}
		return fc, nil
	case "redis":
		return NewRedisCache(ctx, addr)
	case "none":
		return NewNullCache(), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", backend)
	}
}
