package cache

import (
	"context"
)

// Cache is the key/value protocol the cache-aside layer speaks. The cache is
// never a source of truth: every implementation error is advisory and callers
// degrade to the database on failure.
type Cache interface {
	// Ping returns the cache server liveliness response
	Ping(ctx context.Context) error

	// Close closes the server connection
	Close() error

	// Get returns the value associated with the key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, overwriting any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// DelPrefix removes every key sharing the given prefix. This is the
	// family-level invalidation used after mutations.
	DelPrefix(ctx context.Context, prefix string) error
}
