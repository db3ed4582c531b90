// Package cache stores solved layouts so re-arranging an unchanged board is
// free.
//
// A layout is a pure function of the normalized items, the frame, the
// solver options and the jitter seed. [Keyer.LayoutKey] hashes all of these,
// so a hit is always safe to reuse.
//
// # Backends
//
//   - [NullCache]: never stores anything (caching disabled)
//   - [FileCache]: one JSON file per entry under a directory, for the CLI
//   - [RedisCache]: shared cache for multi-instance API deployments
//
// # Usage
//
//	c, err := cache.NewFileCache(dir)
//	key := cache.NewDefaultKeyer().LayoutKey(itemsHash, opts)
//	data, hit, err := c.Get(ctx, key)
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value cache with optional expiry.
type Cache interface {
	// Get returns the cached value and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero ttl means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// DefaultTTL is the expiry used for layout entries.
const DefaultTTL = 7 * 24 * time.Hour
