// Package cache provides byte caches for rendered frames and SVG documents.
//
// Rendering a step is a pure function of the input graph and the step
// threshold, so results can be memoised for the lifetime of the process.
// Nothing is persisted: [MemoryCache] lives in memory only and [NullCache]
// disables caching entirely.
//
// Keys are built with [Key], which hashes its parts so that arbitrary node
// IDs or option values never collide with the separator.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values by key.
type Cache interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}
