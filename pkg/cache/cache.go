// Package cache stores rendered GML documents keyed by their inputs.
//
// The HTTP server consults a [Cache] before decoding a request body: two
// requests with the same body, content type and export options produce the
// same document, so the second one is served from the cache. [Key] builds
// such keys.
//
// Three implementations are provided:
//   - [MemoryCache]: bounded in-process store for a single server
//   - [FileCache]: directory-backed store that survives restarts
//   - [NullCache]: never stores anything; used when caching is off
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry. A zero ttl means the entry
// does not expire. Implementations are safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
