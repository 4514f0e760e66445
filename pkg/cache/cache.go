// Package cache stores computed layouts keyed by content hash.
//
// Three backends implement [Cache]:
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [RedisCache]: shared cache for the HTTP server
//   - [NullCache]: never stores anything (--no-cache)
//
// Keys come from a [Keyer]. [DefaultKeyer] hashes the layout content and the
// options that influence the result; [ScopedKeyer] prefixes keys for tenant
// isolation.
package cache

import (
	"context"
	"time"
)

// Default TTLs for cached entries.
const (
	// TTLCompact is how long a compaction result stays valid. Compaction is
	// deterministic, so the TTL only bounds disk and memory growth.
	TTLCompact = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with expiry.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
