// Package cache provides artifact caching for the render pipeline.
//
// Rendered artifacts (graph JSON, SVG, PDF, interactive HTML) are keyed by
// a hash of the workbook bytes plus the render options, so re-uploading
// the same ledger within the TTL skips the load/build/render work — the
// same role the original deployment's ten-minute data cache played.
//
// Three backends implement the [Cache] interface:
//   - [FileCache]: directory-backed, used by the CLI
//   - [RedisCache]: go-redis backed, for hosted multi-instance deployments
//   - [NullCache]: no-op, for tests and --no-cache runs
package cache

import (
	"context"
	"time"
)

// DefaultTTL bounds how long cached artifacts stay valid.
const DefaultTTL = 10 * time.Minute

// Cache stores rendered artifacts keyed by content hash.
type Cache interface {
	// Get retrieves a value. The second result reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A zero TTL means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// NullCache is a no-op cache that never stores anything.
// Useful for testing or when caching should be disabled.
type NullCache struct{}

// NewNullCache creates a null cache.
func NewNullCache() Cache {
	return &NullCache{}
}

// Get always returns a cache miss.
func (c *NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set does nothing.
func (c *NullCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return nil
}

// Delete does nothing.
func (c *NullCache) Delete(ctx context.Context, key string) error {
	return nil
}

// Close does nothing.
func (c *NullCache) Close() error {
	return nil
}

// Ensure NullCache implements Cache.
var _ Cache = (*NullCache)(nil)
