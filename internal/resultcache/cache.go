// Package resultcache caches rendered decision results by token so a caller
// can re-fetch a decision without re-running the pipeline. Values are opaque
// JSON; entries expire after a configured TTL.
package resultcache

import (
	"context"
	"time"
)

// Cache stores serialized results under an opaque token.
type Cache interface {
	// Put stores the value for ttl. A zero ttl means no expiry.
	Put(ctx context.Context, token string, value []byte, ttl time.Duration) error
	// Get returns the cached value. Unknown tokens yield sentinel.ErrNotFound
	// and entries past their TTL yield sentinel.ErrExpired; backends that
	// evict natively on expiry report expired entries as not found.
	Get(ctx context.Context, token string) ([]byte, error)
}
