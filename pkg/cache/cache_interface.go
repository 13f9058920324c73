package cache

import (
	"context"
	"time"
)

// Cache defines the contract for the cache layer.
// Allows swapping the implementation (Redis, in-memory for tests).
type Cache interface {
	// Get reads a key and unmarshals it into dest.
	// Returns found=false on a cache miss; dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores a value with a TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes keys.
	Delete(ctx context.Context, keys ...string) error

	// Increment atomically increments a counter key, used for
	// failed login tracking.
	Increment(ctx context.Context, key string) (int64, error)

	// Expire sets a TTL on an existing key.
	Expire(ctx context.Context, key string, ttl time.Duration) error

	// Ping verifies the connection.
	Ping(ctx context.Context) error
}
