package ports

import (
	"context"
	"time"
)

// Cache is the shared byte cache that sits in front of the catalog
// repositories. Errors are advisory: callers fall through to the repository.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores value under key; ttl <= 0 keeps it until deleted.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Delete is a no-op for missing keys.
	Delete(ctx context.Context, key string) error
}
