package cache

import (
	"context"
	"time"
)

// Store is the cache used by the dashboard stats aggregator. Implementations
// must treat a miss and an expired key the same way: ok == false, no error.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
}
