// Package cache implements the get-or-compute cache layer that fronts every
// public document, and the key-value stores it can run on.
package cache

import (
	"context"
	"time"
)

// Store is a key-value store with per-entry TTL. Entries expire passively;
// there is no invalidation. A missing or expired key is (nil, false, nil).
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Pinger is implemented by stores that can report reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}
