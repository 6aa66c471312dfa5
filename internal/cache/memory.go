package cache

import (
	"context"
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// MemoryStore is an in-process Store. Reads do not extend an entry's TTL.
type MemoryStore struct {
	items *ttlcache.Cache[string, []byte]
}

// NewMemoryStore creates a store holding at most capacity entries; zero means unbounded.
func NewMemoryStore(capacity uint64) *MemoryStore {
	opts := []ttlcache.Option[string, []byte]{
		ttlcache.WithDisableTouchOnHit[string, []byte](),
	}
	if capacity > 0 {
		opts = append(opts, ttlcache.WithCapacity[string, []byte](capacity))
	}
	return &MemoryStore{items: ttlcache.New(opts...)}
}

func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	item := m.items.Get(key)
	if item == nil || item.IsExpired() {
		return nil, false, nil
	}
	value := item.Value()
	out := make([]byte, len(value))
	copy(out, value)
	return out, true, nil
}

func (m *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	stored := make([]byte, len(value))
	copy(stored, value)
	m.items.Set(key, stored, ttl)
	return nil
}

func (m *MemoryStore) Ping(context.Context) error {
	return nil
}

// Len reports the number of entries, expired ones included until evicted.
func (m *MemoryStore) Len() int {
	return m.items.Len()
}
