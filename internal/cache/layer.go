package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/bilgisen/contentfeed/internal/logger"
	"github.com/bilgisen/contentfeed/internal/metrics"
)

// Tier is a named TTL class applied by endpoint volatility.
type Tier int

const (
	// TierShort is for list pages and feeds.
	TierShort Tier = iota
	// TierMedium is for per-entity detail pages.
	TierMedium
	// TierLong is for rarely changing composite pages.
	TierLong
)

func (t Tier) String() string {
	switch t {
	case TierShort:
		return "short"
	case TierMedium:
		return "medium"
	case TierLong:
		return "long"
	default:
		return fmt.Sprintf("tier(%d)", int(t))
	}
}

// Tiers maps each Tier to a TTL.
type Tiers struct {
	Short  time.Duration
	Medium time.Duration
	Long   time.Duration
}

func (t Tiers) TTL(tier Tier) time.Duration {
	switch tier {
	case TierMedium:
		return t.Medium
	case TierLong:
		return t.Long
	default:
		return t.Short
	}
}

type Options struct {
	// Version is appended to every key; bump it when a document shape changes.
	Version string
	Tiers   Tiers
	// SingleFlight collapses concurrent misses on one key within this process.
	SingleFlight bool
	Metrics      *metrics.Metrics
}

// Layer is the get-or-compute boundary in front of document builders.
// Store failures are logged and treated as misses.
type Layer struct {
	store   Store
	version string
	tiers   Tiers
	group   *singleflight.Group
	metrics *metrics.Metrics
	log     zerolog.Logger
}

func NewLayer(store Store, opts Options) *Layer {
	l := &Layer{
		store:   store,
		version: opts.Version,
		tiers:   opts.Tiers,
		metrics: opts.Metrics,
		log:     logger.Component("cache"),
	}
	if l.version == "" {
		l.version = "1"
	}
	if opts.SingleFlight {
		l.group = &singleflight.Group{}
	}
	return l
}

// Store returns the backing store.
func (l *Layer) Store() Store {
	return l.store
}

// StorageKey returns the namespaced key under which k is stored.
func (l *Layer) StorageKey(k Key) string {
	return k.String(l.version)
}

// GetOrCompute returns the cached value for key, or runs compute, stores its
// JSON encoding with the tier's TTL and returns it. The boolean reports a hit.
// Errors from compute are returned and nothing is stored.
func GetOrCompute[V any](ctx context.Context, l *Layer, key Key, tier Tier, compute func(context.Context) (V, error)) (V, bool, error) {
	storageKey := l.StorageKey(key)

	if raw, ok := l.lookup(ctx, storageKey); ok {
		var v V
		err := json.Unmarshal(raw, &v)
		if err == nil {
			l.metrics.RecordCacheHit(key.Kind)
			return v, true, nil
		}
		l.log.Warn().Err(err).Str("key", storageKey).Msg("Discarding undecodable cache entry")
	}
	l.metrics.RecordCacheMiss(key.Kind)

	run := func() (V, error) {
		return computeAndStore(ctx, l, key, storageKey, tier, compute)
	}

	if l.group == nil {
		v, err := run()
		return v, false, err
	}

	res, err, shared := l.group.Do(storageKey, func() (any, error) {
		return run()
	})
	if shared {
		l.log.Debug().Str("key", storageKey).Msg("Shared in-flight computation")
	}
	if err != nil {
		var zero V
		return zero, false, err
	}
	return res.(V), false, nil
}

// Document caches a JSON document. The returned bytes are identical on hit and miss.
func (l *Layer) Document(ctx context.Context, key Key, tier Tier, build func(context.Context) (any, error)) (json.RawMessage, bool, error) {
	return GetOrCompute(ctx, l, key, tier, func(ctx context.Context) (json.RawMessage, error) {
		doc, err := build(ctx)
		if err != nil {
			return nil, err
		}
		raw, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("encode %s document: %w", key.Kind, err)
		}
		return raw, nil
	})
}

func (l *Layer) lookup(ctx context.Context, storageKey string) ([]byte, bool) {
	raw, ok, err := l.store.Get(ctx, storageKey)
	if err != nil {
		l.metrics.RecordCacheError("get")
		l.log.Warn().Err(err).Str("key", storageKey).Msg("Cache read failed, computing")
		return nil, false
	}
	return raw, ok
}

func computeAndStore[V any](ctx context.Context, l *Layer, key Key, storageKey string, tier Tier, compute func(context.Context) (V, error)) (V, error) {
	start := time.Now()
	v, err := compute(ctx)
	l.metrics.ObserveCompute(key.Kind, time.Since(start).Seconds())
	if err != nil {
		var zero V
		return zero, err
	}

	raw, err := json.Marshal(v)
	if err != nil {
		var zero V
		return zero, fmt.Errorf("encode cache entry %s: %w", storageKey, err)
	}

	ttl := l.tiers.TTL(tier)
	if ttl <= 0 {
		return v, nil
	}
	if err := l.store.Set(ctx, storageKey, raw, ttl); err != nil {
		l.metrics.RecordCacheError("set")
		l.log.Warn().Err(err).Str("key", storageKey).Msg("Cache write failed")
	}
	return v, nil
}
