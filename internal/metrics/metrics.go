package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors of the aggregation engine.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	CacheHits            *prometheus.CounterVec
	CacheMisses          *prometheus.CounterVec
	CacheErrors          *prometheus.CounterVec
	ComputeDuration      *prometheus.HistogramVec
	TranslationLookups   prometheus.Counter
	TranslationBatchSize prometheus.Histogram
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		CacheHits: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "contentfeed_cache_hits_total",
			Help: "Total number of cache hits by document kind",
		}, []string{"kind"}),
		CacheMisses: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "contentfeed_cache_misses_total",
			Help: "Total number of cache misses by document kind",
		}, []string{"kind"}),
		CacheErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "contentfeed_cache_errors_total",
			Help: "Total number of cache store failures by operation",
		}, []string{"op"}),
		ComputeDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "contentfeed_compute_duration_seconds",
			Help:    "Time spent building a document on a cache miss",
			Buckets: prometheus.DefBuckets,
		}, []string{"kind"}),
		TranslationLookups: factory.NewCounter(prometheus.CounterOpts{
			Name: "contentfeed_translation_lookups_total",
			Help: "Total number of batched translation lookups issued to the localization store",
		}),
		TranslationBatchSize: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "contentfeed_translation_batch_keys",
			Help:    "Number of localization keys per batched lookup",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}),
	}
}

func (m *Metrics) RecordCacheHit(kind string) {
	if m == nil {
		return
	}
	m.CacheHits.WithLabelValues(kind).Inc()
}

func (m *Metrics) RecordCacheMiss(kind string) {
	if m == nil {
		return
	}
	m.CacheMisses.WithLabelValues(kind).Inc()
}

func (m *Metrics) RecordCacheError(op string) {
	if m == nil {
		return
	}
	m.CacheErrors.WithLabelValues(op).Inc()
}

func (m *Metrics) ObserveCompute(kind string, seconds float64) {
	if m == nil {
		return
	}
	m.ComputeDuration.WithLabelValues(kind).Observe(seconds)
}

func (m *Metrics) RecordTranslationLookup(keys int) {
	if m == nil {
		return
	}
	m.TranslationLookups.Inc()
	m.TranslationBatchSize.Observe(float64(keys))
}
