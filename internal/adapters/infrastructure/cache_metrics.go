package infrastructure

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"weathernow.app/internal/ports"
	"weathernow.app/pkg/errors"
)

// PrometheusCacheMetrics counts cache hits and misses for one cache type and
// mirrors them into Prometheus collectors registered on a caller-supplied registerer.
type PrometheusCacheMetrics struct {
	cacheType string
	now       func() time.Time

	hits     prometheus.Counter
	misses   prometheus.Counter
	requests prometheus.Counter
	ratio    prometheus.Gauge
	latency  *prometheus.HistogramVec

	mu    sync.RWMutex
	stats ports.CacheStats
}

var _ ports.CacheMetrics = (*PrometheusCacheMetrics)(nil)

// NewPrometheusCacheMetrics registers the cache collectors on reg
func NewPrometheusCacheMetrics(reg prometheus.Registerer, cacheType string) *PrometheusCacheMetrics {
	factory := promauto.With(reg)
	labels := prometheus.Labels{"cache_type": cacheType}

	return &PrometheusCacheMetrics{
		cacheType: cacheType,
		now:       time.Now,
		hits: factory.NewCounter(prometheus.CounterOpts{
			Name:        "weather_cache_hits_total",
			Help:        "The total number of cache hits",
			ConstLabels: labels,
		}),
		misses: factory.NewCounter(prometheus.CounterOpts{
			Name:        "weather_cache_misses_total",
			Help:        "The total number of cache misses",
			ConstLabels: labels,
		}),
		requests: factory.NewCounter(prometheus.CounterOpts{
			Name:        "weather_cache_requests_total",
			Help:        "The total number of cache lookups",
			ConstLabels: labels,
		}),
		ratio: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "weather_cache_hit_ratio",
			Help:        "Cache hit ratio (hits/total lookups)",
			ConstLabels: labels,
		}),
		latency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "weather_cache_duration_seconds",
			Help:        "Cache operation duration in seconds",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: labels,
		}, []string{"operation"}),
	}
}

func (m *PrometheusCacheMetrics) RecordHit() {
	m.hits.Inc()
	m.record(1, 0)
}

func (m *PrometheusCacheMetrics) RecordMiss() {
	m.misses.Inc()
	m.record(0, 1)
}

func (m *PrometheusCacheMetrics) RecordOperation(operation string, duration time.Duration) {
	m.latency.WithLabelValues(operation).Observe(duration.Seconds())
}

// GetStats returns the counters accumulated since start
func (m *PrometheusCacheMetrics) GetStats() ports.CacheStats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stats
}

func (m *PrometheusCacheMetrics) record(hits, misses int64) {
	m.requests.Inc()

	m.mu.Lock()
	defer m.mu.Unlock()

	m.stats.Hits += hits
	m.stats.Misses += misses
	m.stats.TotalOps++
	m.stats.HitRatio = float64(m.stats.Hits) / float64(m.stats.TotalOps)
	m.stats.LastUpdated = m.now()
	m.ratio.Set(m.stats.HitRatio)
}

// InstrumentedCacheProvider records lookups and latencies of a wrapped cache provider
type InstrumentedCacheProvider struct {
	cache   ports.CacheProvider
	metrics ports.CacheMetrics
}

var _ ports.CacheProvider = (*InstrumentedCacheProvider)(nil)

func NewInstrumentedCacheProvider(cache ports.CacheProvider, metrics ports.CacheMetrics) *InstrumentedCacheProvider {
	return &InstrumentedCacheProvider{cache: cache, metrics: metrics}
}

// Get counts a hit for a stored value and a miss for a NotFound error.
// Other failures are timed but not counted.
func (c *InstrumentedCacheProvider) Get(ctx context.Context, key string) ([]byte, error) {
	start := time.Now()
	value, err := c.cache.Get(ctx, key)
	c.metrics.RecordOperation("get", time.Since(start))

	switch {
	case err == nil:
		c.metrics.RecordHit()
	case errors.IsNotFoundError(err):
		c.metrics.RecordMiss()
	}
	return value, err
}

func (c *InstrumentedCacheProvider) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	start := time.Now()
	err := c.cache.Set(ctx, key, value, ttl)
	c.metrics.RecordOperation("set", time.Since(start))
	return err
}

func (c *InstrumentedCacheProvider) Delete(ctx context.Context, key string) error {
	start := time.Now()
	err := c.cache.Delete(ctx, key)
	c.metrics.RecordOperation("delete", time.Since(start))
	return err
}

func (c *InstrumentedCacheProvider) Exists(ctx context.Context, key string) (bool, error) {
	return c.cache.Exists(ctx, key)
}

func (c *InstrumentedCacheProvider) Clear(ctx context.Context) error {
	start := time.Now()
	err := c.cache.Clear(ctx)
	c.metrics.RecordOperation("clear", time.Since(start))
	return err
}
