package infrastructure

import (
	"context"

	"weathernow.app/internal/ports"
)

type locationCounter interface {
	Len() int
}

// MetricsCollectorAdapter aggregates cache statistics and registry size
// for the JSON metrics endpoint
type MetricsCollectorAdapter struct {
	cacheMetrics ports.CacheMetrics
	locations    locationCounter
}

// MetricsCollectorConfig holds configuration for creating the metrics collector
type MetricsCollectorConfig struct {
	CacheMetrics ports.CacheMetrics
	Locations    locationCounter
}

// NewMetricsCollectorAdapter creates a new metrics collector adapter
func NewMetricsCollectorAdapter(config MetricsCollectorConfig) *MetricsCollectorAdapter {
	return &MetricsCollectorAdapter{
		cacheMetrics: config.CacheMetrics,
		locations:    config.Locations,
	}
}

// GetMetrics returns the current snapshot of collected metrics
func (m *MetricsCollectorAdapter) GetMetrics(ctx context.Context) (map[string]interface{}, error) {
	metrics := make(map[string]interface{})

	if m.cacheMetrics != nil {
		stats := m.cacheMetrics.GetStats()
		metrics["cache"] = map[string]interface{}{
			"hits":      stats.Hits,
			"misses":    stats.Misses,
			"total_ops": stats.TotalOps,
			"hit_ratio": stats.HitRatio,
			"updated":   stats.LastUpdated,
		}
	}

	if m.locations != nil {
		metrics["locations"] = map[string]interface{}{
			"listed": m.locations.Len(),
		}
	}

	return metrics, nil
}
