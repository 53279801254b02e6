package infrastructure

import (
	"context"

	"weathernow.app/internal/ports"
)

// SystemHealthChecker aggregates component health checks
type SystemHealthChecker struct {
	checkers       []ports.HealthChecker
	configProvider ports.ConfigProvider
}

var _ ports.SystemHealthChecker = (*SystemHealthChecker)(nil)

// SystemHealthCheckerConfig holds the configuration for creating a system health checker
type SystemHealthCheckerConfig struct {
	Checkers       []ports.HealthChecker
	ConfigProvider ports.ConfigProvider
}

// NewSystemHealthChecker creates a new system health checker
func NewSystemHealthChecker(config SystemHealthCheckerConfig) *SystemHealthChecker {
	return &SystemHealthChecker{
		checkers:       config.Checkers,
		configProvider: config.ConfigProvider,
	}
}

// CheckAll runs every component check, keyed by component name
func (s *SystemHealthChecker) CheckAll(ctx context.Context) map[string]ports.HealthStatus {
	results := make(map[string]ports.HealthStatus, len(s.checkers)+1)

	for _, checker := range s.checkers {
		status := checker.Check(ctx)
		results[status.Component] = status
	}

	if s.configProvider != nil {
		cache := s.configProvider.GetCacheConfig()
		db := s.configProvider.GetDatabaseConfig()
		results["config"] = ports.HealthStatus{
			Component: "config",
			Status:    statusHealthy,
			Details: map[string]interface{}{
				"cache_type":      cache.Type,
				"database_driver": db.Driver,
				"cache_ttl":       s.configProvider.GetWeatherConfig().CacheTTL.String(),
				"alerts_enabled":  s.configProvider.GetAlertConfig().Enabled,
			},
		}
	}

	return results
}
