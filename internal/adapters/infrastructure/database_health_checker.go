package infrastructure

import (
	"context"

	"gorm.io/gorm"
	"weathernow.app/internal/ports"
)

const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"
)

// DatabaseHealthChecker pings the location store
type DatabaseHealthChecker struct {
	db *gorm.DB
}

var _ ports.HealthChecker = (*DatabaseHealthChecker)(nil)

// NewDatabaseHealthChecker creates a new database health checker
func NewDatabaseHealthChecker(db *gorm.DB) *DatabaseHealthChecker {
	return &DatabaseHealthChecker{db: db}
}

// Check verifies database connectivity
func (d *DatabaseHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	status := ports.HealthStatus{
		Component: "database",
		Details:   make(map[string]interface{}),
	}

	if d.db == nil {
		status.Status = statusUnhealthy
		status.Error = "database instance is nil"
		return status
	}

	status.Details["dialect"] = d.db.Dialector.Name()

	sqlDB, err := d.db.DB()
	if err != nil {
		status.Status = statusUnhealthy
		status.Error = "failed to get underlying database connection"
		return status
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		status.Status = statusUnhealthy
		status.Error = err.Error()
		return status
	}

	status.Status = statusHealthy
	status.Details["open_connections"] = sqlDB.Stats().OpenConnections
	return status
}

// PingHealthChecker reports the liveness of any client implementing ports.Pinger
type PingHealthChecker struct {
	component string
	pinger    ports.Pinger
}

var _ ports.HealthChecker = (*PingHealthChecker)(nil)

func NewPingHealthChecker(component string, pinger ports.Pinger) *PingHealthChecker {
	return &PingHealthChecker{component: component, pinger: pinger}
}

func (p *PingHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	status := ports.HealthStatus{Component: p.component, Status: statusHealthy}

	if p.pinger == nil {
		status.Status = statusUnhealthy
		status.Error = p.component + " client is not configured"
		return status
	}
	if err := p.pinger.Ping(ctx); err != nil {
		status.Status = statusUnhealthy
		status.Error = err.Error()
	}
	return status
}
