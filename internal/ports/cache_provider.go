package ports

import (
	"context"
	"time"
)

// CacheProvider defines the contract for caching operations.
// A ttl of zero stores the value without expiry.
type CacheProvider interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Clear(ctx context.Context) error
}

// CacheStats represents cache performance metrics
type CacheStats struct {
	Hits        int64
	Misses      int64
	TotalOps    int64
	HitRatio    float64
	LastUpdated time.Time
}

// CacheMetrics defines the contract for cache performance tracking
type CacheMetrics interface {
	GetStats() CacheStats
	RecordHit()
	RecordMiss()
	RecordOperation(operation string, duration time.Duration)
}

// WeatherCache stores decoded snapshots by cache key
type WeatherCache interface {
	Get(ctx context.Context, key string) (*WeatherSnapshot, error)
	Set(ctx context.Context, key string, snapshot *WeatherSnapshot, ttl time.Duration) error
	Clear(ctx context.Context) error
}

// IconCache stores icon image bytes by icon code
type IconCache interface {
	Get(ctx context.Context, code string) ([]byte, error)
	Set(ctx context.Context, code string, image []byte, ttl time.Duration) error
}
