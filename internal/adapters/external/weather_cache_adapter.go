package external

import (
	"context"
	"encoding/json"
	"time"

	"weathernow.app/internal/ports"
	"weathernow.app/pkg/errors"
)

const iconKeyPrefix = "icon:"

// WeatherCacheAdapter bridges generic CacheProvider to weather-specific WeatherCache
type WeatherCacheAdapter struct {
	cacheProvider ports.CacheProvider
}

var _ ports.WeatherCache = (*WeatherCacheAdapter)(nil)

// NewWeatherCacheAdapter creates a weather cache adapter using generic cache provider
func NewWeatherCacheAdapter(cacheProvider ports.CacheProvider) *WeatherCacheAdapter {
	return &WeatherCacheAdapter{
		cacheProvider: cacheProvider,
	}
}

// Get retrieves a snapshot from cache
func (w *WeatherCacheAdapter) Get(ctx context.Context, key string) (*ports.WeatherSnapshot, error) {
	data, err := w.cacheProvider.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	var snapshot ports.WeatherSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, errors.NewDecodingError("failed to deserialize cached weather", err)
	}

	return &snapshot, nil
}

// Set stores a snapshot in cache
func (w *WeatherCacheAdapter) Set(ctx context.Context, key string, snapshot *ports.WeatherSnapshot, ttl time.Duration) error {
	if snapshot == nil {
		return errors.NewValidationError("weather snapshot cannot be nil")
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		return errors.NewExternalAPIError("failed to serialize weather snapshot", err)
	}

	return w.cacheProvider.Set(ctx, key, data, ttl)
}

// Clear evicts everything held by the underlying provider, icons included
func (w *WeatherCacheAdapter) Clear(ctx context.Context) error {
	return w.cacheProvider.Clear(ctx)
}

// IconCacheAdapter stores raw icon images under icon:<code>
type IconCacheAdapter struct {
	cacheProvider ports.CacheProvider
}

var _ ports.IconCache = (*IconCacheAdapter)(nil)

func NewIconCacheAdapter(cacheProvider ports.CacheProvider) *IconCacheAdapter {
	return &IconCacheAdapter{
		cacheProvider: cacheProvider,
	}
}

func (i *IconCacheAdapter) Get(ctx context.Context, code string) ([]byte, error) {
	return i.cacheProvider.Get(ctx, iconKeyPrefix+code)
}

func (i *IconCacheAdapter) Set(ctx context.Context, code string, image []byte, ttl time.Duration) error {
	if len(image) == 0 {
		return errors.NewValidationError("icon image cannot be empty")
	}
	return i.cacheProvider.Set(ctx, iconKeyPrefix+code, image, ttl)
}
