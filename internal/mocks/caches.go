package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"weathernow.app/internal/ports"
)

// WeatherCache is a mock of ports.WeatherCache
type WeatherCache struct {
	mock.Mock
}

var _ ports.WeatherCache = (*WeatherCache)(nil)

func NewWeatherCache(t testingT) *WeatherCache {
	m := &WeatherCache{}
	register(t, &m.Mock)
	return m
}

func (m *WeatherCache) Get(ctx context.Context, key string) (*ports.WeatherSnapshot, error) {
	ret := m.Called(ctx, key)
	snapshot, _ := ret.Get(0).(*ports.WeatherSnapshot)
	return snapshot, errorAt(ret, 1)
}

func (m *WeatherCache) Set(ctx context.Context, key string, snapshot *ports.WeatherSnapshot, ttl time.Duration) error {
	return errorAt(m.Called(ctx, key, snapshot, ttl), 0)
}

func (m *WeatherCache) Clear(ctx context.Context) error {
	return errorAt(m.Called(ctx), 0)
}

// IconCache is a mock of ports.IconCache
type IconCache struct {
	mock.Mock
}

var _ ports.IconCache = (*IconCache)(nil)

func NewIconCache(t testingT) *IconCache {
	m := &IconCache{}
	register(t, &m.Mock)
	return m
}

func (m *IconCache) Get(ctx context.Context, code string) ([]byte, error) {
	ret := m.Called(ctx, code)
	image, _ := ret.Get(0).([]byte)
	return image, errorAt(ret, 1)
}

func (m *IconCache) Set(ctx context.Context, code string, image []byte, ttl time.Duration) error {
	return errorAt(m.Called(ctx, code, image, ttl), 0)
}

// CacheProvider is a mock of ports.CacheProvider
type CacheProvider struct {
	mock.Mock
}

var _ ports.CacheProvider = (*CacheProvider)(nil)

func NewCacheProvider(t testingT) *CacheProvider {
	m := &CacheProvider{}
	register(t, &m.Mock)
	return m
}

func (m *CacheProvider) Get(ctx context.Context, key string) ([]byte, error) {
	ret := m.Called(ctx, key)
	value, _ := ret.Get(0).([]byte)
	return value, errorAt(ret, 1)
}

func (m *CacheProvider) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return errorAt(m.Called(ctx, key, value, ttl), 0)
}

func (m *CacheProvider) Delete(ctx context.Context, key string) error {
	return errorAt(m.Called(ctx, key), 0)
}

func (m *CacheProvider) Exists(ctx context.Context, key string) (bool, error) {
	ret := m.Called(ctx, key)
	return ret.Bool(0), errorAt(ret, 1)
}

func (m *CacheProvider) Clear(ctx context.Context) error {
	return errorAt(m.Called(ctx), 0)
}
