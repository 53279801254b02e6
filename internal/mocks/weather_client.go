package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"weathernow.app/internal/ports"
)

// WeatherClient is a mock of ports.WeatherClient
type WeatherClient struct {
	mock.Mock
}

var _ ports.WeatherClient = (*WeatherClient)(nil)

func NewWeatherClient(t testingT) *WeatherClient {
	m := &WeatherClient{}
	register(t, &m.Mock)
	return m
}

func (m *WeatherClient) FetchWeather(ctx context.Context, latitude, longitude float64) (*ports.WeatherSnapshot, error) {
	ret := m.Called(ctx, latitude, longitude)
	snapshot, _ := ret.Get(0).(*ports.WeatherSnapshot)
	return snapshot, errorAt(ret, 1)
}

func (m *WeatherClient) FetchIcon(ctx context.Context, iconCode string) []byte {
	ret := m.Called(ctx, iconCode)
	image, _ := ret.Get(0).([]byte)
	return image
}

// Geocoder is a mock of ports.Geocoder
type Geocoder struct {
	mock.Mock
}

var _ ports.Geocoder = (*Geocoder)(nil)

func NewGeocoder(t testingT) *Geocoder {
	m := &Geocoder{}
	register(t, &m.Mock)
	return m
}

func (m *Geocoder) Geocode(ctx context.Context, cityName string) (*ports.GeoPoint, error) {
	ret := m.Called(ctx, cityName)
	point, _ := ret.Get(0).(*ports.GeoPoint)
	return point, errorAt(ret, 1)
}
