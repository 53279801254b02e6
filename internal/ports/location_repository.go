package ports

import (
	"context"
	"time"
)

// LocationData represents location data for persistence
type LocationData struct {
	ID                 string
	Sequence           uint
	CityName           string
	Latitude           float64
	Longitude          float64
	RegistrationDate   time.Time
	Temperature        float64
	FeelsLike          float64
	WeatherDescription *string
	CachedWeather      *string
}

// LocationRepository defines the contract for location persistence.
// FindAll returns records in persisted (insertion) order.
type LocationRepository interface {
	Save(ctx context.Context, loc *LocationData) error
	FindByID(ctx context.Context, id string) (*LocationData, error)
	FindAll(ctx context.Context) ([]*LocationData, error)
	UpdateWeather(ctx context.Context, loc *LocationData) error
	UpdateCachedWeather(ctx context.Context, loc *LocationData) error
	Delete(ctx context.Context, id string) error
}
