package ports

import (
	"context"
	"time"
)

// WeatherChange describes a textual change in a location's weather condition
type WeatherChange struct {
	LocationID string    `json:"location_id"`
	CityName   string    `json:"city_name"`
	Previous   string    `json:"previous"`
	Current    string    `json:"current"`
	DetectedAt time.Time `json:"detected_at"`
}

// WeatherChangeNotifier delivers weather change alerts
type WeatherChangeNotifier interface {
	NotifyWeatherChange(ctx context.Context, change WeatherChange) error
}
