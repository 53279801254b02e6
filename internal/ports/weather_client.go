package ports

import "context"

// WeatherCondition is one condition entry reported by the weather API
type WeatherCondition struct {
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// WeatherSnapshot represents one decoded current-weather observation
type WeatherSnapshot struct {
	CityName    string             `json:"city_name"`
	Temperature float64            `json:"temperature"`
	FeelsLike   float64            `json:"feels_like"`
	Pressure    *int               `json:"pressure,omitempty"`
	Humidity    *int               `json:"humidity,omitempty"`
	Conditions  []WeatherCondition `json:"conditions"`
}

// WeatherClient defines the contract for the remote weather API
type WeatherClient interface {
	FetchWeather(ctx context.Context, latitude, longitude float64) (*WeatherSnapshot, error)
	// FetchIcon returns nil on any failure.
	FetchIcon(ctx context.Context, iconCode string) []byte
}

// GeoPoint is a forward-geocoding result
type GeoPoint struct {
	Name      string
	Country   string
	Latitude  float64
	Longitude float64
}

// Geocoder resolves a city name to coordinates
type Geocoder interface {
	Geocode(ctx context.Context, cityName string) (*GeoPoint, error)
}
