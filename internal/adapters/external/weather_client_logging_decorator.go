package external

import (
	"context"
	"time"

	"weathernow.app/internal/ports"
)

// WeatherClientLoggingDecorator decorates a weather client with structured logging
type WeatherClientLoggingDecorator struct {
	client ports.WeatherClient
	logger ports.Logger
}

var _ ports.WeatherClient = (*WeatherClientLoggingDecorator)(nil)

// NewWeatherClientLoggingDecorator creates a new logging decorator for a weather client
func NewWeatherClientLoggingDecorator(client ports.WeatherClient, logger ports.Logger) *WeatherClientLoggingDecorator {
	return &WeatherClientLoggingDecorator{
		client: client,
		logger: logger,
	}
}

// FetchWeather wraps the client call with structured logging
func (d *WeatherClientLoggingDecorator) FetchWeather(ctx context.Context, latitude, longitude float64) (*ports.WeatherSnapshot, error) {
	d.logger.Info("Weather API request started",
		ports.F("lat", latitude),
		ports.F("lon", longitude),
		ports.F("event", "request"))

	startTime := time.Now()
	snapshot, err := d.client.FetchWeather(ctx, latitude, longitude)
	duration := time.Since(startTime)

	if err != nil {
		d.logger.Error("Weather API request failed",
			ports.F("lat", latitude),
			ports.F("lon", longitude),
			ports.F("event", "error"),
			ports.F("duration_ms", duration.Milliseconds()),
			ports.F("error", err.Error()))
		return nil, err
	}

	fields := []ports.Field{
		ports.F("lat", latitude),
		ports.F("lon", longitude),
		ports.F("event", "response"),
		ports.F("duration_ms", duration.Milliseconds()),
		ports.F("city", snapshot.CityName),
		ports.F("temperature", snapshot.Temperature),
	}
	if len(snapshot.Conditions) > 0 {
		fields = append(fields, ports.F("description", snapshot.Conditions[0].Description))
	}
	d.logger.Info("Weather API request completed", fields...)

	return snapshot, nil
}

// FetchIcon wraps the icon download with structured logging
func (d *WeatherClientLoggingDecorator) FetchIcon(ctx context.Context, iconCode string) []byte {
	startTime := time.Now()
	image := d.client.FetchIcon(ctx, iconCode)

	d.logger.Debug("Weather icon request completed",
		ports.F("icon", iconCode),
		ports.F("found", image != nil),
		ports.F("bytes", len(image)),
		ports.F("duration_ms", time.Since(startTime).Milliseconds()))

	return image
}
