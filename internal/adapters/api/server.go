// Package api provides HTTP adapters for the hexagonal architecture
// These adapters handle incoming HTTP requests and translate them to use cases
package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"weathernow.app/internal/core/location"
	"weathernow.app/internal/core/weather"
	"weathernow.app/internal/ports"
	"weathernow.app/pkg/errors"
)

const shutdownTimeout = 10 * time.Second

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Port int
}

// HTTPServerAdapter implements HTTP server using Gin framework
type HTTPServerAdapter struct {
	router           *gin.Engine
	config           ServerConfig
	locations        LocationService
	listing          LocationListing
	weather          WeatherService
	metricsCollector MetricsCollector
	healthChecker    ports.SystemHealthChecker
	metricsHandler   http.Handler
}

// Use case interfaces that the HTTP adapter depends on
type LocationService interface {
	Register(ctx context.Context, params location.RegisterParams) (*location.Location, error)
	RegisterByName(ctx context.Context, cityName string) (*location.Location, error)
	Get(ctx context.Context, id string) (*location.Location, error)
	Delete(ctx context.Context, id string) error
	Events() ports.LocationEvents
}

type LocationListing interface {
	Snapshot() []*location.Location
}

type WeatherService interface {
	GetWeather(ctx context.Context, loc *location.Location) (*weather.Report, error)
	GetWeatherAt(ctx context.Context, latitude, longitude float64) (*weather.Report, error)
	GetIcon(ctx context.Context, code string) []byte
	ClearCache(ctx context.Context) error
}

type MetricsCollector interface {
	GetMetrics(ctx context.Context) (map[string]interface{}, error)
}

// ServerOptions represents options for creating the HTTP server
type ServerOptions struct {
	Config           ServerConfig
	Locations        LocationService
	Listing          LocationListing
	Weather          WeatherService
	MetricsCollector MetricsCollector
	HealthChecker    ports.SystemHealthChecker
	// MetricsHandler serves the Prometheus exposition on /metrics
	MetricsHandler http.Handler
}

// NewHTTPServerAdapter creates a new HTTP server adapter
func NewHTTPServerAdapter(opts ServerOptions) (*HTTPServerAdapter, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid server options: %w", err)
	}

	server := &HTTPServerAdapter{
		router:           gin.Default(),
		config:           opts.Config,
		locations:        opts.Locations,
		listing:          opts.Listing,
		weather:          opts.Weather,
		metricsCollector: opts.MetricsCollector,
		healthChecker:    opts.HealthChecker,
		metricsHandler:   opts.MetricsHandler,
	}

	server.setupRoutes()
	return server, nil
}

// Validate checks if all required dependencies are provided
func (opts *ServerOptions) Validate() error {
	if opts.Locations == nil {
		return errors.NewValidationError("location service is required")
	}
	if opts.Listing == nil {
		return errors.NewValidationError("location listing is required")
	}
	if opts.Weather == nil {
		return errors.NewValidationError("weather service is required")
	}
	if opts.MetricsCollector == nil {
		return errors.NewValidationError("metrics collector is required")
	}
	if opts.HealthChecker == nil {
		return errors.NewValidationError("health checker is required")
	}
	if opts.MetricsHandler == nil {
		return errors.NewValidationError("metrics handler is required")
	}
	return nil
}

// setupRoutes configures all HTTP routes
func (s *HTTPServerAdapter) setupRoutes() {
	api := s.router.Group("/api")
	{
		api.POST("/locations", s.registerLocation)
		api.GET("/locations", s.listLocations)
		api.GET("/locations/:id", s.getLocation)
		api.DELETE("/locations/:id", s.deleteLocation)
		api.GET("/locations/:id/weather", s.getLocationWeather)
		api.GET("/weather/current", s.getCurrentWeather)
		api.DELETE("/weather/cache", s.clearWeatherCache)
		api.GET("/icons/:code", s.getIcon)
		api.GET("/events", s.streamEvents)
		api.GET("/metrics", s.getMetrics)
	}

	s.router.GET("/health", s.getHealth)
	s.router.GET("/metrics", gin.WrapH(s.metricsHandler))
}

// Start serves HTTP until ctx is done, then shuts down gracefully
func (s *HTTPServerAdapter) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.config.Port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "port", s.config.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return <-errCh
}

// GetRouter returns the router for testing purposes
func (s *HTTPServerAdapter) GetRouter() *gin.Engine {
	return s.router
}
