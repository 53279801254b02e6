package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gin-gonic/gin"
	"weathernow.app/internal/adapters/api"
	"weathernow.app/internal/adapters/infrastructure"
	"weathernow.app/internal/config"
	"weathernow.app/internal/core/location"
	"weathernow.app/internal/core/weather"
	"weathernow.app/internal/ports"
)

type Application struct {
	config *config.Config

	// Use Cases
	locationUseCase *location.UseCase
	listing         *location.Listing
	weatherUseCase  *weather.UseCase

	// Adapters
	httpAdapter *api.HTTPServerAdapter

	// Infrastructure
	deps  *DependencyContainer
	ports *ports.ApplicationPorts
}

// NewApplication wires every adapter and use case for cfg
func NewApplication(cfg *config.Config) (*Application, error) {
	deps, err := NewDependencyContainer(cfg)
	if err != nil {
		return nil, fmt.Errorf("create dependency container: %w", err)
	}

	app := &Application{
		config: cfg,
		deps:   deps,
		ports:  deps.ApplicationPorts(),
	}

	if err := app.initializeUseCases(); err != nil {
		_ = deps.Cleanup()
		return nil, fmt.Errorf("initialize use cases: %w", err)
	}

	if err := app.initializeAdapters(); err != nil {
		_ = deps.Cleanup()
		return nil, fmt.Errorf("initialize adapters: %w", err)
	}

	return app, nil
}

func (a *Application) initializeUseCases() error {
	slog.Info("Initializing use cases...")

	locationUseCase, err := location.NewUseCase(location.UseCaseDependencies{
		Repository: a.ports.LocationRepository,
		Events:     a.ports.LocationEvents,
		Geocoder:   a.ports.Geocoder,
		Logger:     a.ports.Logger,
	})
	if err != nil {
		return fmt.Errorf("create location use case: %w", err)
	}
	a.locationUseCase = locationUseCase

	listing, err := location.NewListing(location.ListingDependencies{
		Source: locationUseCase,
		Events: a.ports.LocationEvents,
		Logger: a.ports.Logger,
	})
	if err != nil {
		return fmt.Errorf("create location listing: %w", err)
	}
	a.listing = listing

	weatherUseCase, err := weather.NewUseCase(weather.UseCaseDependencies{
		Client:    a.ports.WeatherClient,
		Cache:     a.ports.WeatherCache,
		Icons:     a.ports.IconCache,
		Locations: locationUseCase,
		Notifier:  a.ports.ChangeNotifier,
		Config:    a.ports.ConfigProvider,
		Logger:    a.ports.Logger,
	})
	if err != nil {
		return fmt.Errorf("create weather use case: %w", err)
	}
	a.weatherUseCase = weatherUseCase

	slog.Info("Use cases initialized successfully")
	return nil
}

func (a *Application) initializeAdapters() error {
	slog.Info("Initializing adapters...")

	if err := api.RegisterValidators(); err != nil {
		return fmt.Errorf("register validators: %w", err)
	}

	metricsCollector := infrastructure.NewMetricsCollectorAdapter(infrastructure.MetricsCollectorConfig{
		CacheMetrics: a.ports.CacheMetrics,
		Locations:    a.listing,
	})

	httpAdapter, err := api.NewHTTPServerAdapter(api.ServerOptions{
		Config: api.ServerConfig{
			Port: a.config.Server.Port,
		},
		Locations:        a.locationUseCase,
		Listing:          a.listing,
		Weather:          a.weatherUseCase,
		MetricsCollector: metricsCollector,
		HealthChecker:    a.ports.HealthChecker,
		MetricsHandler:   a.deps.MetricsHandler(),
	})
	if err != nil {
		return fmt.Errorf("create HTTP adapter: %w", err)
	}
	a.httpAdapter = httpAdapter

	slog.Info("Adapters initialized successfully")
	return nil
}

// StartListing loads the persisted locations and keeps the listing following
// registry events until ctx is done
func (a *Application) StartListing(ctx context.Context) (<-chan struct{}, error) {
	done, err := a.listing.Start(ctx)
	if err != nil {
		return nil, fmt.Errorf("start location listing: %w", err)
	}
	return done, nil
}

// Start runs the listing and the HTTP server until ctx is done
func (a *Application) Start(ctx context.Context) error {
	slog.Info("Starting application...")

	if _, err := a.StartListing(ctx); err != nil {
		return err
	}

	if err := a.httpAdapter.Start(ctx); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}
	return nil
}

// Shutdown releases the container resources. The HTTP server stops with the
// context passed to Start.
func (a *Application) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down application...")

	done := make(chan error, 1)
	go func() { done <- a.deps.Cleanup() }()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("release resources: %w", err)
		}
	case <-ctx.Done():
		return fmt.Errorf("shutdown: %w", ctx.Err())
	}

	slog.Info("Application shutdown complete")
	return nil
}

// Config returns the application configuration
func (a *Application) Config() *config.Config {
	return a.config
}

// GetRouter returns the Gin router for testing
func (a *Application) GetRouter() *gin.Engine {
	return a.httpAdapter.GetRouter()
}

// GetWeatherUseCase returns the weather use case for testing
func (a *Application) GetWeatherUseCase() *weather.UseCase {
	return a.weatherUseCase
}

// GetLocationUseCase returns the location use case for testing
func (a *Application) GetLocationUseCase() *location.UseCase {
	return a.locationUseCase
}

// GetListing returns the live location listing
func (a *Application) GetListing() *location.Listing {
	return a.listing
}
