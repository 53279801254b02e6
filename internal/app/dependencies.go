package app

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
	"weathernow.app/internal/adapters/database"
	"weathernow.app/internal/adapters/events"
	"weathernow.app/internal/adapters/external"
	"weathernow.app/internal/adapters/infrastructure"
	"weathernow.app/internal/config"
	"weathernow.app/internal/ports"
)

// DependencyContainer builds and owns every adapter the use cases depend on
type DependencyContainer struct {
	config *config.Config

	db         *gorm.DB
	redis      *external.RedisCacheProviderAdapter
	bus        *events.Bus
	fileLogger *infrastructure.FileLoggerAdapter
	registry   *prometheus.Registry
	ports      *ports.ApplicationPorts
}

func NewDependencyContainer(cfg *config.Config) (*DependencyContainer, error) {
	container := &DependencyContainer{
		config:   cfg,
		registry: prometheus.NewRegistry(),
	}

	if err := container.initializeDatabase(); err != nil {
		return nil, fmt.Errorf("initialize database: %w", err)
	}

	if err := container.initializePorts(); err != nil {
		_ = container.Cleanup()
		return nil, fmt.Errorf("initialize ports: %w", err)
	}

	return container, nil
}

func (c *DependencyContainer) initializeDatabase() error {
	slog.Info("Initializing database connection...", "driver", c.config.Database.Driver.String())

	db, err := database.Open(c.config.Database)
	if err != nil {
		return err
	}

	c.db = db
	return nil
}

func (c *DependencyContainer) initializePorts() error {
	slog.Info("Initializing ports...")

	var logger ports.Logger = infrastructure.NewSlogLoggerAdapter(slog.Default())

	// weather client traffic additionally goes to its own file when enabled
	clientLogger := logger
	if c.config.Weather.EnableLogging && c.config.Weather.LogFilePath != "" {
		fileLogger, err := infrastructure.NewFileLoggerAdapter(c.config.Weather.LogFilePath)
		if err != nil {
			slog.Warn("Failed to create file logger, falling back to slog", "error", err)
		} else {
			c.fileLogger = fileLogger
			clientLogger = infrastructure.TeeLogger{logger, fileLogger}
			slog.Info("Weather client file logging enabled", "path", fileLogger.Path())
		}
	}

	configProvider := infrastructure.NewConfigProviderAdapter(c.config)
	weatherConfig := configProvider.GetWeatherConfig()

	var weatherClient ports.WeatherClient = external.NewOpenWeatherMapClient(external.OpenWeatherMapClientParams{
		APIKey:      c.config.Weather.APIKey,
		BaseURL:     c.config.Weather.BaseURL,
		IconBaseURL: c.config.Weather.IconBaseURL,
		Timeout:     weatherConfig.HTTPTimeout,
		Logger:      logger,
	})
	if c.config.Weather.EnableLogging {
		weatherClient = external.NewWeatherClientLoggingDecorator(weatherClient, clientLogger)
	}

	geocoder := external.NewOpenWeatherMapGeocoder(external.OpenWeatherMapGeocoderParams{
		APIKey:  c.config.Weather.APIKey,
		BaseURL: c.config.Weather.GeocodingBaseURL,
		Timeout: weatherConfig.HTTPTimeout,
		Logger:  logger,
	})

	cacheProvider, err := external.NewCacheProviderFactory().CreateCacheProvider(&c.config.Cache)
	if err != nil {
		return fmt.Errorf("create cache provider: %w", err)
	}
	if redisProvider, ok := cacheProvider.(*external.RedisCacheProviderAdapter); ok {
		c.redis = redisProvider
	}

	cacheMetrics := infrastructure.NewPrometheusCacheMetrics(c.registry, c.config.Cache.Type.String())
	instrumented := infrastructure.NewInstrumentedCacheProvider(cacheProvider, cacheMetrics)

	slog.Info("Cache provider initialized",
		"type", c.config.Cache.Type.String(),
		"ttl", weatherConfig.CacheTTL.String())

	notifier, err := c.changeNotifier(logger)
	if err != nil {
		return fmt.Errorf("create change notifier: %w", err)
	}

	c.bus = events.NewBus(logger, 0)
	repository := database.NewLocationRepositoryAdapter(c.db)

	c.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	c.ports = &ports.ApplicationPorts{
		WeatherClient: weatherClient,
		Geocoder:      geocoder,
		WeatherCache:  external.NewWeatherCacheAdapter(instrumented),
		IconCache:     external.NewIconCacheAdapter(instrumented),

		LocationRepository: repository,
		LocationEvents:     c.bus,

		ChangeNotifier: notifier,

		CacheMetrics: cacheMetrics,

		ConfigProvider: configProvider,
		Logger:         logger,
		HealthChecker:  c.healthChecker(configProvider),
	}

	slog.Info("Ports initialized successfully")
	return nil
}

// changeNotifier always logs changes, publishes them on Redis when the cache
// runs on Redis and emails them when an alert recipient is configured
func (c *DependencyContainer) changeNotifier(logger ports.Logger) (ports.WeatherChangeNotifier, error) {
	notifiers := []ports.WeatherChangeNotifier{external.NewLogChangeNotifier(logger)}

	if c.redis != nil {
		redisNotifier, err := external.NewRedisChangeNotifier(c.redis.Client(), c.config.Cache.Redis.ChangeChannel)
		if err != nil {
			return nil, err
		}
		notifiers = append(notifiers, redisNotifier)
	}

	if alert := c.config.Alert; alert.Enabled() {
		sender := external.NewSMTPEmailProviderAdapter(external.EmailProviderConfig{
			Host:     alert.SMTPHost,
			Port:     alert.SMTPPort,
			Username: alert.SMTPUsername,
			Password: alert.SMTPPassword,
			FromName: alert.FromName,
			FromAddr: alert.FromAddress,
		})
		if err := sender.ValidateConfiguration(); err != nil {
			return nil, err
		}
		emailNotifier, err := external.NewEmailChangeNotifier(sender, alert.Recipient)
		if err != nil {
			return nil, err
		}
		notifiers = append(notifiers, emailNotifier)
		slog.Info("Weather alert emails enabled", "recipient", alert.Recipient)
	}

	return external.NewMultiChangeNotifier(notifiers...), nil
}

func (c *DependencyContainer) healthChecker(configProvider ports.ConfigProvider) *infrastructure.SystemHealthChecker {
	checkers := []ports.HealthChecker{infrastructure.NewDatabaseHealthChecker(c.db)}
	if c.redis != nil {
		checkers = append(checkers, infrastructure.NewPingHealthChecker("redis", c.redis))
	}

	return infrastructure.NewSystemHealthChecker(infrastructure.SystemHealthCheckerConfig{
		Checkers:       checkers,
		ConfigProvider: configProvider,
	})
}

func (c *DependencyContainer) ApplicationPorts() *ports.ApplicationPorts {
	return c.ports
}

// MetricsHandler serves the container's Prometheus registry
func (c *DependencyContainer) MetricsHandler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Cleanup releases every resource opened by the container
func (c *DependencyContainer) Cleanup() error {
	if c.bus != nil {
		c.bus.Close()
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			slog.Warn("Error closing redis client", "error", err)
		}
	}
	if c.fileLogger != nil {
		if err := c.fileLogger.Close(); err != nil {
			slog.Warn("Error closing log file", "error", err)
		}
	}
	if c.db != nil {
		if db, err := c.db.DB(); err == nil {
			return db.Close()
		}
	}
	return nil
}
