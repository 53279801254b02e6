package infrastructure

import (
	"time"

	"weathernow.app/internal/config"
	"weathernow.app/internal/ports"
)

// ConfigProviderAdapter implements the ConfigProvider port
type ConfigProviderAdapter struct {
	config *config.Config
}

var _ ports.ConfigProvider = (*ConfigProviderAdapter)(nil)

// NewConfigProviderAdapter creates a new config provider adapter
func NewConfigProviderAdapter(cfg *config.Config) *ConfigProviderAdapter {
	return &ConfigProviderAdapter{
		config: cfg,
	}
}

// GetWeatherConfig returns weather configuration
func (c *ConfigProviderAdapter) GetWeatherConfig() ports.WeatherConfig {
	return ports.WeatherConfig{
		CacheTTL:    time.Duration(c.config.Weather.CacheTTLMinutes) * time.Minute,
		HTTPTimeout: time.Duration(c.config.Weather.HTTPTimeoutSeconds) * time.Second,
	}
}

// GetServerConfig returns server configuration
func (c *ConfigProviderAdapter) GetServerConfig() ports.ServerConfig {
	return ports.ServerConfig{
		Port: c.config.Server.Port,
	}
}

// GetDatabaseConfig returns database configuration without credentials
func (c *ConfigProviderAdapter) GetDatabaseConfig() ports.DatabaseConfig {
	return ports.DatabaseConfig{
		Driver:     c.config.Database.Driver.String(),
		SQLitePath: c.config.Database.SQLitePath,
		Host:       c.config.Database.Host,
		Port:       c.config.Database.Port,
		Name:       c.config.Database.Name,
	}
}

// GetCacheConfig returns cache configuration
func (c *ConfigProviderAdapter) GetCacheConfig() ports.CacheConfig {
	return ports.CacheConfig{
		Type: c.config.Cache.Type.String(),
		Redis: ports.RedisConfig{
			Addr:          c.config.Cache.Redis.Addr,
			DB:            c.config.Cache.Redis.DB,
			ChangeChannel: c.config.Cache.Redis.ChangeChannel,
		},
	}
}

// GetAlertConfig returns weather alert configuration
func (c *ConfigProviderAdapter) GetAlertConfig() ports.AlertConfig {
	return ports.AlertConfig{
		Enabled:   c.config.Alert.Enabled(),
		Recipient: c.config.Alert.Recipient,
	}
}
