package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weathernow.app/pkg/errors"
)

func validConfig() *Config {
	return &Config{
		LogLevel: "info",
		Server:   ServerConfig{Port: 8080},
		Database: DatabaseConfig{
			Driver:     DatabaseDriverSQLite,
			SQLitePath: "data/test.db",
			SSLMode:    "disable",
		},
		Weather: WeatherConfig{
			APIKey:             "test-key",
			BaseURL:            "https://api.openweathermap.org/data/2.5",
			IconBaseURL:        "https://openweathermap.org/img/wn",
			GeocodingBaseURL:   "https://api.openweathermap.org/geo/1.0",
			HTTPTimeoutSeconds: 10,
			LogFilePath:        "logs/test.log",
		},
		Cache: CacheConfig{Type: CacheTypeMemory},
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("RequiredKeyMissing", func(t *testing.T) {
		os.Clearenv()

		cfg, err := LoadConfig()

		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.True(t, errors.IsConfigurationError(err))
		assert.Contains(t, err.Error(), "OPENWEATHERMAP_API_KEY")
	})

	t.Run("DefaultValues", func(t *testing.T) {
		os.Clearenv()
		t.Setenv("OPENWEATHERMAP_API_KEY", "test-api-key")

		cfg, err := LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, DatabaseDriverSQLite, cfg.Database.Driver)
		assert.Equal(t, "data/weathernow.db", cfg.Database.SQLitePath)
		assert.Equal(t, "https://api.openweathermap.org/data/2.5", cfg.Weather.BaseURL)
		assert.Equal(t, "https://openweathermap.org/img/wn", cfg.Weather.IconBaseURL)
		assert.Equal(t, "https://api.openweathermap.org/geo/1.0", cfg.Weather.GeocodingBaseURL)
		assert.Equal(t, 10, cfg.Weather.HTTPTimeoutSeconds)
		assert.Equal(t, 0, cfg.Weather.CacheTTLMinutes)
		assert.Equal(t, CacheTypeMemory, cfg.Cache.Type)
		assert.Equal(t, "weather:changes", cfg.Cache.Redis.ChangeChannel)
		assert.False(t, cfg.Alert.Enabled())
	})

	t.Run("CustomValues", func(t *testing.T) {
		os.Clearenv()
		t.Setenv("OPENWEATHERMAP_API_KEY", "custom-key")
		t.Setenv("SERVER_PORT", "9090")
		t.Setenv("DB_DRIVER", "postgres")
		t.Setenv("DB_HOST", "db")
		t.Setenv("DB_SSL_MODE", "require")
		t.Setenv("CACHE_TYPE", "redis")
		t.Setenv("REDIS_ADDR", "redis:6379")
		t.Setenv("WEATHER_CACHE_TTL_MINUTES", "30")
		t.Setenv("ALERT_EMAIL_TO", "me@example.com")

		cfg, err := LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, 9090, cfg.Server.Port)
		assert.Equal(t, DatabaseDriverPostgres, cfg.Database.Driver)
		assert.Equal(t, "db", cfg.Database.Host)
		assert.Equal(t, CacheTypeRedis, cfg.Cache.Type)
		assert.Equal(t, "redis:6379", cfg.Cache.Redis.Addr)
		assert.Equal(t, 30, cfg.Weather.CacheTTLMinutes)
		assert.True(t, cfg.Alert.Enabled())
	})
}

func TestDatabaseConfig_GetDSN(t *testing.T) {
	dbConfig := DatabaseConfig{
		Host:     "test-host",
		Port:     5432,
		User:     "test-user",
		Password: "test-password",
		Name:     "test-db",
		SSLMode:  "disable",
	}

	assert.Equal(t, "host=test-host port=5432 user=test-user password=test-password dbname=test-db sslmode=disable", dbConfig.GetDSN())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{
			name:   "Valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "InvalidPort",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: "SERVER_PORT",
		},
		{
			name:    "UnknownDriver",
			mutate:  func(c *Config) { c.Database.Driver = DatabaseDriverUnknown },
			wantErr: "DB_DRIVER",
		},
		{
			name: "PostgresBadSSLMode",
			mutate: func(c *Config) {
				c.Database.Driver = DatabaseDriverPostgres
				c.Database.Host = "localhost"
				c.Database.Port = 5432
				c.Database.User = "postgres"
				c.Database.Name = "weathernow"
				c.Database.SSLMode = "prefer"
			},
			wantErr: "DB_SSL_MODE",
		},
		{
			name:    "BadBaseURL",
			mutate:  func(c *Config) { c.Weather.BaseURL = "ftp://example.com" },
			wantErr: "WEATHER_API_BASE_URL",
		},
		{
			name:    "NegativeTTL",
			mutate:  func(c *Config) { c.Weather.CacheTTLMinutes = -1 },
			wantErr: "WEATHER_CACHE_TTL_MINUTES",
		},
		{
			name:    "TimeoutTooLarge",
			mutate:  func(c *Config) { c.Weather.HTTPTimeoutSeconds = 500 },
			wantErr: "WEATHER_HTTP_TIMEOUT_SECONDS",
		},
		{
			name: "RedisMissingAddr",
			mutate: func(c *Config) {
				c.Cache.Type = CacheTypeRedis
				c.Cache.Redis = RedisConfig{DialTimeout: 1, ReadTimeout: 1, WriteTimeout: 1, ChangeChannel: "x"}
			},
			wantErr: "REDIS_ADDR",
		},
		{
			name: "AlertBadRecipient",
			mutate: func(c *Config) {
				c.Alert = AlertConfig{Recipient: "nobody", SMTPHost: "smtp", SMTPPort: 25, FromAddress: "a@b.c"}
			},
			wantErr: "ALERT_EMAIL_TO",
		},
		{
			name: "AlertHalfCredentials",
			mutate: func(c *Config) {
				c.Alert = AlertConfig{Recipient: "me@example.com", SMTPHost: "smtp", SMTPPort: 25, SMTPUsername: "u", FromAddress: "a@b.c"}
			},
			wantErr: "ALERT_SMTP_USERNAME",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.IsConfigurationError(err))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestEnumsFromString(t *testing.T) {
	assert.Equal(t, CacheTypeRedis, CacheTypeFromString("redis"))
	assert.Equal(t, CacheTypeUnknown, CacheTypeFromString("memcached"))
	assert.Equal(t, DatabaseDriverPostgres, DatabaseDriverFromString("postgres"))
	assert.Equal(t, "sqlite", DatabaseDriverSQLite.String())
	assert.Equal(t, "unknown", DatabaseDriverUnknown.String())
}
