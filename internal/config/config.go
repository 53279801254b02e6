package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"weathernow.app/pkg/errors"
)

const (
	maxRedisDB         = 15
	maxCacheTTLMinutes = 1440
	maxHTTPTimeout     = 120
	maxPortNumber      = 65535
)

// Config represents the application configuration structure
type Config struct {
	LogLevel string         `envconfig:"LOG_LEVEL" default:"info"`
	Server   ServerConfig   `split_words:"true"`
	Database DatabaseConfig `split_words:"true"`
	Weather  WeatherConfig  `split_words:"true"`
	Cache    CacheConfig    `split_words:"true"`
	Alert    AlertConfig    `split_words:"true"`
}

type ServerConfig struct {
	Port int `envconfig:"SERVER_PORT" default:"8080"`
}

// DatabaseDriver selects the GORM dialector for the location store
type DatabaseDriver int

const (
	DatabaseDriverUnknown DatabaseDriver = iota
	DatabaseDriverSQLite
	DatabaseDriverPostgres
)

// String returns the string representation of the driver
func (d DatabaseDriver) String() string {
	switch d {
	case DatabaseDriverSQLite:
		return "sqlite"
	case DatabaseDriverPostgres:
		return "postgres"
	default:
		return "unknown"
	}
}

// IsValid checks if the driver is supported
func (d DatabaseDriver) IsValid() bool {
	return d == DatabaseDriverSQLite || d == DatabaseDriverPostgres
}

// DatabaseDriverFromString converts string to DatabaseDriver enum
func DatabaseDriverFromString(s string) DatabaseDriver {
	switch s {
	case "sqlite":
		return DatabaseDriverSQLite
	case "postgres":
		return DatabaseDriverPostgres
	default:
		return DatabaseDriverUnknown
	}
}

// UnmarshalText implements encoding.TextUnmarshaler for envconfig
func (d *DatabaseDriver) UnmarshalText(text []byte) error {
	*d = DatabaseDriverFromString(string(text))
	return nil
}

// MarshalText implements encoding.TextMarshaler for envconfig
func (d DatabaseDriver) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

type DatabaseConfig struct {
	Driver     DatabaseDriver `envconfig:"DB_DRIVER" default:"sqlite"`
	SQLitePath string         `envconfig:"DB_SQLITE_PATH" default:"data/weathernow.db"`
	Host       string         `envconfig:"DB_HOST" default:"localhost"`
	Port       int            `envconfig:"DB_PORT" default:"5432"`
	User       string         `envconfig:"DB_USER" default:"postgres"`
	Password   string         `envconfig:"DB_PASSWORD" default:"postgres"`
	Name       string         `envconfig:"DB_NAME" default:"weathernow"`
	SSLMode    string         `envconfig:"DB_SSL_MODE" default:"disable"`
}

func (c DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

type WeatherConfig struct {
	APIKey             string `envconfig:"OPENWEATHERMAP_API_KEY"`
	BaseURL            string `envconfig:"WEATHER_API_BASE_URL" default:"https://api.openweathermap.org/data/2.5"`
	IconBaseURL        string `envconfig:"WEATHER_ICON_BASE_URL" default:"https://openweathermap.org/img/wn"`
	GeocodingBaseURL   string `envconfig:"GEOCODING_API_BASE_URL" default:"https://api.openweathermap.org/geo/1.0"`
	HTTPTimeoutSeconds int    `envconfig:"WEATHER_HTTP_TIMEOUT_SECONDS" default:"10"`
	// Zero keeps cache entries until process exit or an explicit clear.
	CacheTTLMinutes int    `envconfig:"WEATHER_CACHE_TTL_MINUTES" default:"0"`
	EnableLogging   bool   `envconfig:"WEATHER_ENABLE_LOGGING" default:"true"`
	LogFilePath     string `envconfig:"WEATHER_LOG_FILE_PATH" default:"logs/weather_client.log"`
}

// CacheType represents the type of cache to use
type CacheType int

const (
	CacheTypeUnknown CacheType = iota
	CacheTypeMemory
	CacheTypeRedis
)

// String returns the string representation of cache type
func (c CacheType) String() string {
	switch c {
	case CacheTypeMemory:
		return "memory"
	case CacheTypeRedis:
		return "redis"
	default:
		return "unknown"
	}
}

// IsValid checks if the cache type is valid
func (c CacheType) IsValid() bool {
	return c == CacheTypeMemory || c == CacheTypeRedis
}

// CacheTypeFromString converts string to CacheType enum
func CacheTypeFromString(s string) CacheType {
	switch s {
	case "memory":
		return CacheTypeMemory
	case "redis":
		return CacheTypeRedis
	default:
		return CacheTypeUnknown
	}
}

// UnmarshalText implements encoding.TextUnmarshaler for envconfig
func (c *CacheType) UnmarshalText(text []byte) error {
	*c = CacheTypeFromString(string(text))
	return nil
}

// MarshalText implements encoding.TextMarshaler for envconfig
func (c CacheType) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

type CacheConfig struct {
	Type  CacheType   `envconfig:"CACHE_TYPE" default:"memory"`
	Redis RedisConfig `split_words:"true"`
}

type RedisConfig struct {
	Addr          string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password      string `envconfig:"REDIS_PASSWORD" default:""`
	DB            int    `envconfig:"REDIS_DB" default:"0"`
	DialTimeout   int    `envconfig:"REDIS_DIAL_TIMEOUT" default:"5"`
	ReadTimeout   int    `envconfig:"REDIS_READ_TIMEOUT" default:"3"`
	WriteTimeout  int    `envconfig:"REDIS_WRITE_TIMEOUT" default:"3"`
	ChangeChannel string `envconfig:"REDIS_CHANGE_CHANNEL" default:"weather:changes"`
}

// AlertConfig configures delivery of weather change alerts by email.
// Alerts are only emailed when Recipient is set.
type AlertConfig struct {
	Recipient    string `envconfig:"ALERT_EMAIL_TO"`
	SMTPHost     string `envconfig:"ALERT_SMTP_HOST" default:"smtp.gmail.com"`
	SMTPPort     int    `envconfig:"ALERT_SMTP_PORT" default:"587"`
	SMTPUsername string `envconfig:"ALERT_SMTP_USERNAME"`
	SMTPPassword string `envconfig:"ALERT_SMTP_PASSWORD"`
	FromName     string `envconfig:"ALERT_FROM_NAME" default:"WeatherNow"`
	FromAddress  string `envconfig:"ALERT_FROM_ADDRESS" default:"alerts@weathernow.app"`
}

// Enabled reports whether email alerts should be sent
func (a AlertConfig) Enabled() bool {
	return a.Recipient != ""
}

func LoadConfig() (*Config, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, errors.NewConfigurationError("error processing config", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if err := c.Weather.Validate(); err != nil {
		return err
	}
	if err := c.Cache.Validate(); err != nil {
		return err
	}
	if err := c.Alert.Validate(); err != nil {
		return err
	}
	return nil
}

func (s *ServerConfig) Validate() error {
	if s.Port < 1 || s.Port > maxPortNumber {
		return errors.NewConfigurationError("SERVER_PORT must be between 1 and 65535", nil)
	}
	return nil
}

func (d *DatabaseConfig) Validate() error {
	if !d.Driver.IsValid() {
		return errors.NewConfigurationError("DB_DRIVER must be one of: sqlite, postgres", nil)
	}
	if d.Driver == DatabaseDriverSQLite {
		if d.SQLitePath == "" {
			return errors.NewConfigurationError("DB_SQLITE_PATH cannot be empty when using sqlite", nil)
		}
		return nil
	}
	if d.Host == "" {
		return errors.NewConfigurationError("DB_HOST cannot be empty", nil)
	}
	if d.Port < 1 || d.Port > maxPortNumber {
		return errors.NewConfigurationError("DB_PORT must be between 1 and 65535", nil)
	}
	if d.User == "" {
		return errors.NewConfigurationError("DB_USER cannot be empty", nil)
	}
	if d.Name == "" {
		return errors.NewConfigurationError("DB_NAME cannot be empty", nil)
	}
	return d.ValidateSSLMode()
}

func (d *DatabaseConfig) ValidateSSLMode() error {
	validSSLModes := []string{"disable", "require", "verify-ca", "verify-full"}
	for _, mode := range validSSLModes {
		if d.SSLMode == mode {
			return nil
		}
	}
	return errors.NewConfigurationError(
		fmt.Sprintf("DB_SSL_MODE must be one of: %s", strings.Join(validSSLModes, ", ")), nil)
}

func (w *WeatherConfig) Validate() error {
	if w.APIKey == "" {
		return errors.NewConfigurationError("OPENWEATHERMAP_API_KEY must be configured", nil)
	}

	urls := map[string]string{
		"WEATHER_API_BASE_URL":   w.BaseURL,
		"WEATHER_ICON_BASE_URL":  w.IconBaseURL,
		"GEOCODING_API_BASE_URL": w.GeocodingBaseURL,
	}
	for name, value := range urls {
		if !strings.HasPrefix(value, "http://") && !strings.HasPrefix(value, "https://") {
			return errors.NewConfigurationError(name+" must start with http:// or https://", nil)
		}
	}

	if w.HTTPTimeoutSeconds < 1 || w.HTTPTimeoutSeconds > maxHTTPTimeout {
		return errors.NewConfigurationError("WEATHER_HTTP_TIMEOUT_SECONDS must be between 1 and 120", nil)
	}
	if w.CacheTTLMinutes < 0 || w.CacheTTLMinutes > maxCacheTTLMinutes {
		return errors.NewConfigurationError("WEATHER_CACHE_TTL_MINUTES must be between 0 and 1440 minutes", nil)
	}
	if w.EnableLogging && w.LogFilePath == "" {
		return errors.NewConfigurationError("WEATHER_LOG_FILE_PATH cannot be empty when logging is enabled", nil)
	}
	return nil
}

func (c *CacheConfig) Validate() error {
	if !c.Type.IsValid() {
		return errors.NewConfigurationError("CACHE_TYPE must be one of: memory, redis", nil)
	}

	if c.Type == CacheTypeRedis {
		return c.Redis.Validate()
	}

	return nil
}

func (r *RedisConfig) Validate() error {
	if r.Addr == "" {
		return errors.NewConfigurationError("REDIS_ADDR cannot be empty when using Redis cache", nil)
	}
	if r.DB < 0 || r.DB > maxRedisDB {
		return errors.NewConfigurationError("REDIS_DB must be between 0 and 15", nil)
	}
	if r.DialTimeout < 1 {
		return errors.NewConfigurationError("REDIS_DIAL_TIMEOUT must be at least 1 second", nil)
	}
	if r.ReadTimeout < 1 {
		return errors.NewConfigurationError("REDIS_READ_TIMEOUT must be at least 1 second", nil)
	}
	if r.WriteTimeout < 1 {
		return errors.NewConfigurationError("REDIS_WRITE_TIMEOUT must be at least 1 second", nil)
	}
	if r.ChangeChannel == "" {
		return errors.NewConfigurationError("REDIS_CHANGE_CHANNEL cannot be empty", nil)
	}
	return nil
}

func (a *AlertConfig) Validate() error {
	if !a.Enabled() {
		return nil
	}
	if !strings.Contains(a.Recipient, "@") {
		return errors.NewConfigurationError("ALERT_EMAIL_TO must be a valid email address", nil)
	}
	if a.SMTPHost == "" {
		return errors.NewConfigurationError("ALERT_SMTP_HOST cannot be empty", nil)
	}
	if a.SMTPPort < 1 || a.SMTPPort > maxPortNumber {
		return errors.NewConfigurationError("ALERT_SMTP_PORT must be between 1 and 65535", nil)
	}
	if (a.SMTPUsername == "") != (a.SMTPPassword == "") {
		return errors.NewConfigurationError("ALERT_SMTP_USERNAME and ALERT_SMTP_PASSWORD must both be provided or both be empty", nil)
	}
	if !strings.Contains(a.FromAddress, "@") {
		return errors.NewConfigurationError("ALERT_FROM_ADDRESS must be a valid email address", nil)
	}
	return nil
}
