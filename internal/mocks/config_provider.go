package mocks

import (
	"github.com/stretchr/testify/mock"
	"weathernow.app/internal/ports"
)

// ConfigProvider is a mock of ports.ConfigProvider
type ConfigProvider struct {
	mock.Mock
}

var _ ports.ConfigProvider = (*ConfigProvider)(nil)

func NewConfigProvider(t testingT) *ConfigProvider {
	m := &ConfigProvider{}
	register(t, &m.Mock)
	return m
}

func (m *ConfigProvider) GetWeatherConfig() ports.WeatherConfig {
	return m.Called().Get(0).(ports.WeatherConfig)
}

func (m *ConfigProvider) GetServerConfig() ports.ServerConfig {
	return m.Called().Get(0).(ports.ServerConfig)
}

func (m *ConfigProvider) GetDatabaseConfig() ports.DatabaseConfig {
	return m.Called().Get(0).(ports.DatabaseConfig)
}

func (m *ConfigProvider) GetCacheConfig() ports.CacheConfig {
	return m.Called().Get(0).(ports.CacheConfig)
}

func (m *ConfigProvider) GetAlertConfig() ports.AlertConfig {
	return m.Called().Get(0).(ports.AlertConfig)
}
