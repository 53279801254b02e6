package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"weathernow.app/internal/ports"
)

// WeatherChangeNotifier is a mock of ports.WeatherChangeNotifier
type WeatherChangeNotifier struct {
	mock.Mock
}

var _ ports.WeatherChangeNotifier = (*WeatherChangeNotifier)(nil)

func NewWeatherChangeNotifier(t testingT) *WeatherChangeNotifier {
	m := &WeatherChangeNotifier{}
	register(t, &m.Mock)
	return m
}

func (m *WeatherChangeNotifier) NotifyWeatherChange(ctx context.Context, change ports.WeatherChange) error {
	return errorAt(m.Called(ctx, change), 0)
}

// EmailProvider is a mock of ports.EmailProvider
type EmailProvider struct {
	mock.Mock
}

var _ ports.EmailProvider = (*EmailProvider)(nil)

func NewEmailProvider(t testingT) *EmailProvider {
	m := &EmailProvider{}
	register(t, &m.Mock)
	return m
}

func (m *EmailProvider) SendEmail(ctx context.Context, params ports.EmailParams) error {
	return errorAt(m.Called(ctx, params), 0)
}
