package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"weathernow.app/internal/ports"
)

// LocationRepository is a mock of ports.LocationRepository
type LocationRepository struct {
	mock.Mock
}

var _ ports.LocationRepository = (*LocationRepository)(nil)

func NewLocationRepository(t testingT) *LocationRepository {
	m := &LocationRepository{}
	register(t, &m.Mock)
	return m
}

func (m *LocationRepository) Save(ctx context.Context, loc *ports.LocationData) error {
	return errorAt(m.Called(ctx, loc), 0)
}

func (m *LocationRepository) FindByID(ctx context.Context, id string) (*ports.LocationData, error) {
	ret := m.Called(ctx, id)
	data, _ := ret.Get(0).(*ports.LocationData)
	return data, errorAt(ret, 1)
}

func (m *LocationRepository) FindAll(ctx context.Context) ([]*ports.LocationData, error) {
	ret := m.Called(ctx)
	data, _ := ret.Get(0).([]*ports.LocationData)
	return data, errorAt(ret, 1)
}

func (m *LocationRepository) UpdateWeather(ctx context.Context, loc *ports.LocationData) error {
	return errorAt(m.Called(ctx, loc), 0)
}

func (m *LocationRepository) UpdateCachedWeather(ctx context.Context, loc *ports.LocationData) error {
	return errorAt(m.Called(ctx, loc), 0)
}

func (m *LocationRepository) Delete(ctx context.Context, id string) error {
	return errorAt(m.Called(ctx, id), 0)
}
