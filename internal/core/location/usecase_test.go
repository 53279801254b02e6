package location

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"weathernow.app/internal/adapters/events"
	"weathernow.app/internal/mocks"
	"weathernow.app/internal/ports"
	"weathernow.app/pkg/errors"
)

// memoryRepository keeps records in insertion order
type memoryRepository struct {
	mu      sync.Mutex
	records []*ports.LocationData
	nextSeq uint
}

func (r *memoryRepository) Save(_ context.Context, loc *ports.LocationData) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextSeq++
	loc.Sequence = r.nextSeq
	stored := *loc
	r.records = append(r.records, &stored)
	return nil
}

func (r *memoryRepository) FindByID(_ context.Context, id string) (*ports.LocationData, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.records {
		if rec.ID == id {
			found := *rec
			return &found, nil
		}
	}
	return nil, errors.NewNotFoundError("location not found")
}

func (r *memoryRepository) FindAll(_ context.Context) ([]*ports.LocationData, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]*ports.LocationData, len(r.records))
	for i, rec := range r.records {
		copied := *rec
		result[i] = &copied
	}
	return result, nil
}

func (r *memoryRepository) update(loc *ports.LocationData, apply func(dst *ports.LocationData)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.records {
		if rec.ID == loc.ID {
			apply(rec)
			return nil
		}
	}
	return errors.NewNotFoundError("location not found")
}

func (r *memoryRepository) UpdateWeather(_ context.Context, loc *ports.LocationData) error {
	return r.update(loc, func(dst *ports.LocationData) {
		dst.Temperature = loc.Temperature
		dst.FeelsLike = loc.FeelsLike
		dst.WeatherDescription = loc.WeatherDescription
	})
}

func (r *memoryRepository) UpdateCachedWeather(_ context.Context, loc *ports.LocationData) error {
	return r.update(loc, func(dst *ports.LocationData) {
		dst.CachedWeather = loc.CachedWeather
	})
}

func (r *memoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, rec := range r.records {
		if rec.ID == id {
			r.records = append(r.records[:i], r.records[i+1:]...)
			return nil
		}
	}
	return errors.NewNotFoundError("location not found")
}

type fixture struct {
	uc       *UseCase
	repo     *memoryRepository
	bus      *events.Bus
	geocoder *mocks.Geocoder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := mocks.NewLogger(t).Permissive()
	repo := &memoryRepository{}
	bus := events.NewBus(logger, 8)
	geocoder := mocks.NewGeocoder(t)

	uc, err := NewUseCase(UseCaseDependencies{
		Repository: repo,
		Events:     bus,
		Geocoder:   geocoder,
		Logger:     logger,
	})
	require.NoError(t, err)

	ids := 0
	uc.newID = func() string {
		ids++
		return fmt.Sprintf("loc-%d", ids)
	}
	uc.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }

	return &fixture{uc: uc, repo: repo, bus: bus, geocoder: geocoder}
}

func cityNames(locations []*Location) []string {
	names := make([]string, len(locations))
	for i, loc := range locations {
		names[i] = loc.CityName
	}
	return names
}

func TestNewUseCase_RequiresDependencies(t *testing.T) {
	logger := mocks.NewLogger(t)
	_, err := NewUseCase(UseCaseDependencies{Logger: logger})
	assert.True(t, errors.IsValidationError(err))
	assert.Contains(t, err.Error(), "location repository is required")
}

func TestUseCase_Register(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()

		loc, err := f.uc.Register(ctx, RegisterParams{CityName: "  Paris ", Latitude: 48.8566, Longitude: 2.3522})

		require.NoError(t, err)
		assert.Equal(t, "loc-1", loc.ID)
		assert.Equal(t, "Paris", loc.CityName)
		assert.Equal(t, 48.8566, loc.Latitude)
		assert.Equal(t, 0.0, loc.Temperature)
		assert.Nil(t, loc.WeatherDescription)
		assert.Nil(t, loc.CachedWeather)
		assert.Equal(t, uint(1), loc.sequence)

		stored, err := f.uc.Get(ctx, "loc-1")
		require.NoError(t, err)
		assert.Equal(t, "Paris", stored.CityName)
	})

	t.Run("EmptyName", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()

		for _, name := range []string{"", "   "} {
			loc, err := f.uc.Register(ctx, RegisterParams{CityName: name})
			assert.Nil(t, loc)
			assert.True(t, errors.IsValidationError(err))
			assert.Contains(t, err.Error(), "City name cannot be empty.")
		}

		all, err := f.uc.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("InvalidCoordinates", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.uc.Register(context.Background(), RegisterParams{CityName: "Nowhere", Latitude: 95})

		assert.True(t, errors.IsValidationError(err))
		assert.Contains(t, err.Error(), "latitude")
	})

	t.Run("PublishesLocationAdded", func(t *testing.T) {
		f := newFixture(t)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		updates := f.bus.Subscribe(ctx)

		_, err := f.uc.Register(ctx, RegisterParams{CityName: "Oslo", Latitude: 59.91, Longitude: 10.75})
		require.NoError(t, err)

		event := <-updates
		assert.Equal(t, ports.LocationAdded, event.Type)
		assert.Equal(t, "Oslo", event.Location.CityName)
	})

	t.Run("SaveFailure", func(t *testing.T) {
		repo := mocks.NewLocationRepository(t)
		logger := mocks.NewLogger(t).Permissive()
		uc, err := NewUseCase(UseCaseDependencies{
			Repository: repo,
			Events:     events.NewBus(logger, 1),
			Geocoder:   mocks.NewGeocoder(t),
			Logger:     logger,
		})
		require.NoError(t, err)

		repo.On("Save", mock.Anything, mock.AnythingOfType("*ports.LocationData")).
			Return(errors.NewPersistenceError("disk full", nil))

		loc, err := uc.Register(context.Background(), RegisterParams{CityName: "Paris"})

		assert.Nil(t, loc)
		assert.True(t, errors.IsPersistenceError(err))
	})
}

func TestUseCase_Registration(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ok, msg := f.uc.Registration(ctx, RegisterParams{CityName: "Paris", Latitude: 48.8566, Longitude: 2.3522})
	assert.True(t, ok)
	assert.Equal(t, "Location registered successfully!", msg)

	ok, msg = f.uc.Registration(ctx, RegisterParams{CityName: " "})
	assert.False(t, ok)
	assert.Equal(t, "City name cannot be empty.", msg)
}

func TestUseCase_Registration_SaveFailureMessage(t *testing.T) {
	repo := mocks.NewLocationRepository(t)
	logger := mocks.NewLogger(t).Permissive()
	uc, err := NewUseCase(UseCaseDependencies{
		Repository: repo,
		Events:     events.NewBus(logger, 1),
		Geocoder:   mocks.NewGeocoder(t),
		Logger:     logger,
	})
	require.NoError(t, err)

	repo.On("Save", mock.Anything, mock.Anything).Return(fmt.Errorf("database is locked"))

	ok, msg := uc.Registration(context.Background(), RegisterParams{CityName: "Paris"})

	assert.False(t, ok)
	assert.Equal(t, "Failed to save location: database is locked", msg)
}

func TestUseCase_RegisterByName(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		f := newFixture(t)
		f.geocoder.On("Geocode", mock.Anything, "Paris").
			Return(&ports.GeoPoint{Name: "Paris", Country: "FR", Latitude: 48.8566, Longitude: 2.3522}, nil)

		loc, err := f.uc.RegisterByName(context.Background(), " Paris ")

		require.NoError(t, err)
		assert.Equal(t, "Paris", loc.CityName)
		assert.Equal(t, 48.8566, loc.Latitude)
		assert.Equal(t, 2.3522, loc.Longitude)
	})

	t.Run("EmptyNameSkipsGeocoder", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.uc.RegisterByName(context.Background(), "")

		assert.True(t, errors.IsValidationError(err))
		f.geocoder.AssertNotCalled(t, "Geocode", mock.Anything, mock.Anything)
	})

	t.Run("GeocodeFailure", func(t *testing.T) {
		f := newFixture(t)
		f.geocoder.On("Geocode", mock.Anything, "Atlantis").
			Return(nil, errors.NewNotFoundError("no match for city"))

		loc, err := f.uc.RegisterByName(context.Background(), "Atlantis")

		assert.Nil(t, loc)
		assert.True(t, errors.IsNotFoundError(err))
		all, _ := f.uc.List(context.Background())
		assert.Empty(t, all)
	})
}

func TestUseCase_List(t *testing.T) {
	t.Run("SortedAscending", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()

		for _, name := range []string{"Zurich", "Amsterdam", "Lisbon", "Berlin"} {
			_, err := f.uc.Register(ctx, RegisterParams{CityName: name})
			require.NoError(t, err)
		}

		all, err := f.uc.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"Amsterdam", "Berlin", "Lisbon", "Zurich"}, cityNames(all))
	})

	t.Run("DuplicateKeepsFirstRegistered", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()

		first, err := f.uc.Register(ctx, RegisterParams{CityName: "Paris", Latitude: 48.85})
		require.NoError(t, err)
		_, err = f.uc.Register(ctx, RegisterParams{CityName: "Paris", Latitude: 10})
		require.NoError(t, err)

		all, err := f.uc.List(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, first.ID, all[0].ID)
		assert.Equal(t, 48.85, all[0].Latitude)

		// both registrations are persisted
		records, _ := f.repo.FindAll(ctx)
		assert.Len(t, records, 2)
	})

	t.Run("CityNameIsCaseSensitive", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()

		_, _ = f.uc.Register(ctx, RegisterParams{CityName: "paris"})
		_, _ = f.uc.Register(ctx, RegisterParams{CityName: "Paris"})

		all, err := f.uc.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"Paris", "paris"}, cityNames(all))
	})

	t.Run("StoreFailure", func(t *testing.T) {
		repo := mocks.NewLocationRepository(t)
		logger := mocks.NewLogger(t).Permissive()
		uc, err := NewUseCase(UseCaseDependencies{
			Repository: repo,
			Events:     events.NewBus(logger, 1),
			Geocoder:   mocks.NewGeocoder(t),
			Logger:     logger,
		})
		require.NoError(t, err)
		repo.On("FindAll", mock.Anything).Return(nil, errors.NewPersistenceError("query failed", nil))

		_, err = uc.List(context.Background())
		assert.True(t, errors.IsPersistenceError(err))
	})
}

func TestUseCase_Delete(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loc, err := f.uc.Register(ctx, RegisterParams{CityName: "Rome"})
	require.NoError(t, err)
	updates := f.bus.Subscribe(ctx)

	require.NoError(t, f.uc.Delete(ctx, loc.ID))

	event := <-updates
	assert.Equal(t, ports.LocationDeleted, event.Type)
	assert.Equal(t, loc.ID, event.Location.ID)

	_, err = f.uc.Get(ctx, loc.ID)
	assert.True(t, errors.IsNotFoundError(err))

	err = f.uc.Delete(ctx, loc.ID)
	assert.True(t, errors.IsNotFoundError(err))
}

func TestUseCase_PersistWeather(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()
		loc, err := f.uc.Register(ctx, RegisterParams{CityName: "Paris"})
		require.NoError(t, err)

		desc := "clear sky"
		err = f.uc.PersistWeather(ctx, loc, PersistWeatherParams{Temperature: 18.5, FeelsLike: 17.9, Description: &desc})
		require.NoError(t, err)

		assert.Equal(t, 18.5, loc.Temperature)
		stored, err := f.uc.Get(ctx, loc.ID)
		require.NoError(t, err)
		assert.Equal(t, 18.5, stored.Temperature)
		assert.Equal(t, 17.9, stored.FeelsLike)
		assert.Equal(t, "clear sky", stored.Description("N/A"))
	})

	t.Run("PublishesStoredRecord", func(t *testing.T) {
		f := newFixture(t)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		loc, err := f.uc.Register(ctx, RegisterParams{CityName: "Paris", Latitude: 48.85})
		require.NoError(t, err)
		updates := f.bus.Subscribe(ctx)

		desc := "clear sky"
		require.NoError(t, f.uc.PersistWeather(ctx, loc, PersistWeatherParams{Temperature: 18.5, FeelsLike: 17.9, Description: &desc}))

		event := <-updates
		assert.Equal(t, ports.LocationUpdated, event.Type)
		assert.Equal(t, loc.ID, event.Location.ID)
		assert.Equal(t, 48.85, event.Location.Latitude)
		assert.Equal(t, 18.5, event.Location.Temperature)
		assert.Equal(t, 17.9, event.Location.FeelsLike)
		require.NotNil(t, event.Location.WeatherDescription)
		assert.Equal(t, "clear sky", *event.Location.WeatherDescription)
	})

	t.Run("CommitFailureStillUpdatesInstance", func(t *testing.T) {
		repo := mocks.NewLocationRepository(t)
		logger := mocks.NewLogger(t).Permissive()
		uc, err := NewUseCase(UseCaseDependencies{
			Repository: repo,
			Events:     events.NewBus(logger, 1),
			Geocoder:   mocks.NewGeocoder(t),
			Logger:     logger,
		})
		require.NoError(t, err)
		repo.On("UpdateWeather", mock.Anything, mock.Anything).Return(fmt.Errorf("read-only store"))

		loc := &Location{ID: "loc-1", CityName: "Paris"}
		err = uc.PersistWeather(context.Background(), loc, PersistWeatherParams{Temperature: 3})

		assert.True(t, errors.IsPersistenceError(err))
		assert.Equal(t, 3.0, loc.Temperature)
	})

	t.Run("NilLocation", func(t *testing.T) {
		f := newFixture(t)
		err := f.uc.PersistWeather(context.Background(), nil, PersistWeatherParams{})
		assert.True(t, errors.IsValidationError(err))
	})
}

func TestUseCase_UpdateCachedWeather(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	loc, err := f.uc.Register(ctx, RegisterParams{CityName: "Paris"})
	require.NoError(t, err)

	updates := f.bus.Subscribe(ctx)

	require.NoError(t, f.uc.UpdateCachedWeather(ctx, loc, "light rain"))

	event := <-updates
	assert.Equal(t, ports.LocationUpdated, event.Type)
	require.NotNil(t, event.Location.CachedWeather)
	assert.Equal(t, "light rain", *event.Location.CachedWeather)

	stored, err := f.uc.Get(ctx, loc.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.CachedWeather)
	assert.Equal(t, "light rain", *stored.CachedWeather)
	assert.Nil(t, stored.WeatherDescription)
}
