package location

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"weathernow.app/internal/ports"
	"weathernow.app/pkg/errors"
	"weathernow.app/pkg/validation"
)

// UseCase is the location registry. It exclusively owns the persisted
// Location records and announces every mutation on the event bus.
type UseCase struct {
	repository ports.LocationRepository
	events     ports.LocationEvents
	geocoder   ports.Geocoder
	logger     ports.Logger
	now        func() time.Time
	newID      func() string
}

type UseCaseDependencies struct {
	Repository ports.LocationRepository
	Events     ports.LocationEvents
	Geocoder   ports.Geocoder
	Logger     ports.Logger
}

// PersistWeatherParams holds the observed fields written after a successful fetch
type PersistWeatherParams struct {
	Temperature float64
	FeelsLike   float64
	Description *string
}

func NewUseCase(deps UseCaseDependencies) (*UseCase, error) {
	if deps.Repository == nil {
		return nil, errors.NewValidationError("location repository is required")
	}
	if deps.Events == nil {
		return nil, errors.NewValidationError("location events are required")
	}
	if deps.Geocoder == nil {
		return nil, errors.NewValidationError("geocoder is required")
	}
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}

	return &UseCase{
		repository: deps.Repository,
		events:     deps.Events,
		geocoder:   deps.Geocoder,
		logger:     deps.Logger,
		now:        time.Now,
		newID:      uuid.NewString,
	}, nil
}

// Register validates and persists a new location, then announces it.
// A second registration of an existing city name is persisted too; List and
// Listing only ever expose the first one.
func (uc *UseCase) Register(ctx context.Context, params RegisterParams) (*Location, error) {
	cityName, err := params.Validate()
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	loc := &Location{
		ID:               uc.newID(),
		CityName:         cityName,
		Latitude:         params.Latitude,
		Longitude:        params.Longitude,
		RegistrationDate: uc.now().UTC(),
	}

	data := loc.toData()
	if err := uc.repository.Save(ctx, data); err != nil {
		uc.logger.Error("Failed to save location",
			ports.F("city", cityName),
			ports.F("error", err))
		return nil, err
	}
	loc.sequence = data.Sequence

	uc.logger.Info("Location registered",
		ports.F("id", loc.ID),
		ports.F("city", loc.CityName))

	uc.events.Publish(ctx, ports.LocationEvent{Type: ports.LocationAdded, Location: *data})
	return loc, nil
}

// RegisterByName geocodes the city name and registers the resulting coordinates
func (uc *UseCase) RegisterByName(ctx context.Context, cityName string) (*Location, error) {
	trimmed, ok := validation.TrimAndValidate(cityName)
	if !ok {
		return nil, errors.NewValidationError(msgEmptyCityName)
	}

	point, err := uc.geocoder.Geocode(ctx, trimmed)
	if err != nil {
		uc.logger.Warn("Geocoding failed",
			ports.F("city", trimmed),
			ports.F("error", err))
		return nil, fmt.Errorf("geocode %s: %w", trimmed, err)
	}

	return uc.Register(ctx, RegisterParams{
		CityName:  trimmed,
		Latitude:  point.Latitude,
		Longitude: point.Longitude,
	})
}

// Registration is the collaborator-facing form of Register: it never returns
// an error, only an outcome flag and a user-facing message.
func (uc *UseCase) Registration(ctx context.Context, params RegisterParams) (bool, string) {
	_, err := uc.Register(ctx, params)
	return err == nil, RegistrationMessage(err)
}

// RegistrationMessage renders the user-facing outcome of a registration attempt
func RegistrationMessage(err error) string {
	if err == nil {
		return msgRegisteredOK
	}
	if appErr, ok := errors.AsAppError(err); ok && appErr.Type == errors.ValidationError {
		return appErr.Message
	}
	return fmt.Sprintf(msgSaveFailedTemplate, err.Error())
}

// List returns all persisted locations deduplicated by city name and sorted
func (uc *UseCase) List(ctx context.Context) ([]*Location, error) {
	records, err := uc.repository.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}

	locations := make([]*Location, len(records))
	for i, record := range records {
		locations[i] = fromData(record)
	}
	return DistinctSorted(locations), nil
}

// Get returns one persisted location by ID
func (uc *UseCase) Get(ctx context.Context, id string) (*Location, error) {
	if id == "" {
		return nil, errors.NewValidationError("location ID cannot be empty")
	}

	data, err := uc.repository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return fromData(data), nil
}

// Delete removes a location from storage and announces the removal
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	loc, err := uc.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := uc.repository.Delete(ctx, id); err != nil {
		return err
	}

	uc.logger.Info("Location deleted",
		ports.F("id", id),
		ports.F("city", loc.CityName))

	uc.events.Publish(ctx, ports.LocationEvent{Type: ports.LocationDeleted, Location: *loc.toData()})
	return nil
}

// PersistWeather overwrites the observed-weather fields of loc and commits them.
// loc is updated even when the commit fails.
func (uc *UseCase) PersistWeather(ctx context.Context, loc *Location, params PersistWeatherParams) error {
	if loc == nil {
		return errors.NewValidationError("location cannot be nil")
	}

	loc.Temperature = params.Temperature
	loc.FeelsLike = params.FeelsLike
	loc.WeatherDescription = params.Description

	if err := uc.repository.UpdateWeather(ctx, loc.toData()); err != nil {
		return errors.NewPersistenceError("failed to save weather details", err)
	}
	uc.announceUpdate(ctx, loc.ID)
	return nil
}

// UpdateCachedWeather records the description used for change detection
func (uc *UseCase) UpdateCachedWeather(ctx context.Context, loc *Location, description string) error {
	if loc == nil {
		return errors.NewValidationError("location cannot be nil")
	}

	loc.CachedWeather = stringPtr(description)

	if err := uc.repository.UpdateCachedWeather(ctx, loc.toData()); err != nil {
		return errors.NewPersistenceError("failed to save cached weather", err)
	}
	uc.announceUpdate(ctx, loc.ID)
	return nil
}

// announceUpdate publishes the committed record, which may differ from the
// caller's instance when an earlier write failed
func (uc *UseCase) announceUpdate(ctx context.Context, id string) {
	data, err := uc.repository.FindByID(ctx, id)
	if err != nil {
		uc.logger.Warn("Failed to load updated location",
			ports.F("id", id),
			ports.F("error", err))
		return
	}
	uc.events.Publish(ctx, ports.LocationEvent{Type: ports.LocationUpdated, Location: *data})
}

// Events exposes the registry's event bus to listeners needing live updates
func (uc *UseCase) Events() ports.LocationEvents {
	return uc.events
}
