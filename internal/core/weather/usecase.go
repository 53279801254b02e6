package weather

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"
	"weathernow.app/internal/core/location"
	"weathernow.app/internal/ports"
	"weathernow.app/pkg/errors"
	"weathernow.app/pkg/validation"
)

// locationStore is the part of the location registry the orchestrator writes through
type locationStore interface {
	PersistWeather(ctx context.Context, loc *location.Location, params location.PersistWeatherParams) error
	UpdateCachedWeather(ctx context.Context, loc *location.Location, description string) error
}

// UseCase decides between cached and fetched weather, persists observations
// and falls back to stored values when a fetch fails.
type UseCase struct {
	client    ports.WeatherClient
	cache     ports.WeatherCache
	icons     ports.IconCache
	locations locationStore
	notifier  ports.WeatherChangeNotifier
	config    ports.ConfigProvider
	logger    ports.Logger

	flights singleflight.Group
	now     func() time.Time
}

type UseCaseDependencies struct {
	Client    ports.WeatherClient
	Cache     ports.WeatherCache
	Icons     ports.IconCache
	Locations locationStore
	Notifier  ports.WeatherChangeNotifier
	Config    ports.ConfigProvider
	Logger    ports.Logger
}

func NewUseCase(deps UseCaseDependencies) (*UseCase, error) {
	if deps.Client == nil {
		return nil, errors.NewValidationError("weather client is required")
	}
	if deps.Cache == nil {
		return nil, errors.NewValidationError("cache is required")
	}
	if deps.Icons == nil {
		return nil, errors.NewValidationError("icon cache is required")
	}
	if deps.Locations == nil {
		return nil, errors.NewValidationError("location store is required")
	}
	if deps.Notifier == nil {
		return nil, errors.NewValidationError("change notifier is required")
	}
	if deps.Config == nil {
		return nil, errors.NewValidationError("config is required")
	}
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}

	return &UseCase{
		client:    deps.Client,
		cache:     deps.Cache,
		icons:     deps.Icons,
		locations: deps.Locations,
		notifier:  deps.Notifier,
		config:    deps.Config,
		logger:    deps.Logger,
		now:       time.Now,
	}, nil
}

// GetSnapshot returns the cached snapshot for loc or fetches, caches and
// persists a fresh one. Concurrent calls for the same city share one fetch,
// and only the first caller's loc receives the persisted weather fields and
// CachedWeather. Other callers must reload the location to observe them.
func (uc *UseCase) GetSnapshot(ctx context.Context, loc *location.Location) (*Snapshot, error) {
	if loc == nil {
		return nil, errors.NewValidationError("location cannot be nil")
	}

	key := CacheKey(loc.CityName)
	if snapshot, ok := uc.cached(ctx, key); ok {
		uc.logger.Debug("Weather found in cache", ports.F("city", loc.CityName))
		return snapshot, nil
	}

	v, err, shared := uc.flights.Do(key, func() (interface{}, error) {
		if snapshot, ok := uc.cached(ctx, key); ok {
			return snapshot, nil
		}

		snapshot, err := uc.fetch(ctx, key, loc.Latitude, loc.Longitude)
		if err != nil {
			return nil, err
		}
		uc.record(ctx, loc, snapshot)
		return snapshot, nil
	})
	if err != nil {
		return nil, fmt.Errorf("get weather for %s: %w", loc.CityName, err)
	}
	if shared {
		uc.logger.Debug("Weather fetch shared", ports.F("city", loc.CityName))
	}

	return v.(*Snapshot), nil
}

// GetWeather returns the report for a registered location. A failed fetch
// never surfaces as an error: the stored observation is reported instead,
// marked stale and carrying the failure as a notice.
func (uc *UseCase) GetWeather(ctx context.Context, loc *location.Location) (*Report, error) {
	if loc == nil {
		return nil, errors.NewValidationError("location cannot be nil")
	}

	snapshot, err := uc.GetSnapshot(ctx, loc)
	if err != nil {
		uc.logger.Warn("Falling back to stored weather",
			ports.F("city", loc.CityName),
			ports.F("error", err))
		return &Report{
			CityName:    loc.CityName,
			Temperature: loc.Temperature,
			FeelsLike:   loc.FeelsLike,
			Description: loc.Description(FallbackDescription),
			Icon:        PlaceholderIcon(),
			Stale:       true,
			Notice:      noticeFor(err),
		}, nil
	}

	report := snapshot.report(loc.CityName)
	report.Icon = uc.GetIcon(ctx, report.IconCode)
	return report, nil
}

// GetWeatherAt returns the report for an unregistered place. Nothing is
// stored for such a place, so a failed fetch is returned as an error.
func (uc *UseCase) GetWeatherAt(ctx context.Context, latitude, longitude float64) (*Report, error) {
	if !validation.IsValidLatitude(latitude) {
		return nil, errors.NewValidationError("latitude must be between -90 and 90")
	}
	if !validation.IsValidLongitude(longitude) {
		return nil, errors.NewValidationError("longitude must be between -180 and 180")
	}

	key := CoordinatesCacheKey(latitude, longitude)
	snapshot, ok := uc.cached(ctx, key)
	if !ok {
		v, err, _ := uc.flights.Do(key, func() (interface{}, error) {
			return uc.fetch(ctx, key, latitude, longitude)
		})
		if err != nil {
			return nil, fmt.Errorf("get weather at %.4f,%.4f: %w", latitude, longitude, err)
		}
		snapshot = v.(*Snapshot)
	}

	report := snapshot.report(snapshot.CityName)
	report.Icon = uc.GetIcon(ctx, report.IconCode)
	return report, nil
}

// GetIcon returns the icon image for code, or the placeholder when it
// cannot be obtained. Placeholders are never cached.
func (uc *UseCase) GetIcon(ctx context.Context, code string) []byte {
	if code == "" {
		return PlaceholderIcon()
	}

	if image, err := uc.icons.Get(ctx, code); err == nil && len(image) > 0 {
		return image
	} else if err != nil && !errors.IsNotFoundError(err) {
		uc.logger.Warn("Icon cache read failed", ports.F("icon", code), ports.F("error", err))
	}

	v, _, _ := uc.flights.Do("icon:"+code, func() (interface{}, error) {
		image := uc.client.FetchIcon(ctx, code)
		if image == nil {
			return nil, nil
		}
		if err := uc.icons.Set(ctx, code, image, uc.config.GetWeatherConfig().CacheTTL); err != nil {
			uc.logger.Warn("Failed to cache icon", ports.F("icon", code), ports.F("error", err))
		}
		return image, nil
	})

	image, _ := v.([]byte)
	if image == nil {
		uc.logger.Debug("Using placeholder icon", ports.F("icon", code))
		return PlaceholderIcon()
	}
	return image
}

// DetectChange compares newDescription with the description last used for
// change detection. On a difference it records the new value and emits a
// change notification. Identical descriptions never notify.
func (uc *UseCase) DetectChange(ctx context.Context, loc *location.Location, newDescription string) (bool, error) {
	if loc == nil {
		return false, errors.NewValidationError("location cannot be nil")
	}

	previous := UnknownWeather
	if loc.CachedWeather != nil {
		previous = *loc.CachedWeather
	}
	if previous == newDescription {
		return false, nil
	}

	persistErr := uc.locations.UpdateCachedWeather(ctx, loc, newDescription)
	if persistErr != nil {
		uc.logger.Error("Failed to persist cached weather",
			ports.F("city", loc.CityName),
			ports.F("error", persistErr))
	}

	change := ports.WeatherChange{
		LocationID: loc.ID,
		CityName:   loc.CityName,
		Previous:   previous,
		Current:    newDescription,
		DetectedAt: uc.now().UTC(),
	}
	if err := uc.notifier.NotifyWeatherChange(ctx, change); err != nil {
		uc.logger.Warn("Failed to deliver weather change",
			ports.F("city", loc.CityName),
			ports.F("error", err))
	}

	return true, persistErr
}

// ClearCache evicts every cached snapshot and icon
func (uc *UseCase) ClearCache(ctx context.Context) error {
	if err := uc.cache.Clear(ctx); err != nil {
		return fmt.Errorf("clear weather cache: %w", err)
	}
	uc.logger.Info("Weather cache cleared")
	return nil
}

func (uc *UseCase) cached(ctx context.Context, key string) (*Snapshot, bool) {
	data, err := uc.cache.Get(ctx, key)
	if err != nil {
		if !errors.IsNotFoundError(err) {
			uc.logger.Warn("Weather cache read failed", ports.F("key", key), ports.F("error", err))
		}
		return nil, false
	}
	if data == nil {
		return nil, false
	}
	return snapshotFromPorts(data), true
}

func (uc *UseCase) fetch(ctx context.Context, key string, latitude, longitude float64) (*Snapshot, error) {
	data, err := uc.client.FetchWeather(ctx, latitude, longitude)
	if err != nil {
		return nil, err
	}

	if err := uc.cache.Set(ctx, key, data, uc.config.GetWeatherConfig().CacheTTL); err != nil {
		uc.logger.Warn("Failed to cache weather data",
			ports.F("key", key),
			ports.F("error", err))
	}
	return snapshotFromPorts(data), nil
}

// record writes a fresh observation through to the location and checks it for a change
func (uc *UseCase) record(ctx context.Context, loc *location.Location, snapshot *Snapshot) {
	description := snapshot.PrimaryDescription()

	err := uc.locations.PersistWeather(ctx, loc, location.PersistWeatherParams{
		Temperature: snapshot.Temperature,
		FeelsLike:   snapshot.FeelsLike,
		Description: description,
	})
	if err != nil {
		uc.logger.Error("Failed to persist weather",
			ports.F("city", loc.CityName),
			ports.F("error", err))
	}

	if description == nil {
		return
	}
	if _, err := uc.DetectChange(ctx, loc, *description); err != nil {
		uc.logger.Warn("Weather change check incomplete",
			ports.F("city", loc.CityName),
			ports.F("error", err))
	}
}

func noticeFor(err error) string {
	if appErr, ok := errors.AsAppError(err); ok {
		return appErr.Message
	}
	return err.Error()
}
