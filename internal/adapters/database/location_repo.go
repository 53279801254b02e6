package database

import (
	"context"
	stderrors "errors"
	"time"

	"gorm.io/gorm"
	"weathernow.app/internal/ports"
	"weathernow.app/pkg/errors"
)

// LocationModel represents the database model for registered locations.
// Sequence preserves insertion order for duplicate resolution.
type LocationModel struct {
	Sequence           uint    `gorm:"primaryKey;autoIncrement"`
	ID                 string  `gorm:"uniqueIndex;size:36;not null"`
	CityName           string  `gorm:"index;not null"`
	Latitude           float64 `gorm:"not null"`
	Longitude          float64 `gorm:"not null"`
	RegistrationDate   time.Time
	Temperature        float64
	FeelsLike          float64
	WeatherDescription *string
	CachedWeather      *string
	CreatedAt          time.Time
	UpdatedAt          time.Time
	DeletedAt          gorm.DeletedAt `gorm:"index"`
}

func (LocationModel) TableName() string {
	return "locations"
}

// LocationRepositoryAdapter implements the LocationRepository port using GORM
type LocationRepositoryAdapter struct {
	db *gorm.DB
}

var _ ports.LocationRepository = (*LocationRepositoryAdapter)(nil)

// NewLocationRepositoryAdapter creates a new location repository adapter
func NewLocationRepositoryAdapter(db *gorm.DB) *LocationRepositoryAdapter {
	return &LocationRepositoryAdapter{db: db}
}

// Save inserts a new location and writes the assigned sequence back to loc
func (r *LocationRepositoryAdapter) Save(ctx context.Context, loc *ports.LocationData) error {
	if loc == nil {
		return errors.NewValidationError("location cannot be nil")
	}
	if loc.ID == "" {
		return errors.NewValidationError("location ID cannot be empty")
	}

	model := dataToModel(loc)
	model.Sequence = 0
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return errors.NewPersistenceError("failed to save location", err)
	}

	loc.Sequence = model.Sequence
	return nil
}

// FindByID retrieves a location by its ID
func (r *LocationRepositoryAdapter) FindByID(ctx context.Context, id string) (*ports.LocationData, error) {
	if id == "" {
		return nil, errors.NewValidationError("location ID cannot be empty")
	}

	var model LocationModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NewNotFoundError("location not found")
		}
		return nil, errors.NewPersistenceError("failed to find location by ID", err)
	}

	return modelToData(&model), nil
}

// FindAll returns every location in insertion order
func (r *LocationRepositoryAdapter) FindAll(ctx context.Context) ([]*ports.LocationData, error) {
	var models []LocationModel
	if err := r.db.WithContext(ctx).Order("sequence ASC").Find(&models).Error; err != nil {
		return nil, errors.NewPersistenceError("failed to list locations", err)
	}

	locations := make([]*ports.LocationData, len(models))
	for i := range models {
		locations[i] = modelToData(&models[i])
	}
	return locations, nil
}

// UpdateWeather overwrites the observed weather fields
func (r *LocationRepositoryAdapter) UpdateWeather(ctx context.Context, loc *ports.LocationData) error {
	if loc == nil {
		return errors.NewValidationError("location cannot be nil")
	}

	return r.update(ctx, loc.ID, map[string]interface{}{
		"temperature":         loc.Temperature,
		"feels_like":          loc.FeelsLike,
		"weather_description": loc.WeatherDescription,
	}, "failed to update weather")
}

// UpdateCachedWeather overwrites the description used for change detection
func (r *LocationRepositoryAdapter) UpdateCachedWeather(ctx context.Context, loc *ports.LocationData) error {
	if loc == nil {
		return errors.NewValidationError("location cannot be nil")
	}

	return r.update(ctx, loc.ID, map[string]interface{}{
		"cached_weather": loc.CachedWeather,
	}, "failed to update cached weather")
}

// Delete removes a location
func (r *LocationRepositoryAdapter) Delete(ctx context.Context, id string) error {
	if id == "" {
		return errors.NewValidationError("location ID cannot be empty")
	}

	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&LocationModel{})
	if result.Error != nil {
		return errors.NewPersistenceError("failed to delete location", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("location not found")
	}
	return nil
}

func (r *LocationRepositoryAdapter) update(ctx context.Context, id string, fields map[string]interface{}, failure string) error {
	if id == "" {
		return errors.NewValidationError("location ID cannot be empty")
	}

	result := r.db.WithContext(ctx).Model(&LocationModel{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return errors.NewPersistenceError(failure, result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("location not found")
	}
	return nil
}

func dataToModel(data *ports.LocationData) *LocationModel {
	return &LocationModel{
		Sequence:           data.Sequence,
		ID:                 data.ID,
		CityName:           data.CityName,
		Latitude:           data.Latitude,
		Longitude:          data.Longitude,
		RegistrationDate:   data.RegistrationDate,
		Temperature:        data.Temperature,
		FeelsLike:          data.FeelsLike,
		WeatherDescription: data.WeatherDescription,
		CachedWeather:      data.CachedWeather,
	}
}

func modelToData(model *LocationModel) *ports.LocationData {
	return &ports.LocationData{
		ID:                 model.ID,
		Sequence:           model.Sequence,
		CityName:           model.CityName,
		Latitude:           model.Latitude,
		Longitude:          model.Longitude,
		RegistrationDate:   model.RegistrationDate,
		Temperature:        model.Temperature,
		FeelsLike:          model.FeelsLike,
		WeatherDescription: model.WeatherDescription,
		CachedWeather:      model.CachedWeather,
	}
}
