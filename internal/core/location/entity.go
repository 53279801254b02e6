package location

import (
	"fmt"
	"sort"
	"time"

	"weathernow.app/internal/ports"
	"weathernow.app/pkg/validation"
)

const (
	msgEmptyCityName      = "City name cannot be empty."
	msgRegisteredOK       = "Location registered successfully!"
	msgSaveFailedTemplate = "Failed to save location: %s"
)

// Location is a registered place. CityName is the deduplication key.
type Location struct {
	ID                 string
	CityName           string
	Latitude           float64
	Longitude          float64
	RegistrationDate   time.Time
	Temperature        float64
	FeelsLike          float64
	WeatherDescription *string
	CachedWeather      *string

	sequence uint
}

// RegisterParams holds the user input for a new registration
type RegisterParams struct {
	CityName  string
	Latitude  float64
	Longitude float64
}

// Validate checks the registration input and returns the trimmed city name
func (p RegisterParams) Validate() (string, error) {
	cityName, ok := validation.TrimAndValidate(p.CityName)
	if !ok {
		return "", fmt.Errorf("%s", msgEmptyCityName)
	}
	if !validation.IsValidLatitude(p.Latitude) {
		return "", fmt.Errorf("latitude must be between -90 and 90")
	}
	if !validation.IsValidLongitude(p.Longitude) {
		return "", fmt.Errorf("longitude must be between -180 and 180")
	}
	return cityName, nil
}

// Description returns the last observed description, or fallback when none was stored
func (l *Location) Description(fallback string) string {
	if l.WeatherDescription == nil {
		return fallback
	}
	return *l.WeatherDescription
}

// HasObservation reports whether a fetch has ever succeeded for this location
func (l *Location) HasObservation() bool {
	return l.WeatherDescription != nil
}

func (l *Location) toData() *ports.LocationData {
	return &ports.LocationData{
		ID:                 l.ID,
		Sequence:           l.sequence,
		CityName:           l.CityName,
		Latitude:           l.Latitude,
		Longitude:          l.Longitude,
		RegistrationDate:   l.RegistrationDate,
		Temperature:        l.Temperature,
		FeelsLike:          l.FeelsLike,
		WeatherDescription: l.WeatherDescription,
		CachedWeather:      l.CachedWeather,
	}
}

func fromData(data *ports.LocationData) *Location {
	return &Location{
		ID:                 data.ID,
		CityName:           data.CityName,
		Latitude:           data.Latitude,
		Longitude:          data.Longitude,
		RegistrationDate:   data.RegistrationDate,
		Temperature:        data.Temperature,
		FeelsLike:          data.FeelsLike,
		WeatherDescription: data.WeatherDescription,
		CachedWeather:      data.CachedWeather,
		sequence:           data.Sequence,
	}
}

// DistinctSorted keeps the first occurrence of each city name, in input order,
// then sorts the survivors ascending by city name.
func DistinctSorted(locations []*Location) []*Location {
	seen := make(map[string]struct{}, len(locations))
	result := make([]*Location, 0, len(locations))
	for _, loc := range locations {
		if _, dup := seen[loc.CityName]; dup {
			continue
		}
		seen[loc.CityName] = struct{}{}
		result = append(result, loc)
	}
	sortByCityName(result)
	return result
}

func sortByCityName(locations []*Location) {
	sort.SliceStable(locations, func(i, j int) bool {
		return locations[i].CityName < locations[j].CityName
	})
}

func stringPtr(s string) *string {
	return &s
}
