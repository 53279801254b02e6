package weather

import (
	"fmt"
	"strconv"

	"weathernow.app/internal/ports"
)

const (
	// FallbackDescription is shown when no description was ever stored
	FallbackDescription = "N/A"
	// UnknownWeather stands in for the previous description before the first change check
	UnknownWeather = "Unknown"

	weatherKeyPrefix = "weather:"
	coordsKeyPrefix  = "coords:"
)

// Condition is one reported weather condition
type Condition struct {
	Description string
	Icon        string
}

// Snapshot is one decoded current-weather observation. It is never mutated
// after decoding, so the same value may be shared between callers.
type Snapshot struct {
	CityName    string
	Temperature float64
	FeelsLike   float64
	Pressure    *int
	Humidity    *int
	Conditions  []Condition
}

// Primary returns the first reported condition
func (s *Snapshot) Primary() (Condition, bool) {
	if len(s.Conditions) == 0 {
		return Condition{}, false
	}
	return s.Conditions[0], true
}

// PrimaryDescription returns the first condition's description, or nil when none was reported
func (s *Snapshot) PrimaryDescription() *string {
	c, ok := s.Primary()
	if !ok {
		return nil
	}
	desc := c.Description
	return &desc
}

// Report is what the presentation layer renders for one place
type Report struct {
	CityName    string  `json:"city_name"`
	Temperature float64 `json:"temperature"`
	FeelsLike   float64 `json:"feels_like"`
	Description string  `json:"description"`
	IconCode    string  `json:"icon_code,omitempty"`
	Icon        []byte  `json:"-"`
	// Stale is set when the values come from storage because the fetch failed
	Stale  bool   `json:"stale"`
	Notice string `json:"notice,omitempty"`
}

// CacheKey returns the snapshot cache key of a registered city
func CacheKey(cityName string) string {
	return weatherKeyPrefix + cityName
}

// CoordinatesCacheKey returns the snapshot cache key of an unregistered place
func CoordinatesCacheKey(latitude, longitude float64) string {
	return fmt.Sprintf("%s%s,%s", coordsKeyPrefix,
		strconv.FormatFloat(latitude, 'f', 4, 64),
		strconv.FormatFloat(longitude, 'f', 4, 64))
}

func snapshotFromPorts(data *ports.WeatherSnapshot) *Snapshot {
	conditions := make([]Condition, len(data.Conditions))
	for i, c := range data.Conditions {
		conditions[i] = Condition{Description: c.Description, Icon: c.Icon}
	}
	return &Snapshot{
		CityName:    data.CityName,
		Temperature: data.Temperature,
		FeelsLike:   data.FeelsLike,
		Pressure:    data.Pressure,
		Humidity:    data.Humidity,
		Conditions:  conditions,
	}
}

func (s *Snapshot) toPorts() *ports.WeatherSnapshot {
	conditions := make([]ports.WeatherCondition, len(s.Conditions))
	for i, c := range s.Conditions {
		conditions[i] = ports.WeatherCondition{Description: c.Description, Icon: c.Icon}
	}
	return &ports.WeatherSnapshot{
		CityName:    s.CityName,
		Temperature: s.Temperature,
		FeelsLike:   s.FeelsLike,
		Pressure:    s.Pressure,
		Humidity:    s.Humidity,
		Conditions:  conditions,
	}
}

func (s *Snapshot) report(cityName string) *Report {
	r := &Report{
		CityName:    cityName,
		Temperature: s.Temperature,
		FeelsLike:   s.FeelsLike,
		Description: FallbackDescription,
	}
	if c, ok := s.Primary(); ok {
		r.Description = c.Description
		r.IconCode = c.Icon
	}
	return r
}
