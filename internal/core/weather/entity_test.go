package weather

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weathernow.app/internal/ports"
)

func TestSnapshot_Primary(t *testing.T) {
	t.Run("FirstConditionWins", func(t *testing.T) {
		s := &Snapshot{Conditions: []Condition{
			{Description: "clear sky", Icon: "01d"},
			{Description: "mist", Icon: "50d"},
		}}

		c, ok := s.Primary()
		assert.True(t, ok)
		assert.Equal(t, "clear sky", c.Description)
		require.NotNil(t, s.PrimaryDescription())
		assert.Equal(t, "clear sky", *s.PrimaryDescription())
	})

	t.Run("NoConditions", func(t *testing.T) {
		s := &Snapshot{}

		_, ok := s.Primary()
		assert.False(t, ok)
		assert.Nil(t, s.PrimaryDescription())
	})
}

func TestSnapshot_Report(t *testing.T) {
	s := &Snapshot{CityName: "Paris", Temperature: 18.5, FeelsLike: 17.9}

	r := s.report("Paris")

	assert.Equal(t, FallbackDescription, r.Description)
	assert.Empty(t, r.IconCode)
	assert.False(t, r.Stale)
}

func TestSnapshot_PortsRoundTripKeepsOptionalFields(t *testing.T) {
	pressure := 1013
	data := &ports.WeatherSnapshot{
		CityName:    "Paris",
		Temperature: 18.5,
		FeelsLike:   17.9,
		Pressure:    &pressure,
		Conditions:  []ports.WeatherCondition{{Description: "clear sky", Icon: "01d"}},
	}

	s := snapshotFromPorts(data)

	assert.Equal(t, data, s.toPorts())
	assert.Nil(t, s.Humidity)
}

func TestCacheKeys(t *testing.T) {
	assert.Equal(t, "weather:Paris", CacheKey("Paris"))
	assert.Equal(t, "coords:48.8566,2.3522", CoordinatesCacheKey(48.85661, 2.35222))
	assert.Equal(t, "coords:-33.8688,151.2093", CoordinatesCacheKey(-33.8688, 151.2093))

	// a city named like a coordinate key stays in its own key space
	assert.NotEqual(t, CoordinatesCacheKey(48.8566, 2.3522), CacheKey("coords:48.8566,2.3522"))
}

func TestPlaceholderIcon(t *testing.T) {
	icon := PlaceholderIcon()
	require.NotEmpty(t, icon)

	img, err := png.Decode(bytes.NewReader(icon))
	require.NoError(t, err)
	assert.Equal(t, placeholderSize, img.Bounds().Dx())

	original := bytes.Clone(icon)
	icon[0] ^= 0xFF
	assert.Equal(t, original, PlaceholderIcon())
}
