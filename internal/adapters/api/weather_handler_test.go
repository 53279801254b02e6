package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"weathernow.app/internal/core/weather"
	"weathernow.app/pkg/errors"
)

func TestGetLocationWeather(t *testing.T) {
	t.Run("Fresh", func(t *testing.T) {
		ts := newTestServer(t, nil, staticHealth{})
		loc := paris()
		ts.locations.On("Get", mock.Anything, "loc-1").Return(loc, nil).Once()
		ts.weather.On("GetWeather", mock.Anything, loc).Return(&weather.Report{
			CityName:    "Paris",
			Temperature: 18.5,
			FeelsLike:   17.9,
			Description: "clear sky",
			IconCode:    "01d",
			Icon:        []byte{0x89, 'P', 'N', 'G'},
		}, nil).Once()

		w := ts.do(http.MethodGet, "/api/locations/loc-1/weather", nil)

		require.Equal(t, http.StatusOK, w.Code)
		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Paris", body["city_name"])
		assert.Equal(t, 18.5, body["temperature"])
		assert.Equal(t, "clear sky", body["description"])
		assert.Equal(t, "/api/icons/01d", body["icon_url"])
		assert.NotContains(t, body, "icon")
	})

	t.Run("StaleStillOK", func(t *testing.T) {
		ts := newTestServer(t, nil, staticHealth{})
		loc := paris()
		ts.locations.On("Get", mock.Anything, "loc-1").Return(loc, nil).Once()
		ts.weather.On("GetWeather", mock.Anything, loc).Return(&weather.Report{
			CityName:    "Paris",
			Description: weather.FallbackDescription,
			Stale:       true,
			Notice:      "Network error occurred: connection refused",
		}, nil).Once()

		w := ts.do(http.MethodGet, "/api/locations/loc-1/weather", nil)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"stale":true`)
		assert.Contains(t, w.Body.String(), "Network error occurred")
		assert.Contains(t, w.Body.String(), "/api/icons/placeholder")
	})

	t.Run("UnknownLocation", func(t *testing.T) {
		ts := newTestServer(t, nil, staticHealth{})
		ts.locations.On("Get", mock.Anything, "missing").Return(nil, errors.NewNotFoundError("location not found")).Once()

		w := ts.do(http.MethodGet, "/api/locations/missing/weather", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestGetCurrentWeather(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		ts := newTestServer(t, nil, staticHealth{})
		ts.weather.On("GetWeatherAt", mock.Anything, 48.8566, 2.3522).
			Return(&weather.Report{CityName: "Paris", IconCode: "01d"}, nil).Once()

		w := ts.do(http.MethodGet, "/api/weather/current?lat=48.8566&lon=2.3522", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"city_name":"Paris"`)
	})

	t.Run("ZeroCoordinatesAllowed", func(t *testing.T) {
		ts := newTestServer(t, nil, staticHealth{})
		ts.weather.On("GetWeatherAt", mock.Anything, 0.0, 0.0).
			Return(&weather.Report{CityName: "Globe"}, nil).Once()

		w := ts.do(http.MethodGet, "/api/weather/current?lat=0&lon=0", nil)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("MissingCoordinates", func(t *testing.T) {
		ts := newTestServer(t, nil, staticHealth{})

		w := ts.do(http.MethodGet, "/api/weather/current?lat=48.8", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("OutOfRange", func(t *testing.T) {
		ts := newTestServer(t, nil, staticHealth{})

		w := ts.do(http.MethodGet, "/api/weather/current?lat=48.8&lon=200", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("FetchFailure", func(t *testing.T) {
		ts := newTestServer(t, nil, staticHealth{})
		ts.weather.On("GetWeatherAt", mock.Anything, 1.0, 2.0).
			Return(nil, errors.NewInvalidResponseError("The server response was invalid.")).Once()

		w := ts.do(http.MethodGet, "/api/weather/current?lat=1&lon=2", nil)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.JSONEq(t, `{"error":"The server response was invalid."}`, w.Body.String())
	})
}

func TestGetIcon(t *testing.T) {
	png := weather.PlaceholderIcon()

	t.Run("KnownCode", func(t *testing.T) {
		ts := newTestServer(t, nil, staticHealth{})
		ts.weather.On("GetIcon", mock.Anything, "10n").Return(png).Once()

		w := ts.do(http.MethodGet, "/api/icons/10n", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
		assert.Equal(t, png, w.Body.Bytes())
	})

	t.Run("InvalidCodeGetsPlaceholder", func(t *testing.T) {
		ts := newTestServer(t, nil, staticHealth{})
		ts.weather.On("GetIcon", mock.Anything, "").Return(png).Once()

		w := ts.do(http.MethodGet, "/api/icons/placeholder", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, png, w.Body.Bytes())
	})
}

func TestClearWeatherCache(t *testing.T) {
	ts := newTestServer(t, nil, staticHealth{})
	ts.weather.On("ClearCache", mock.Anything).Return(nil).Once()

	assert.Equal(t, http.StatusNoContent, ts.do(http.MethodDelete, "/api/weather/cache", nil).Code)
}
