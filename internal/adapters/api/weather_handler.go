package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"weathernow.app/internal/core/weather"
	"weathernow.app/pkg/errors"
	"weathernow.app/pkg/validation"
)

// CurrentWeatherQuery holds the coordinates of an unregistered place
type CurrentWeatherQuery struct {
	Latitude  *float64 `form:"lat" binding:"required,latitude"`
	Longitude *float64 `form:"lon" binding:"required,longitude"`
}

// WeatherResponse is a weather report with a link to its icon
type WeatherResponse struct {
	*weather.Report
	IconURL string `json:"icon_url"`
}

func newWeatherResponse(report *weather.Report) WeatherResponse {
	code := report.IconCode
	if code == "" {
		code = "placeholder"
	}
	return WeatherResponse{Report: report, IconURL: "/api/icons/" + code}
}

// getLocationWeather handles GET /api/locations/:id/weather requests.
// Stale reports are still served with 200.
func (s *HTTPServerAdapter) getLocationWeather(c *gin.Context) {
	ctx := c.Request.Context()

	loc, err := s.locations.Get(ctx, c.Param("id"))
	if err != nil {
		s.handleError(c, err)
		return
	}

	report, err := s.weather.GetWeather(ctx, loc)
	if err != nil {
		s.handleError(c, err)
		return
	}

	if report.Stale {
		slog.Debug("Serving stale weather", "city", loc.CityName, "notice", report.Notice)
	}
	c.JSON(http.StatusOK, newWeatherResponse(report))
}

// getCurrentWeather handles GET /api/weather/current requests
func (s *HTTPServerAdapter) getCurrentWeather(c *gin.Context) {
	var query CurrentWeatherQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		slog.Debug("Query binding error", "error", err)
		s.handleError(c, errors.NewValidationError("lat and lon must be valid coordinates"))
		return
	}

	report, err := s.weather.GetWeatherAt(c.Request.Context(), *query.Latitude, *query.Longitude)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, newWeatherResponse(report))
}

// getIcon handles GET /api/icons/:code requests. Unknown codes get the placeholder.
func (s *HTTPServerAdapter) getIcon(c *gin.Context) {
	code := c.Param("code")
	if !validation.IsValidIconCode(code) {
		code = ""
	}

	image := s.weather.GetIcon(c.Request.Context(), code)
	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, http.DetectContentType(image), image)
}

// clearWeatherCache handles DELETE /api/weather/cache requests
func (s *HTTPServerAdapter) clearWeatherCache(c *gin.Context) {
	if err := s.weather.ClearCache(c.Request.Context()); err != nil {
		s.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
