package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"weathernow.app/internal/core/location"
	"weathernow.app/pkg/errors"
)

// RegisterLocationRequest is the registration form. Without coordinates the
// city name is geocoded.
type RegisterLocationRequest struct {
	CityName  string   `json:"city_name" binding:"required"`
	Latitude  *float64 `json:"latitude" binding:"omitempty,latitude"`
	Longitude *float64 `json:"longitude" binding:"omitempty,longitude"`
}

// LocationResponse represents a registered location
type LocationResponse struct {
	ID                 string    `json:"id"`
	CityName           string    `json:"city_name"`
	Latitude           float64   `json:"latitude"`
	Longitude          float64   `json:"longitude"`
	RegistrationDate   time.Time `json:"registration_date"`
	Temperature        float64   `json:"temperature"`
	FeelsLike          float64   `json:"feels_like"`
	WeatherDescription *string   `json:"weather_description,omitempty"`
}

// RegistrationResponse carries the registration outcome message
type RegistrationResponse struct {
	OK       bool              `json:"ok"`
	Message  string            `json:"message"`
	Location *LocationResponse `json:"location,omitempty"`
}

func newLocationResponse(loc *location.Location) LocationResponse {
	return LocationResponse{
		ID:                 loc.ID,
		CityName:           loc.CityName,
		Latitude:           loc.Latitude,
		Longitude:          loc.Longitude,
		RegistrationDate:   loc.RegistrationDate,
		Temperature:        loc.Temperature,
		FeelsLike:          loc.FeelsLike,
		WeatherDescription: loc.WeatherDescription,
	}
}

// registerLocation handles POST /api/locations requests
func (s *HTTPServerAdapter) registerLocation(c *gin.Context) {
	var req RegisterLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Debug("Request binding error", "error", err)
		s.handleError(c, errors.NewValidationError("Invalid request format"))
		return
	}

	ctx := c.Request.Context()
	var (
		loc *location.Location
		err error
	)
	switch {
	case req.Latitude != nil && req.Longitude != nil:
		loc, err = s.locations.Register(ctx, location.RegisterParams{
			CityName:  req.CityName,
			Latitude:  *req.Latitude,
			Longitude: *req.Longitude,
		})
	case req.Latitude == nil && req.Longitude == nil:
		loc, err = s.locations.RegisterByName(ctx, req.CityName)
	default:
		err = errors.NewValidationError("latitude and longitude must be provided together")
	}

	if err != nil {
		status, _ := statusFor(err)
		c.JSON(status, RegistrationResponse{OK: false, Message: location.RegistrationMessage(err)})
		return
	}

	response := newLocationResponse(loc)
	c.JSON(http.StatusCreated, RegistrationResponse{
		OK:       true,
		Message:  location.RegistrationMessage(nil),
		Location: &response,
	})
}

// listLocations handles GET /api/locations requests
func (s *HTTPServerAdapter) listLocations(c *gin.Context) {
	locations := s.listing.Snapshot()

	response := make([]LocationResponse, len(locations))
	for i, loc := range locations {
		response[i] = newLocationResponse(loc)
	}
	c.JSON(http.StatusOK, response)
}

// getLocation handles GET /api/locations/:id requests
func (s *HTTPServerAdapter) getLocation(c *gin.Context) {
	loc, err := s.locations.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, newLocationResponse(loc))
}

// deleteLocation handles DELETE /api/locations/:id requests
func (s *HTTPServerAdapter) deleteLocation(c *gin.Context) {
	if err := s.locations.Delete(c.Request.Context(), c.Param("id")); err != nil {
		s.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
