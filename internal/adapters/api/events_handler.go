package api

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"weathernow.app/internal/core/location"
	"weathernow.app/internal/ports"
)

// LocationEventResponse is one Server-Sent Event payload
type LocationEventResponse struct {
	Type     string           `json:"type"`
	Location LocationResponse `json:"location"`
}

// streamEvents handles GET /api/events by streaming registry events as SSE
// until the client disconnects
func (s *HTTPServerAdapter) streamEvents(c *gin.Context) {
	ctx := c.Request.Context()
	events := s.locations.Events().Subscribe(ctx)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)
	c.Writer.Flush()

	slog.Debug("Event stream opened", "remote", c.ClientIP())

	c.Stream(func(w io.Writer) bool {
		select {
		case event, ok := <-events:
			if !ok {
				return false
			}
			c.SSEvent(event.Type.String(), newLocationEventResponse(event))
			return true
		case <-ctx.Done():
			return false
		}
	})

	slog.Debug("Event stream closed", "remote", c.ClientIP())
}

func newLocationEventResponse(event ports.LocationEvent) LocationEventResponse {
	data := event.Location
	return LocationEventResponse{
		Type: event.Type.String(),
		Location: newLocationResponse(&location.Location{
			ID:                 data.ID,
			CityName:           data.CityName,
			Latitude:           data.Latitude,
			Longitude:          data.Longitude,
			RegistrationDate:   data.RegistrationDate,
			Temperature:        data.Temperature,
			FeelsLike:          data.FeelsLike,
			WeatherDescription: data.WeatherDescription,
		}),
	}
}
