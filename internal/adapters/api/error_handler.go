package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	errorspkg "weathernow.app/pkg/errors"
)

// ErrorResponse represents an error message structure for API responses
type ErrorResponse struct {
	Error string `json:"error"`
}

// statusFor maps an application error to its HTTP status and client message
func statusFor(err error) (int, string) {
	var appErr *errorspkg.AppError
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError, "Internal server error"
	}

	switch {
	case appErr.Type == errorspkg.ValidationError, appErr.Type == errorspkg.InvalidRequestError:
		return http.StatusBadRequest, appErr.Message
	case appErr.Type == errorspkg.NotFoundError:
		return http.StatusNotFound, appErr.Message
	case appErr.Type == errorspkg.AlreadyExistsError:
		return http.StatusConflict, appErr.Message
	case appErr.Type.IsWeatherFetch():
		return http.StatusServiceUnavailable, appErr.Message
	case appErr.Type == errorspkg.ExternalAPIError:
		return http.StatusServiceUnavailable, "External service unavailable"
	case appErr.Type == errorspkg.EmailError:
		return http.StatusServiceUnavailable, "Unable to send email"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// handleError writes the response for err
func (s *HTTPServerAdapter) handleError(c *gin.Context, err error) {
	statusCode, message := statusFor(err)
	if statusCode >= http.StatusInternalServerError {
		slog.Error("Request failed", "path", c.FullPath(), "status", statusCode, "error", err)
	}
	c.JSON(statusCode, ErrorResponse{Error: message})
}

// getMetrics handles GET /api/metrics requests
func (s *HTTPServerAdapter) getMetrics(c *gin.Context) {
	slog.Debug("Metrics endpoint called")

	metrics, err := s.metricsCollector.GetMetrics(c.Request.Context())
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, metrics)
}
