package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"weathernow.app/internal/ports"
)

// HealthResponse reports the aggregated component health
type HealthResponse struct {
	Status     string      `json:"status"`
	Components interface{} `json:"components"`
}

// getHealth handles GET /health requests
func (s *HTTPServerAdapter) getHealth(c *gin.Context) {
	results := s.healthChecker.CheckAll(c.Request.Context())

	if ok, _ := ports.Healthy(results); !ok {
		c.JSON(http.StatusServiceUnavailable, HealthResponse{Status: "unhealthy", Components: results})
		return
	}
	c.JSON(http.StatusOK, HealthResponse{Status: "healthy", Components: results})
}
