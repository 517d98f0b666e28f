package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lbrrrrrr/enjoyyoga/internal/middleware"
)

var startTime = time.Now()

// StatusResponse is the status endpoint body.
type StatusResponse struct {
	Status        string `json:"status"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	Version       string `json:"version"`
}

// StatusHandler reports service liveness and uptime.
func StatusHandler(c *gin.Context) {
	logger := middleware.ContextLogger(c)
	response := StatusResponse{
		Status:        "ok",
		UptimeSeconds: int64(time.Since(startTime).Seconds()),
		Version:       "1.0.0",
	}
	logger.Debug("status endpoint checked", zap.Int64("uptime_seconds", response.UptimeSeconds))
	c.JSON(http.StatusOK, response)
}
