package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"asokatrip/utils"
)

// HealthHandler reports the latest dependency health snapshot.
type HealthHandler struct {
	Monitor *utils.HealthMonitor
}

// StatusHandler answers 200 while every dependency is reachable and 503 otherwise.
func (h *HealthHandler) StatusHandler(c *gin.Context) {
	status := h.Monitor.Status()
	if !status.Healthy() {
		c.JSON(http.StatusServiceUnavailable, status)
		return
	}
	c.JSON(http.StatusOK, status)
}
