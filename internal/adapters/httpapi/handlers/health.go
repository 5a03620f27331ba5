package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	dbConnected    = "connected"
	dbDisconnected = "disconnected"
)

type HealthResponse struct {
	OK       bool   `json:"ok" example:"true"`
	Version  string `json:"version" example:"1.0"`
	Uptime   int64  `json:"uptime" example:"42"`
	Database string `json:"database" example:"connected"`
}

func (h *Handler) Ping(c *gin.Context) {
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte("pong"))
}

// Health reports uptime in whole seconds and whether the store answers.
func (h *Handler) Health(c *gin.Context) {
	resp := HealthResponse{
		OK:       true,
		Version:  h.version,
		Uptime:   int64(h.now().Sub(h.startedAt).Seconds()),
		Database: dbConnected,
	}

	status := http.StatusOK
	if err := h.svc.Ping(c.Request.Context()); err != nil {
		_ = c.Error(err)

		resp.OK = false
		resp.Database = dbDisconnected
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, resp)
}
