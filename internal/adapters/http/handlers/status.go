package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/daily-quote-bot/internal/app"
)

// StatusReader exposes the poster loop's progress.
type StatusReader interface {
	Snapshot() app.Snapshot
}

// StatusHandler serves /-/status.
type StatusHandler struct {
	status StatusReader
}

// NewStatusHandler creates a status handler.
func NewStatusHandler(status StatusReader) *StatusHandler {
	return &StatusHandler{status: status}
}

// Status returns the latest snapshot as JSON.
func (h *StatusHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, h.status.Snapshot())
}

// RegisterStatusRoutes registers GET status on rg.
func (h *StatusHandler) RegisterStatusRoutes(rg *gin.RouterGroup) {
	rg.GET("/status", h.Status)
}
