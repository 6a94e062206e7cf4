package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/telops/backend/internal/infrastructure/persistence"
	"github.com/telops/backend/internal/interfaces/http/dto"
)

// HealthHandler exposes liveness and readiness probes
type HealthHandler struct {
	db      *persistence.Database
	started time.Time
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(db *persistence.Database) *HealthHandler {
	return &HealthHandler{db: db, started: time.Now()}
}

type healthStatus struct {
	Status   string         `json:"status"`
	Uptime   string         `json:"uptime"`
	Database databaseStatus `json:"database"`
}

type databaseStatus struct {
	Reachable       bool `json:"reachable"`
	OpenConnections int  `json:"open_connections,omitempty"`
	InUse           int  `json:"in_use,omitempty"`
	Idle            int  `json:"idle,omitempty"`
}

// Check reports service health including database reachability
// GET /health
func (h *HealthHandler) Check(c *gin.Context) {
	status := healthStatus{
		Status: "ok",
		Uptime: time.Since(h.started).Round(time.Second).String(),
	}

	if err := h.db.Ping(); err != nil {
		status.Status = "degraded"
		c.JSON(http.StatusServiceUnavailable, dto.NewSuccessResponse(status))
		return
	}
	status.Database.Reachable = true

	if stats, err := h.db.Stats(); err == nil {
		status.Database.OpenConnections = stats.OpenConnections
		status.Database.InUse = stats.InUse
		status.Database.Idle = stats.Idle
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(status))
}
