package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/osa911/portfolio/internal/logging"
	"github.com/osa911/portfolio/internal/version"
)

// Database states reported by the health check
const (
	DatabaseUp       = "up"
	DatabaseDown     = "down"
	DatabaseDisabled = "disabled"
)

// Pinger checks a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Version  string `json:"version"`
}

type HealthHandler struct {
	db     Pinger
	logger *logging.Logger
}

// NewHealthHandler creates a health handler. A nil db reports the database as disabled.
func NewHealthHandler(db Pinger, logger *logging.Logger) *HealthHandler {
	return &HealthHandler{db: db, logger: logger}
}

func (h *HealthHandler) Check(c *gin.Context) {
	resp := HealthResponse{
		Status:   "ok",
		Database: DatabaseDisabled,
		Version:  version.Version,
	}

	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := h.db.Ping(ctx); err != nil {
			h.logger.Error("Health check: database ping failed: %v", err)
			resp.Status = "degraded"
			resp.Database = DatabaseDown
			c.JSON(http.StatusServiceUnavailable, resp)
			return
		}
		resp.Database = DatabaseUp
	}

	c.JSON(http.StatusOK, resp)
}
