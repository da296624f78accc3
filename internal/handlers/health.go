package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/wardline/roster-api/internal/errors"
	"gorm.io/gorm"
)

// HealthHandler reports process and database health.
type HealthHandler struct {
	db *gorm.DB
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health is the basic process check.
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// Liveness reports whether the process is running.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}

// Readiness reports whether the database connection is usable.
func (h *HealthHandler) Readiness(c *gin.Context) {
	sqlDB, err := h.db.DB()
	if err != nil {
		apierrors.ServiceUnavailable(c, "database not ready")
		return
	}
	if err := sqlDB.PingContext(c.Request.Context()); err != nil {
		apierrors.ServiceUnavailable(c, "database not ready")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}
