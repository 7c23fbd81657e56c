package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// HealthHandler reports database connectivity and the known tables.
type HealthHandler struct {
	db *gorm.DB
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Check godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} errors.Envelope
// @Failure 500 {object} errors.Envelope
// @Router /healthz [get]
func (h *HealthHandler) Check(c echo.Context) error {
	sqlDB, err := h.db.DB()
	if err != nil {
		return respondError(c, http.StatusInternalServerError, "database unavailable")
	}
	if err := sqlDB.PingContext(c.Request().Context()); err != nil {
		return respondError(c, http.StatusInternalServerError, "database ping failed")
	}

	tables, err := h.db.Migrator().GetTables()
	if err != nil {
		return respondError(c, http.StatusInternalServerError, "failed to list tables")
	}

	return respondOK(c, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"tables": tables,
	}, "")
}
