package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"bikefine/internal/service"
)

// StatsHandler serves the multiplexed statistics endpoint.
type StatsHandler struct {
	statsService service.StatsService
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(statsService service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// Get godoc
// @Summary Entity statistics
// @Tags admin
// @Produce json
// @Param type query string false "users|cases|queries|all" default(all)
// @Success 200 {object} errors.Envelope
// @Failure 400 {object} errors.Envelope
// @Router /admin/stats [get]
func (h *StatsHandler) Get(c echo.Context) error {
	kind := c.QueryParam("type")
	if kind == "" {
		kind = "all"
	}
	switch kind {
	case "users", "cases", "queries", "all":
	default:
		return respondError(c, http.StatusBadRequest, "type must be one of users, cases, queries, all")
	}

	summary, err := h.statsService.Get(c.Request().Context(), kind)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respondOK(c, http.StatusOK, summary, "")
}
