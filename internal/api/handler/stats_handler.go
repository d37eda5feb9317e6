package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fieldserve/jobs-system/internal/core/ports"
)

type StatsHandler struct {
	statsService ports.StatsService
}

func NewStatsHandler(statsService ports.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// Overview returns the admin dashboard aggregate. ADMIN only.
//
// @Summary      Dashboard overview
// @Tags         stats
// @Security     BearerAuth
// @Router       /api/stats/overview [get]
func (h *StatsHandler) Overview(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	overview, err := h.statsService.Overview(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, overview)
}

// JobsByUser returns the per-assignee workload report. ADMIN only.
//
// @Summary      Jobs per assignee
// @Tags         stats
// @Security     BearerAuth
// @Router       /api/stats/jobs-by-user [get]
func (h *StatsHandler) JobsByUser(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	report, err := h.statsService.JobsByUser(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, report)
}
