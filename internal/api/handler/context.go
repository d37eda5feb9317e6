package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fieldserve/jobs-system/internal/api/middleware"
	"github.com/fieldserve/jobs-system/internal/core/domain"
)

// ctxActor extracts the actor injected by the Auth middleware and performs a
// fast-fail check before any service call: a non-empty id proves the
// middleware ran and resolved a live account.
func ctxActor(c echo.Context) (domain.Actor, error) {
	actor, _ := c.Get(middleware.ActorKey).(domain.Actor)
	if actor.ID == "" {
		return domain.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return actor, nil
}
