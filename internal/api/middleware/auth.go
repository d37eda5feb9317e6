package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/fieldserve/jobs-system/internal/core/domain"
	"github.com/fieldserve/jobs-system/internal/core/ports"
)

// ActorKey is the echo context key under which Auth stores the domain.Actor.
const ActorKey = "actor"

// Auth validates the bearer token and resolves the acting identity.
//
// The token carries only the subject id; the role is looked up from the user
// store on every request so a role change takes effect immediately, without
// waiting for outstanding tokens to expire. A subject that no longer exists
// is rejected with 401 even when the signature still verifies.
func Auth(tokens ports.TokenService, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			subjectID, err := tokens.Validate(parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			user, err := users.FindByID(c.Request().Context(), subjectID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "unknown token subject")
			}

			c.Set(ActorKey, domain.Actor{ID: user.ID, Role: user.Role})

			return next(c)
		}
	}
}
