package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// queryInt reads an integer query parameter, returning 0 for anything that is
// absent or unparseable. Services apply their own defaults and caps on 0.
func queryInt(c echo.Context, name string) int {
	v, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return 0
	}
	return v
}
