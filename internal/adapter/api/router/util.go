package router

import (
	"github.com/labstack/echo/v4"
)

// NoStore keeps browsers and proxies from caching view responses, which carry
// per-session state.
func NoStore() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Response().Header().Set("Cache-Control", "no-store")
			return next(c)
		}
	}
}
