package middleware

import (
	"github.com/labstack/echo/v4"
)

// NoStore keeps browsers and proxies from caching dashboard pages. Every
// render is a snapshot of state that changes on each poll.
func NoStore() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Response().Header().Set(echo.HeaderCacheControl, "no-store")
			return next(c)
		}
	}
}
