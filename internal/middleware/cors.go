package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const (
	allowedMethods = "GET, POST, PUT, DELETE, PATCH, OPTIONS"
	allowedHeaders = "Origin, X-Requested-With, Content-Type, Accept, Authorization"
)

// Cors sets permissive CORS headers on every response and answers
// preflight OPTIONS requests directly with 200
func Cors() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()
			h.Set(echo.HeaderAccessControlAllowOrigin, "*")
			h.Set(echo.HeaderAccessControlAllowMethods, allowedMethods)
			h.Set(echo.HeaderAccessControlAllowHeaders, allowedHeaders)

			if c.Request().Method == http.MethodOptions {
				return c.NoContent(http.StatusOK)
			}
			return next(c)
		}
	}
}
