package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// AllowMethods answers 405 with an Allow header for any method outside
// methods.  It runs before routing so unknown methods never reach a route.
func AllowMethods(methods ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(methods))
	for _, m := range methods {
		allowed[strings.ToUpper(m)] = struct{}{}
	}
	allow := strings.Join(methods, ", ")
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := allowed[c.Request().Method]; !ok {
				c.Response().Header().Set(echo.HeaderAllow, allow)
				return c.JSON(http.StatusMethodNotAllowed, echo.Map{"error": "method not allowed"})
			}
			return next(c)
		}
	}
}
