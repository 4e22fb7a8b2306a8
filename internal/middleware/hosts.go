package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// AllowHosts rejects requests whose Host header (port ignored) is not in
// hosts with 403.  An empty list accepts every host.
func AllowHosts(hosts []string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(hosts))
	for _, h := range hosts {
		allowed[strings.ToLower(h)] = struct{}{}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if len(allowed) == 0 {
			return next
		}
		return func(c echo.Context) error {
			if _, ok := allowed[hostOnly(c.Request().Host)]; !ok {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "host not allowed"})
			}
			return next(c)
		}
	}
}

func hostOnly(hostport string) string {
	if h, _, err := net.SplitHostPort(hostport); err == nil {
		hostport = h
	}
	return strings.ToLower(strings.Trim(hostport, "[]"))
}
