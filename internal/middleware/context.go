package middleware

import (
	"log/slog"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/user-dashboard/internal/logging"
)

// AttachContext stores a request-scoped logger in the request context.  It
// must run after echo's RequestID middleware so the id is already set on the
// response.
func AttachContext(base *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			l := base.With(
				"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
				"method", req.Method,
				"path", req.URL.Path,
			)
			c.SetRequest(req.WithContext(logging.WithContext(req.Context(), l)))
			return next(c)
		}
	}
}
