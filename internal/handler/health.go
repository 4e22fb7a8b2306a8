package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/user-dashboard/internal/logging"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves the readiness check used by load balancers.
type HealthHandler struct {
	DB Pinger
}

// Ready handles GET /healthz: 204 when the database answers, 503 otherwise.
func (h *HealthHandler) Ready(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	if err := h.DB.Ping(ctx); err != nil {
		logging.FromContext(ctx).Warn("health: database ping failed", "err", err)
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "database unavailable"})
	}
	return c.NoContent(http.StatusNoContent)
}
