package router // package router wires middleware and routes onto echo

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/user-dashboard/internal/config"
	"github.com/iliyamo/user-dashboard/internal/handler"
	"github.com/iliyamo/user-dashboard/internal/middleware"
)

// Body limits per route.  Routes that take no body still get a small
// allowance so a stray payload is rejected as too large, not read.
const (
	smallBody = "2K"
	largeBody = "16K"
)

// Methods the API answers; everything else is 405 before routing.
var allowedMethods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodHead,
}

// Deps is everything the routes need, built once in main.
type Deps struct {
	Users     *handler.UserHandler
	Health    *handler.HealthHandler
	Logger    *slog.Logger
	Hosts     []string               // accepted Host headers; empty accepts any
	RateLimit config.RateLimitConfig // token bucket on /users
	Redis     *redis.Client          // nil disables rate limiting
}

// New returns an echo instance with the error handler, middleware and all
// routes registered.
func New(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = handler.ErrorHandler
	RegisterRoutes(e, d)
	return e
}

// RegisterRoutes installs the global middleware chain, the health check and
// the /users API.
func RegisterRoutes(e *echo.Echo, d Deps) {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}

	e.Pre(middleware.AllowMethods(allowedMethods...)) // reject unknown verbs before routing
	e.Use(
		echomw.Recover(),                 // turn panics into 500s
		echomw.RequestID(),               // X-Request-Id on every response
		middleware.AttachContext(logger), // request-scoped slog logger
		middleware.AllowHosts(d.Hosts),   // Host header allow-list
	)

	e.GET("/healthz", d.Health.Ready)

	small, large := echomw.BodyLimit(smallBody), echomw.BodyLimit(largeBody)
	users := e.Group("/users", middleware.RateLimit(d.RateLimit, d.Redis))
	users.POST("", d.Users.Create, large)
	users.GET("", d.Users.List, small)
	users.GET("/:userId", d.Users.Get, small)
	users.PATCH("/:userId", d.Users.Update, large)
	users.DELETE("/:userId", d.Users.Delete, small)
	users.PATCH("/reactivate/:userId", d.Users.Reactivate, small)
}
