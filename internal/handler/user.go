package handler // handler package exposes the user API over echo

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/user-dashboard/internal/model"
	"github.com/iliyamo/user-dashboard/internal/validation"
)

// UserService is what the handlers need from the service layer.
// *service.UserService implements it.
type UserService interface {
	CreateOne(ctx context.Context, in validation.Input) (model.User, error)
	ReadOne(ctx context.Context, in validation.Input) (model.User, error)
	ReadMany(ctx context.Context, in validation.Input) ([]model.User, error)
	UpdateOne(ctx context.Context, in validation.Input) (model.User, error)
	DeleteOne(ctx context.Context, in validation.Input) (string, error)
	ReactivateOne(ctx context.Context, in validation.Input) (model.User, error)
}

// DefaultTimeout bounds every service call made by a handler.
const DefaultTimeout = 5 * time.Second

// UserHandler adapts echo requests to UserService calls.  Handlers do no
// validation of their own: route params, query and raw body are handed to
// the service untouched, and any error is left to ErrorHandler.
type UserHandler struct {
	Users   UserService
	Timeout time.Duration
}

// NewUserHandler returns a UserHandler using DefaultTimeout.
func NewUserHandler(users UserService) *UserHandler {
	return &UserHandler{Users: users, Timeout: DefaultTimeout}
}

// Create handles POST /users.
func (h *UserHandler) Create(c echo.Context) error {
	in, err := input(c) // read params, query and body
	if err != nil {
		return err
	}
	ctx, cancel := h.ctx(c)
	defer cancel()

	u, err := h.Users.CreateOne(ctx, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, u) // 201 with the stored user
}

// Get handles GET /users/:userId.
func (h *UserHandler) Get(c echo.Context) error {
	in, err := input(c)
	if err != nil {
		return err
	}
	ctx, cancel := h.ctx(c)
	defer cancel()

	u, err := h.Users.ReadOne(ctx, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}

// List handles GET /users?archive=true|false.
func (h *UserHandler) List(c echo.Context) error {
	in, err := input(c)
	if err != nil {
		return err
	}
	ctx, cancel := h.ctx(c)
	defer cancel()

	users, err := h.Users.ReadMany(ctx, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Update handles PATCH /users/:userId.
func (h *UserHandler) Update(c echo.Context) error {
	in, err := input(c)
	if err != nil {
		return err
	}
	ctx, cancel := h.ctx(c)
	defer cancel()

	u, err := h.Users.UpdateOne(ctx, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}

// Delete handles DELETE /users/:userId.  The body is the affected id as a
// JSON string, "" when there was nothing to delete.
func (h *UserHandler) Delete(c echo.Context) error {
	in, err := input(c)
	if err != nil {
		return err
	}
	ctx, cancel := h.ctx(c)
	defer cancel()

	id, err := h.Users.DeleteOne(ctx, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, id)
}

// Reactivate handles PATCH /users/reactivate/:userId.
func (h *UserHandler) Reactivate(c echo.Context) error {
	in, err := input(c)
	if err != nil {
		return err
	}
	ctx, cancel := h.ctx(c)
	defer cancel()

	u, err := h.Users.ReactivateOne(ctx, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}

func (h *UserHandler) ctx(c echo.Context) (context.Context, context.CancelFunc) {
	d := h.Timeout
	if d <= 0 {
		d = DefaultTimeout
	}
	return context.WithTimeout(c.Request().Context(), d)
}

// input collects the three request sections.  A body over the route's
// BodyLimit surfaces here as echo's 413 error.
func input(c echo.Context) (validation.Input, error) {
	names, values := c.ParamNames(), c.ParamValues()
	params := make(map[string]string, len(names))
	for i, name := range names {
		if i < len(values) {
			params[name] = values[i]
		}
	}

	var body []byte
	if r := c.Request().Body; r != nil {
		b, err := io.ReadAll(r)
		if err != nil {
			return validation.Input{}, err
		}
		body = b
	}
	return validation.Input{Params: params, Query: c.QueryParams(), Body: body}, nil
}
