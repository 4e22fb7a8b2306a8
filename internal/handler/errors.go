package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/user-dashboard/internal/apperr"
	"github.com/iliyamo/user-dashboard/internal/logging"
)

// ErrorHandler is installed as echo's HTTPErrorHandler.  It writes every
// error as {"error": message}:
//   - *apperr.Error: its kind's status and message
//   - echo 413: PayloadTooLarge
//   - other echo 4xx: passed through with echo's message
//   - anything else: 500 with the generic message, cause logged
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	status, msg := classify(err)
	if status >= http.StatusInternalServerError {
		logging.FromContext(c.Request().Context()).Error("request failed", "status", status, "err", err)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, echo.Map{"error": msg})
	}
	if err != nil {
		logging.FromContext(c.Request().Context()).Error("write error response", "err", err)
	}
}

func classify(err error) (int, string) {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return ae.Kind.Status(), ae.Message
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Code == http.StatusRequestEntityTooLarge {
			tooLarge := apperr.PayloadTooLarge("request body is too large")
			return tooLarge.Kind.Status(), tooLarge.Message
		}
		if he.Code >= http.StatusBadRequest && he.Code < http.StatusInternalServerError {
			return he.Code, fmt.Sprint(he.Message)
		}
	}
	return http.StatusInternalServerError, apperr.UnexpectedMessage
}
