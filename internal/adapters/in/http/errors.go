package http

import (
	"errors"
	"log/slog"
	"net/http"

	"fablab/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the body of every non-2xx response. Fields carries per-key
// messages for validation and rule failures.
type Error struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// toError maps domain errors to HTTP responses.
func toError(err error) Error {
	var (
		problems   *errs.ProblemsError
		required   *errs.ValueIsRequiredError
		invalid    *errs.ValueIsInvalidError
		outOfRange *errs.ValueIsOutOfRangeError
		status     *errs.StatusIsInvalidError
		httpErr    *echo.HTTPError
	)

	switch {
	case errors.As(err, &problems):
		return Error{Code: http.StatusBadRequest, Message: "request violates business rules", Fields: problems.Fields()}
	case errors.As(err, &required):
		return fieldError(required.ParamName, err)
	case errors.As(err, &invalid):
		return fieldError(invalid.ParamName, err)
	case errors.As(err, &outOfRange):
		return fieldError(outOfRange.ParamName, err)
	case errors.As(err, &status):
		return fieldError("status", err)
	case errors.Is(err, errs.ErrObjectNotFound):
		return Error{Code: http.StatusNotFound, Message: err.Error()}
	case errors.Is(err, errs.ErrConcurrencyConflict):
		return Error{Code: http.StatusConflict, Message: err.Error()}
	case errors.Is(err, errs.ErrAccessDenied):
		return Error{Code: http.StatusForbidden, Message: err.Error()}
	case errors.As(err, &httpErr):
		msg, ok := httpErr.Message.(string)
		if !ok {
			msg = http.StatusText(httpErr.Code)
		}
		return Error{Code: httpErr.Code, Message: msg}
	default:
		return Error{Code: http.StatusInternalServerError, Message: http.StatusText(http.StatusInternalServerError)}
	}
}

func fieldError(key string, err error) Error {
	return Error{
		Code:    http.StatusBadRequest,
		Message: err.Error(),
		Fields:  map[string]string{key: err.Error()},
	}
}

// NewErrorHandler renders errors returned by handlers and middleware.
func NewErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	logger = logger.With("component", "http")
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		body := toError(err)
		if body.Code >= http.StatusInternalServerError {
			logger.ErrorContext(c.Request().Context(), "request failed",
				"method", c.Request().Method,
				"path", c.Path(),
				"error", err,
			)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(body.Code)
		} else {
			writeErr = c.JSON(body.Code, body)
		}
		if writeErr != nil {
			logger.WarnContext(c.Request().Context(), "failed to write error response", "error", writeErr)
		}
	}
}
