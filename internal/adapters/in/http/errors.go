package http

import (
	"errors"
	"net/http"

	"tms/internal/core/domain/model/transportorder"
	"tms/internal/core/domain/services"
	"tms/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// statusOf maps application errors to HTTP status codes. The checks run from
// the most specific condition to the least specific one because a joined error
// may match several of them.
func statusOf(err error) int {
	var validationErrs validator.ValidationErrors
	switch {
	case errors.Is(err, errs.ErrVersionIsInvalid):
		return http.StatusPreconditionFailed
	case errors.Is(err, errs.ErrObjectNotFound), errors.Is(err, services.ErrNoStartableOrder):
		return http.StatusNotFound
	case errors.Is(err, transportorder.ErrInvalidState), errors.Is(err, services.ErrTransportUnitIsBusy):
		return http.StatusConflict
	case errors.Is(err, transportorder.ErrIncompleteOrder):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.As(err, &validationErrs):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// NewErrorHandler renders every error as an Error body. Internal errors are
// logged and their details hidden from the client.
func NewErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := statusOf(err)
		message := err.Error()

		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			if m, ok := he.Message.(string); ok {
				message = m
			} else {
				message = http.StatusText(code)
			}
		}

		if code >= http.StatusInternalServerError {
			logger.Error("request failed",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Path()),
				zap.Error(err),
			)
			message = http.StatusText(code)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(code)
		} else {
			writeErr = c.JSON(code, Error{Code: code, Message: message})
		}
		if writeErr != nil {
			logger.Warn("failed to write error response", zap.Error(writeErr))
		}
	}
}

// RequestValidator implements echo.Validator with go-playground/validator.
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator enables required checks on nested structs.
func NewRequestValidator() *RequestValidator {
	return &RequestValidator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

// Validate implements echo.Validator.
func (v *RequestValidator) Validate(i any) error {
	return v.validate.Struct(i)
}
