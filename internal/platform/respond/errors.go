package respond

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Error kinds. Validation failures are reported with every violated rule;
// storage failures never leak driver detail to clients.
const (
	CodeValidation = "VALIDATION_ERROR"
	CodeNotFound   = "NOT_FOUND"
	CodeStorage    = "STORAGE_ERROR"
	CodeUnknown    = "UNKNOWN_ERROR"
)

// ValidationError carries the full list of violated rules.
type ValidationError struct {
	Message string
	Details []string
}

func (e *ValidationError) Error() string { return e.Message }

// NewValidationError builds a ValidationError from individual rule violations.
func NewValidationError(message string, details ...string) *ValidationError {
	return &ValidationError{Message: message, Details: details}
}

// NotFoundError signals that no record matches the requested identifier.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{Message: message}
}

// StorageError wraps a failed database operation. Internal holds the driver
// error for server-side logging only.
type StorageError struct {
	Message  string
	Internal error
}

func (e *StorageError) Error() string { return e.Message }
func (e *StorageError) Unwrap() error { return e.Internal }

func NewStorageError(message string, internal error) *StorageError {
	return &StorageError{Message: message, Internal: internal}
}

// HTTPErrorHandler returns an echo error handler that renders every error as
// the envelope. In development mode internal detail is included in the body;
// otherwise it is only logged.
func HTTPErrorHandler(logger zerolog.Logger, dev bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var (
			status = http.StatusInternalServerError
			body   = ErrorBody{Message: "internal server error", Code: CodeUnknown}
		)

		var ve *ValidationError
		var nfe *NotFoundError
		var se *StorageError
		var he *echo.HTTPError

		switch {
		case errors.As(err, &ve):
			status = http.StatusBadRequest
			body = ErrorBody{Message: ve.Message, Code: CodeValidation, Details: ve.Details}
		case errors.As(err, &nfe):
			status = http.StatusNotFound
			body = ErrorBody{Message: nfe.Message, Code: CodeNotFound}
		case errors.As(err, &se):
			status = http.StatusInternalServerError
			body = ErrorBody{Message: se.Message, Code: CodeStorage}
			logger.Error().Err(se.Internal).Str("path", c.Path()).Msg("storage error")
			if dev && se.Internal != nil {
				body.Details = se.Internal.Error()
			}
		case errors.As(err, &he):
			status = he.Code
			if msg, ok := he.Message.(string); ok {
				body = ErrorBody{Message: msg, Code: CodeUnknown}
			}
			if status == http.StatusBadRequest {
				body.Code = CodeValidation
			}
			if status == http.StatusNotFound {
				body.Code = CodeNotFound
			}
		default:
			logger.Error().Err(err).Str("path", c.Path()).Msg("unhandled error")
			if dev {
				body.Details = err.Error()
			}
		}

		if werr := Fail(c, status, body); werr != nil {
			logger.Error().Err(werr).Msg("write error response")
		}
	}
}
