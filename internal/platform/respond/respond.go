// Package respond defines the uniform response envelope and the error
// taxonomy shared by every HTTP handler. Success and error payloads both
// carry a timestamp so clients can order responses without trusting clocks
// on intermediaries.
package respond

import (
	"time"

	"github.com/labstack/echo/v4"
)

// Envelope is the uniform response shape.
type Envelope struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Message   string      `json:"message,omitempty"`
	Error     *ErrorBody  `json:"error,omitempty"`
	Timestamp string      `json:"timestamp"`
}

// ErrorBody describes a failed request.
type ErrorBody struct {
	Message string      `json:"message"`
	Code    string      `json:"code,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// OK writes a success envelope with the given status code.
func OK(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, Envelope{
		Success:   true,
		Data:      data,
		Timestamp: now(),
	})
}

// OKMessage writes a success envelope carrying a human-readable message.
func OKMessage(c echo.Context, status int, data interface{}, message string) error {
	return c.JSON(status, Envelope{
		Success:   true,
		Data:      data,
		Message:   message,
		Timestamp: now(),
	})
}

// Fail writes an error envelope with the given status code.
func Fail(c echo.Context, status int, body ErrorBody) error {
	return c.JSON(status, Envelope{
		Success:   false,
		Error:     &body,
		Timestamp: now(),
	})
}
