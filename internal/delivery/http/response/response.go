// Package response writes the JSON envelopes shared by every endpoint.
package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// SuccessResponse defines the structure for successful responses
type SuccessResponse struct {
	Status  string `json:"status"`
	Results *int   `json:"results,omitempty"` // Set for list responses only
	Data    any    `json:"data"`
}

// ErrorResponse defines the structure for error responses
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`           // User-friendly error message
	Code    string `json:"code,omitempty"`    // Machine-readable error code, e.g., "VALIDATION_FAILED"
	Details string `json:"details,omitempty"` // Additional error context (only for 4xx errors)
}

// Success returns a successful response
func Success(c echo.Context, statusCode int, data any) error {
	return c.JSON(statusCode, SuccessResponse{
		Status: statusSuccess,
		Data:   data,
	})
}

// List returns a collection under data[key] with its size in results.
func List[T any](c echo.Context, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	results := len(items)

	return c.JSON(http.StatusOK, SuccessResponse{
		Status:  statusSuccess,
		Results: &results,
		Data:    map[string]any{key: items},
	})
}

// Error returns an error response
func Error(c echo.Context, statusCode int, errorCode string, message string, details string) error {
	// Details should not be included for 5xx errors or authentication/authorization errors
	if statusCode >= http.StatusInternalServerError || statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden {
		details = ""
	}
	if message == "" {
		message = http.StatusText(statusCode)
	}

	return c.JSON(statusCode, ErrorResponse{
		Status:  statusError,
		Message: message,
		Code:    errorCode,
		Details: details,
	})
}

// InternalServerError returns a 500 error
func InternalServerError(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusInternalServerError, errorCode, message, "")
}
