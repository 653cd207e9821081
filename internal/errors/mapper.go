// internal/errors/mapper.go
package errors

import (
	"context"
	"errors"
	"net/http"

	"gorm.io/gorm"
)

// Map converts repo/infra errors into API errors.
// Keeps service layer clean by centralizing error mapping.
func Map(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return &Error{Status: http.StatusNotFound, Message: "record not found"}

	case errors.Is(err, gorm.ErrDuplicatedKey):
		return &Error{Status: http.StatusBadRequest, Message: "record already exists"}

	case errors.Is(err, context.DeadlineExceeded):
		return &Error{Status: http.StatusGatewayTimeout, Message: "request timed out"}

	case errors.Is(err, context.Canceled):
		return &Error{Status: http.StatusBadRequest, Message: "request was canceled"}

	default:
		// Unexpected infrastructure failure: generic 500, detail stays in logs.
		return &Error{Status: http.StatusInternalServerError, Message: "internal server error"}
	}
}

// Status extracts the HTTP status for err, mapping it first if needed.
func Status(err error) int {
	var apiErr *Error
	if errors.As(Map(err), &apiErr) {
		return apiErr.Status
	}
	return http.StatusInternalServerError
}
