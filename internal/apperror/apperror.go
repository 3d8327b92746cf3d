// Package apperror defines the domain error taxonomy shared by every layer.
//
// Services return these typed errors; the HTTP layer maps them to status
// codes with errors.Is. Nothing below the handler knows about HTTP.
package apperror

import (
	"errors"
	"fmt"
)

// Sentinel errors. Each represents a distinct failure class a caller can
// branch on with errors.Is(err, apperror.ErrXxx).
var (
	ErrNotFound            = errors.New("not found")
	ErrValidation          = errors.New("validation error")
	ErrConflict            = errors.New("conflict")
	ErrForbidden           = errors.New("forbidden")
	ErrUnauthenticated     = errors.New("authentication required")
	ErrWebhookVerification = errors.New("webhook verification failed")
)

// AppError carries a sentinel plus a human-readable message.
//
// Unwrap() exposes the sentinel so errors.Is works through any number of
// fmt.Errorf("%w") wrappers the service layer adds on the way up.
type AppError struct {
	Err     error  // actual error
	Message string // Human-readable error message
	Field   string // Optional: field causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %s", resource, id),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

func Conflict(resource, id string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: fmt.Sprintf("%s conflict with id %s", resource, id),
	}
}

// Forbidden returns an AppError indicating the caller lacks permission.
// HTTP handlers map this to 403 Forbidden.
func Forbidden(message string) *AppError {
	return &AppError{
		Err:     ErrForbidden,
		Message: message,
	}
}

// Unauthenticated returns an AppError indicating no identity is attached to
// the request. The guard raises this before any read or write happens, so a
// mutation that fails here has touched nothing.
// HTTP handlers map this to 401 Unauthorized.
func Unauthenticated(message string) *AppError {
	return &AppError{
		Err:     ErrUnauthenticated,
		Message: message,
	}
}

// WebhookVerification returns an AppError for an inbound webhook delivery
// that failed header or signature checks. The caller must not dispatch the
// payload. HTTP handlers map this to 400 Bad Request.
func WebhookVerification(message string) *AppError {
	return &AppError{
		Err:     ErrWebhookVerification,
		Message: message,
	}
}
