package apperror

import (
	"errors"
	"net/http"
)

// Kind classifies an error so callers can react to the rule that failed
// without parsing messages.
type Kind string

const (
	KindConstraintViolation Kind = "constraint_violation"
	KindNotFound            Kind = "not_found"
	KindUnauthorized        Kind = "unauthorized"
	KindNoChange            Kind = "no_change"
	KindUnknownUser         Kind = "unknown_user"
	KindUnknownResource     Kind = "unknown_resource"
	KindResourceUnavailable Kind = "resource_unavailable"
	KindOutOfWindow         Kind = "out_of_window"
	KindSlotTaken           Kind = "slot_taken"
	KindInvalidInput        Kind = "invalid_input"
	KindInfrastructure      Kind = "infrastructure"
)

// AppError is a custom error type that includes an HTTP status code and the error kind.
type AppError struct {
	Code    int    // HTTP Status Code (e.g., 400, 404)
	Kind    Kind   // Business rule (or infrastructure) that produced the error
	Message string // User-facing error message
	Err     error  // The underlying error, if any (not exposed to user)
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError with a status code, kind and message.
func New(code int, kind Kind, message string) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kind,
		Message: message,
	}
}

// Wrap creates a new AppError wrapping an existing error.
func Wrap(err error, code int, kind Kind, message string) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// Infrastructure marks err as a store or runtime failure.
// Errors that already carry a kind are returned unchanged.
func Infrastructure(err error) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return err
	}
	return Wrap(err, http.StatusInternalServerError, KindInfrastructure, "internal server error")
}

// KindOf reports the kind of err. Errors that are not AppErrors are
// infrastructure failures; nil has no kind.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInfrastructure
}

// IsKind reports whether err is classified as kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
