package errors

import (
	"fmt"
	"net/http"

	"github.com/cockroachdb/errors"
)

// Common error types that can be used across the application
var (
	ErrNotFound         = new(ErrCodeNotFound, "resource not found")
	ErrAlreadyExists    = new(ErrCodeAlreadyExists, "resource already exists")
	ErrValidation       = new(ErrCodeValidation, "validation error")
	ErrInvalidAmount    = new(ErrCodeInvalidAmount, "invalid payment amount")
	ErrMissingReference = new(ErrCodeMissingReference, "referenced record missing")
	ErrStoreUnavailable = new(ErrCodeStoreUnavailable, "store unavailable")
	ErrSchema           = new(ErrCodeSchema, "schema migration error")
	ErrShareCancelled   = new(ErrCodeShareCancelled, "share cancelled")
	ErrDatabase         = new(ErrCodeDatabase, "database error")
	ErrSystem           = new(ErrCodeSystemError, "system error")
	// maps errors to http status codes
	statusCodeMap = map[error]int{
		ErrNotFound:         http.StatusNotFound,
		ErrAlreadyExists:    http.StatusConflict,
		ErrValidation:       http.StatusBadRequest,
		ErrInvalidAmount:    http.StatusBadRequest,
		ErrMissingReference: http.StatusPreconditionFailed,
		ErrStoreUnavailable: http.StatusServiceUnavailable,
		ErrSchema:           http.StatusServiceUnavailable,
		// a dismissed share dialog is not a failure, there is just nothing to return
		ErrShareCancelled: http.StatusNoContent,
		ErrDatabase:       http.StatusInternalServerError,
		ErrSystem:         http.StatusInternalServerError,
	}
)

const (
	ErrCodeNotFound         = "not_found"
	ErrCodeAlreadyExists    = "already_exists"
	ErrCodeValidation       = "validation_error"
	ErrCodeInvalidAmount    = "invalid_amount"
	ErrCodeMissingReference = "missing_reference"
	ErrCodeStoreUnavailable = "store_unavailable"
	ErrCodeSchema           = "schema_error"
	ErrCodeShareCancelled   = "share_cancelled"
	ErrCodeDatabase         = "database_error"
	ErrCodeSystemError      = "system_error"
)

// InternalError represents a domain error
type InternalError struct {
	Code    string // Machine-readable error code
	Message string // Human-readable error message
	Op      string // Logical operation name
	Err     error  // Underlying error
}

func (e *InternalError) Error() string {
	if e.Err == nil {
		return e.DisplayError()
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Err.Error())
}

func (e *InternalError) DisplayError() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

// Is implements error matching for wrapped errors
func (e *InternalError) Is(target error) bool {
	if target == nil {
		return false
	}

	t, ok := target.(*InternalError)
	if !ok {
		return errors.Is(e.Err, target)
	}

	return e.Code == t.Code
}

// new creates a new InternalError
func new(code string, message string) *InternalError {
	return &InternalError{
		Code:    code,
		Message: message,
	}
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsInvalidAmount checks if an error is an invalid payment amount error
func IsInvalidAmount(err error) bool {
	return errors.Is(err, ErrInvalidAmount)
}

// IsMissingReference checks if an error is a missing reference error
func IsMissingReference(err error) bool {
	return errors.Is(err, ErrMissingReference)
}

// IsStoreUnavailable checks if an error is a store unavailable error
func IsStoreUnavailable(err error) bool {
	return errors.Is(err, ErrStoreUnavailable)
}

// IsSchema checks if an error is a schema migration error
func IsSchema(err error) bool {
	return errors.Is(err, ErrSchema)
}

// IsShareCancelled checks if an error is a dismissed share dialog
func IsShareCancelled(err error) bool {
	return errors.Is(err, ErrShareCancelled)
}

func HTTPStatusFromErr(err error) int {
	for e, status := range statusCodeMap {
		if errors.Is(err, e) {
			return status
		}
	}
	return http.StatusInternalServerError
}
