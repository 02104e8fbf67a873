package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a client-side failure with a structured error code.
// Codes have the form WW-<AREA>-<NNNN>.
type DomainError struct {
	Code    string // Error code (e.g., "WW-ARG-1001")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is() support for error comparison.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new DomainError with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *DomainError) WithDetails(details string) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// Wrap wraps an error with this domain error as the cause.
func (e *DomainError) Wrap(cause error) *DomainError {
	return e.WithCause(cause)
}

// IsDomainError checks if an error is a DomainError with the given code.
// If code is empty, it only checks if the error is a DomainError.
func IsDomainError(err error, code string) bool {
	var de *DomainError
	if errors.As(err, &de) {
		if code == "" {
			return true
		}
		return de.Code == code
	}
	return false
}

// GetErrorCode extracts the error code from an error if it's a DomainError.
func GetErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// Argument errors (ARG).
var (
	// ErrInvalidArgument indicates a payload or flag failed validation.
	ErrInvalidArgument = NewDomainError("WW-ARG-1001", "invalid argument")

	// ErrMissingArgument indicates a required argument is missing.
	ErrMissingArgument = NewDomainError("WW-ARG-1002", "missing required argument")
)

// Session errors (AUTH).
var (
	// ErrNotLoggedIn indicates an admin command ran without a held token.
	ErrNotLoggedIn = NewDomainError("WW-AUTH-4010", "not logged in")

	// ErrLoginFailed indicates the backend rejected the credentials or the
	// login request could not complete.
	ErrLoginFailed = NewDomainError("WW-AUTH-4011", "invalid or failed login")
)

// Local storage errors (STOR).
var (
	// ErrSessionStorage indicates the durable session storage is unusable.
	ErrSessionStorage = NewDomainError("WW-STOR-5001", "session storage error")

	// ErrCorruptRecord indicates a persisted record could not be decoded.
	ErrCorruptRecord = NewDomainError("WW-STOR-5002", "corrupt persisted record")
)
