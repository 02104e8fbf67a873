package apiclient

import (
	"errors"
	"fmt"
)

// msgRequestFailed is reported when no HTTP status was received.
const msgRequestFailed = "Request failed"

// RequestError is the single error type for failed API calls. Network
// failures have Status 0 and carry the transport error as Cause.
type RequestError struct {
	Status    int
	Message   string
	Method    string
	Endpoint  string
	RequestID string
	Cause     error
}

// Error returns the human-readable message.
func (e *RequestError) Error() string {
	return e.Message
}

// Unwrap returns the underlying transport or decode error.
func (e *RequestError) Unwrap() error {
	return e.Cause
}

// Detail describes the failed call for logs and verbose output.
func (e *RequestError) Detail() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s %s: %s: %v", e.Method, e.Endpoint, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s %s: HTTP %d: %s", e.Method, e.Endpoint, e.Status, e.Message)
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var re *RequestError
	if errors.As(err, &re) {
		return re.Status
	}
	return 0
}

// IsUnauthorized reports whether the server rejected the credentials.
func IsUnauthorized(err error) bool {
	return StatusOf(err) == 401
}
