package species

import (
	"context"
	"errors"
	"fmt"
)

// Error codes carried by APIError.
const (
	ErrCodeConnection = "connection_error"
	ErrCodeUnknown    = "unknown_error"
)

var (
	// ErrMalformedResponse is returned when a read response cannot be
	// interpreted as a species collection.
	ErrMalformedResponse = errors.New("malformed species response")

	// ErrInvalidID is returned for identifiers that are not positive integers.
	ErrInvalidID = errors.New("species id must be a positive integer")
)

// APIError represents a failed call to the species API.
// StatusCode is zero when no response was received.
type APIError struct {
	StatusCode int
	ErrorCode  string
	Message    string
	RequestID  string

	// Err is the transport failure behind a connection error.
	Err error
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// IsConnectionError reports whether err is a transport failure, as opposed to
// a non-success response from the backend. A cancelled or expired context
// counts as a transport failure.
func IsConnectionError(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode == ErrCodeConnection
	}
	return false
}

// StatusCode returns the HTTP status carried by err, or zero.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

func connectionError(baseURL, requestID string, err error) error {
	return &APIError{
		ErrorCode: ErrCodeConnection,
		Message:   fmt.Sprintf("cannot connect to species API at %s: %v", baseURL, err),
		RequestID: requestID,
		Err:       err,
	}
}
