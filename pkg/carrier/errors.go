package carrier

import (
	"errors"
	"fmt"
)

// Error represents an error from a carrier integration.
type Error struct {
	Carrier string
	Code    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s error (%s): %s: %v", e.Carrier, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s error (%s): %s", e.Carrier, e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is for Error.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewError creates a new carrier Error.
func NewError(carrier, code, message string) *Error {
	return &Error{
		Carrier: carrier,
		Code:    code,
		Message: message,
	}
}

// WithCause adds a cause to the error.
func (e *Error) WithCause(err error) *Error {
	e.Cause = err
	return e
}

// Sentinel errors for common carrier scenarios.
var (
	// ErrCarrierNotFound indicates the requested carrier is not registered.
	ErrCarrierNotFound = errors.New("carrier not found")

	// ErrInvalidConfig indicates the carrier configuration is incomplete.
	ErrInvalidConfig = errors.New("invalid carrier configuration")

	// ErrLabelNotAvailable indicates the carrier produced no label.
	ErrLabelNotAvailable = errors.New("label not available")

	// ErrManifestNotAvailable indicates the carrier offers no manifest service.
	ErrManifestNotAvailable = errors.New("manifest service not available")

	// ErrSessionClosed indicates an operation on a released carrier session.
	ErrSessionClosed = errors.New("carrier session closed")

	// ErrUnknownWeightUnit indicates a weight unit outside the conversion table.
	ErrUnknownWeightUnit = errors.New("unknown weight unit")
)
