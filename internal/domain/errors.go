// Package domain holds the persistent records and the error taxonomy shared
// by the services and the HTTP layer.
package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions. Handlers translate these to
// response codes at the boundary.
var (
	// ErrDeviceNotFound indicates no appliance is registered under the id
	ErrDeviceNotFound = errors.New("device not found")

	// ErrUserNotFound indicates the referenced user does not exist
	ErrUserNotFound = errors.New("user not found")

	// ErrDuplicateDevice indicates the chosen appliance id is already taken
	ErrDuplicateDevice = errors.New("device id must be unique")

	// ErrDuplicateUser indicates the username is already taken
	ErrDuplicateUser = errors.New("user already exists")

	// ErrInvalidCredentials indicates a failed username/password check
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAccessDenied indicates the requester's role or ownership does not
	// permit the operation
	ErrAccessDenied = errors.New("access denied")
)

// ValidationError represents a malformed or missing input field.
type ValidationError struct {
	Field  string // Field that failed validation
	Reason string // Why validation failed
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: field %q: %s", e.Field, e.Reason)
}

// NewValidationError creates a new validation error.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidationError checks if an error is a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
