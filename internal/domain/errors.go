// Package domain defines the core record types and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a record fails validation.
	// It is usually wrapped by a *ValidationError carrying field diagnostics.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidFormat is returned when input is not in the expected format,
	// for example a JSON value of the wrong type.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrInvalidID is returned when a record ID is missing, malformed or out of range.
	ErrInvalidID = errors.New("invalid ID")
)
