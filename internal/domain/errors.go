// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain value fails validation.
	// This is usually wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrEmptyTitle is returned when a from-title request carries no title.
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrEmptyImageURL is returned when a from-image request carries no image URL.
	ErrEmptyImageURL = errors.New("image URL cannot be empty")

	// ErrInvalidProductStatus is returned when a status is not one of the known values.
	ErrInvalidProductStatus = errors.New("invalid product status")
)

// ValidationError names the field that failed validation.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError creates a ValidationError wrapping the given cause.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{Field: field, Message: message, Err: err}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Field + " " + e.Message
}

// Unwrap exposes the underlying cause so errors.Is works on the sentinel.
func (e *ValidationError) Unwrap() error {
	return e.Err
}
