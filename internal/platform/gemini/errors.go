package gemini

import "errors"

// Error definitions for the gemini package.
var (
	// ErrEmptyAPIKey is returned when the backend is created without credentials.
	ErrEmptyAPIKey = errors.New("gemini API key cannot be empty")

	// ErrEmptyModel is returned when no model name is configured.
	ErrEmptyModel = errors.New("gemini model name cannot be empty")
)
