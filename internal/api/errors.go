package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/productgen/internal/domain"
	"github.com/phrazzld/productgen/internal/generation"
)

// MapErrorToStatusCode maps pipeline errors to HTTP status codes without
// exposing internal error types to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, generation.ErrInvalidRequest),
		errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, generation.ErrBackendUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, generation.ErrTransportFailure),
		errors.Is(err, generation.ErrEmptyResponse),
		errors.Is(err, generation.ErrMalformedResponse),
		errors.Is(err, generation.ErrSchemaViolation):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-facing message for err. Raw backend
// output and upstream error text never appear in it.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	genErr, _ := generation.AsError(err)

	switch {
	case errors.Is(err, generation.ErrInvalidRequest):
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			return fmt.Sprintf("%s %s", ve.Field, ve.Message)
		}
		return "Invalid request"
	case errors.Is(err, generation.ErrBackendUnavailable):
		if genErr != nil && genErr.Capability != "" {
			return fmt.Sprintf("No generation backend with %s capability is configured", genErr.Capability)
		}
		return "Generation backend unavailable"
	case errors.Is(err, generation.ErrTransportFailure):
		return "Generation backend request failed"
	case errors.Is(err, generation.ErrEmptyResponse):
		if genErr != nil && genErr.FinishReason != "" {
			return fmt.Sprintf("Generation backend returned no content (finish reason: %s)", genErr.FinishReason)
		}
		return "Generation backend returned no content"
	case errors.Is(err, generation.ErrMalformedResponse):
		return "Generation backend returned invalid JSON"
	case errors.Is(err, generation.ErrSchemaViolation):
		if genErr != nil && len(genErr.Fields) > 0 {
			return fmt.Sprintf("Generated product failed validation: %s", strings.Join(genErr.Fields, ", "))
		}
		return "Generated product failed validation"
	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError turns request validation failures into a short
// message naming the first offending field. Field names come from the
// validator, which shared.ValidateRequest configures to report JSON names.
func SanitizeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Validation error"
	}

	fe := verrs[0]
	if fe.Tag() == "required" {
		return fe.Field() + " is required"
	}
	return fmt.Sprintf("Invalid %s: %s", fe.Field(), getValidationTagMessage(fe.Tag()))
}

func getValidationTagMessage(tag string) string {
	switch tag {
	case "url", "http_url":
		return "must be a valid URL"
	case "max":
		return "too long"
	case "min":
		return "too short"
	default:
		return "validation failed"
	}
}
