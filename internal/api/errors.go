package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/hanlearn/hanlearn-api/internal/domain"
	"github.com/hanlearn/hanlearn-api/internal/service/auth"
	"github.com/hanlearn/hanlearn-api/internal/service/progress"
	"github.com/hanlearn/hanlearn-api/internal/service/review"
	"github.com/hanlearn/hanlearn-api/internal/store"
)

// MapErrorToStatusCode maps domain, service, and store errors to the
// appropriate HTTP status code. Unknown errors map to 500 so that
// internal details never leak through a mis-classified response.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found
	case errors.Is(err, review.ErrWordNotFound),
		errors.Is(err, progress.ErrUnitNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Validation and bad input
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidRating),
		errors.Is(err, domain.ErrUnknownScope),
		errors.Is(err, domain.ErrUnknownActivity),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Authentication
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrEmptyToken):
		return http.StatusUnauthorized

	// Conflicts
	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Dependency outage
	case errors.Is(err, store.ErrUnavailable):
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-safe message for the given error.
// Messages from expected error categories pass through; anything else is
// replaced with a generic message to avoid leaking internals.
func GetSafeErrorMessage(err error) string {
	switch {
	case errors.Is(err, review.ErrWordNotFound):
		return "Word not found"
	case errors.Is(err, progress.ErrUnitNotFound):
		return "Content unit not found"
	case errors.Is(err, store.ErrNotFound):
		return "Resource not found"
	case errors.Is(err, domain.ErrInvalidRating):
		return "Invalid review rating"
	case errors.Is(err, domain.ErrUnknownScope):
		return "Invalid scope: provide exactly one of topic_id or hsk_level with part_number"
	case errors.Is(err, domain.ErrUnknownActivity):
		return "Unknown activity type"
	case errors.Is(err, domain.ErrValidation), errors.Is(err, store.ErrInvalidEntity):
		return "Invalid request data"
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrEmptyToken):
		return "Invalid token"
	case errors.Is(err, store.ErrDuplicate):
		return "Resource already exists"
	case errors.Is(err, store.ErrUnavailable):
		return "Service temporarily unavailable"
	default:
		return "An internal error occurred"
	}
}

// SanitizeValidationError converts validator errors into a readable,
// client-safe message listing the offending fields. Non-validator errors
// fall back to a generic message.
func SanitizeValidationError(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return "Invalid request data"
	}

	fields := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		switch fieldErr.Tag() {
		case "required":
			fields = append(fields, fieldErr.Field()+" is required")
		case "min":
			fields = append(fields, fieldErr.Field()+" is below the minimum")
		case "max":
			fields = append(fields, fieldErr.Field()+" exceeds the maximum")
		case "oneof":
			fields = append(fields, fieldErr.Field()+" has an unsupported value")
		default:
			fields = append(fields, fieldErr.Field()+" is invalid")
		}
	}

	return "Validation failed: " + strings.Join(fields, ", ")
}
