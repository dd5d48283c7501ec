package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/hanlearn/hanlearn-api/internal/domain"
	"github.com/hanlearn/hanlearn-api/internal/service/auth"
	"github.com/hanlearn/hanlearn-api/internal/service/progress"
	"github.com/hanlearn/hanlearn-api/internal/service/review"
	"github.com/hanlearn/hanlearn-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{"word not found", review.ErrWordNotFound, http.StatusNotFound},
		{"unit not found", progress.ErrUnitNotFound, http.StatusNotFound},
		{"store not found", store.ErrNotFound, http.StatusNotFound},
		{"invalid rating", domain.ErrInvalidRating, http.StatusBadRequest},
		{"unknown scope", domain.ErrUnknownScope, http.StatusBadRequest},
		{"unknown activity", domain.ErrUnknownActivity, http.StatusBadRequest},
		{"invalid entity", store.ErrInvalidEntity, http.StatusBadRequest},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized},
		{"duplicate", store.ErrDuplicate, http.StatusConflict},
		{"unavailable", store.ErrUnavailable, http.StatusServiceUnavailable},
		{"unknown error", errors.New("something broke"), http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := MapErrorToStatusCode(tc.err); got != tc.expected {
				t.Errorf("expected status %d, got %d", tc.expected, got)
			}
		})
	}
}

func TestMapErrorToStatusCode_WrappedErrors(t *testing.T) {
	// Wrapped sentinels must still map through errors.Is.
	wrapped := fmt.Errorf("loading state: %w", store.ErrWordProgressNotFound)
	if got := MapErrorToStatusCode(wrapped); got != http.StatusNotFound {
		t.Errorf("expected 404 for wrapped not-found, got %d", got)
	}

	serviceErr := &review.ServiceError{
		Operation: "submit_review",
		Message:   "failed to persist review state",
		Err:       store.ErrUnavailable,
	}
	if got := MapErrorToStatusCode(serviceErr); got != http.StatusServiceUnavailable {
		t.Errorf("expected 503 for wrapped unavailable, got %d", got)
	}
}

func TestGetSafeErrorMessage_NeverLeaksInternals(t *testing.T) {
	internal := errors.New("pq: connection refused host=10.0.0.5")

	message := GetSafeErrorMessage(internal)

	if message != "An internal error occurred" {
		t.Errorf("internal error detail leaked: %q", message)
	}
}
