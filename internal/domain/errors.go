package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidRating is returned when a review rating is not one of
	// the recognized values (easy, hard, forgot).
	ErrInvalidRating = errors.New("invalid review rating")

	// ErrInvalidWordStatus is returned when a word status is not valid.
	ErrInvalidWordStatus = errors.New("invalid word status")

	// ErrUnknownScope is returned when a scope carries neither a
	// (level, part) pair nor a topic identifier, or carries both.
	ErrUnknownScope = errors.New("unknown scope")

	// ErrUnknownActivity is returned when an activity identifier is not
	// a recognized activity kind.
	ErrUnknownActivity = errors.New("unknown activity")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")
)
