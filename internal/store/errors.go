package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in
	// the store. Entity-specific variants below wrap it.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a
	// duplicate of a unique entity. Callers in this engine recover from
	// it by retrying the write as an update; it never surfaces to API
	// clients.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation
	// before being stored.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrUnavailable is returned when the storage layer itself fails
	// (connectivity, timeout). No retries happen at this layer; retry
	// policy belongs to the storage client.
	ErrUnavailable = errors.New("store unavailable")

	// Entity-specific "not found" errors

	// ErrWordNotFound indicates that the word does not exist in the
	// vocabulary catalog.
	ErrWordNotFound = fmt.Errorf("%w: word", ErrNotFound)

	// ErrWordProgressNotFound indicates that no review state exists yet
	// for the (learner, word) pair.
	ErrWordProgressNotFound = fmt.Errorf("%w: word progress", ErrNotFound)

	// ErrActivityProgressNotFound indicates that no completion record
	// exists yet for the (learner, scope, activity) triple.
	ErrActivityProgressNotFound = fmt.Errorf("%w: activity progress", ErrNotFound)

	// ErrUnitNotFound indicates that the content unit does not exist in
	// the content catalog.
	ErrUnitNotFound = fmt.Errorf("%w: content unit", ErrNotFound)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is a duplicate-creation error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// StoreError is a custom error type for store-specific errors with
// additional context.
type StoreError struct {
	Entity    string // The entity type (e.g., "word_progress")
	Operation string // The operation that failed (e.g., "create", "update")
	Message   string // Error message
	Err       error  // Original error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf(
			"%s operation on %s failed: %s: %v",
			e.Operation,
			e.Entity,
			e.Message,
			e.Err,
		)
	}
	return fmt.Sprintf("%s operation on %s failed: %s", e.Operation, e.Entity, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError with the given entity,
// operation, message, and wrapped error.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
