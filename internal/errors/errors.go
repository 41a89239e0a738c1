// Package errors provides domain-specific error types and sentinel errors
// for improved error handling across the application.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common scenarios.
// Use errors.Is() to check these errors in your code.
var (
	// ErrNotFound indicates a requested resource was not found.
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput indicates the caller provided invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrTimeout indicates an operation timed out.
	ErrTimeout = errors.New("operation timed out")
)

// ValidationError represents input validation failures.
// It is user-visible and produced before any corpus or LLM call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// CorpusError represents a course corpus access failure.
// The pipeline logs it and degrades to an empty candidate set.
type CorpusError struct {
	Operation string
	Err       error
}

func (e *CorpusError) Error() string {
	return fmt.Sprintf("corpus error (operation=%s): %v", e.Operation, e.Err)
}

func (e *CorpusError) Unwrap() error {
	return e.Err
}

// NewCorpusError creates a new corpus access error.
func NewCorpusError(operation string, err error) *CorpusError {
	return &CorpusError{
		Operation: operation,
		Err:       err,
	}
}
