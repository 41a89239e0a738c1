package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("query", "must be 1-500 characters")

	if err.Error() != "validation failed on query: must be 1-500 characters" {
		t.Errorf("unexpected message: %s", err.Error())
	}
	if !IsValidation(err) {
		t.Error("IsValidation() = false, want true")
	}
	if !IsValidation(fmt.Errorf("wrapped: %w", err)) {
		t.Error("IsValidation() should see through wrapping")
	}
	if IsValidation(stderrors.New("plain")) {
		t.Error("IsValidation(plain error) = true, want false")
	}
}

func TestCorpusErrorUnwrap(t *testing.T) {
	cause := stderrors.New("database is locked")
	err := NewCorpusError("find_courses", cause)

	if !stderrors.Is(err, cause) {
		t.Error("errors.Is() should find the cause")
	}
	want := "corpus error (operation=find_courses): database is locked"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
