package core

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	// ErrInvalidPayload is returned when a session payload is missing required fields
	// or violates tree ownership rules. The previous session is left untouched.
	ErrInvalidPayload = errors.New("invalid session payload")

	// ErrUnknownKind is returned when a kind name does not denote an artifact collection.
	ErrUnknownKind = errors.New("unknown artifact kind")

	// ErrNotFound is returned when an edit addresses an artifact that is not loaded.
	ErrNotFound = errors.New("artifact not found")

	// ErrInvalidPattern is returned by Watch for malformed glob patterns.
	ErrInvalidPattern = errors.New("invalid target pattern")
)

// ValidationError describes the first defect found in a session payload.
type ValidationError struct {
	Kind   Kind
	Index  int
	ID     string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s[%d] (%s): %s %s", e.Kind, e.Index, e.ID, e.Field, e.Reason)
	}
	return fmt.Sprintf("%s[%d]: %s %s", e.Kind, e.Index, e.Field, e.Reason)
}

// Unwrap allows errors.Is(err, ErrInvalidPayload).
func (e *ValidationError) Unwrap() error {
	return ErrInvalidPayload
}
