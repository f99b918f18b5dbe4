package services

import (
	"errors"
	"fmt"
)

// Caller-facing business errors. All of them map to 4xx responses and none is
// retried; anything else bubbling out of a service is an infrastructure
// failure.
var (
	ErrNotFound         = errors.New("record not found")
	ErrSlotOccupied     = errors.New("document slot already has an active version")
	ErrNotPending       = errors.New("document is not awaiting review")
	ErrNotesRequired    = errors.New("notes are required for a rejection")
	ErrStageNotReady    = errors.New("current stage has not been approved")
	ErrPermissionDenied = errors.New("operation not allowed for this user")
)

// InvalidTransitionError reports a status or stage change that is not
// permitted from the current state, including both values so callers can show
// what was attempted.
type InvalidTransitionError struct {
	Current   string
	Attempted string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition from %q to %q", e.Current, e.Attempted)
}

// ValidationError carries field-level messages for a malformed request. No
// row is written when one is returned.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(e.Fields))
}

// NewValidationError builds a single-field validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string][]string{field: {message}}}
}
