package model

import (
	"errors"
	"fmt"
)

// Common errors used across the application
var (
	ErrPlayerNotFound      = errors.New("player not found")
	ErrTimeControlNotFound = errors.New("time control not found")
	ErrOpeningNotFound     = errors.New("opening not found")
	ErrGameNotFound        = errors.New("game not found")
)

// ValidationError reports a missing or unparseable input field on a manual
// add/update request. No mutation has occurred when one is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewValidationError creates a ValidationError for a field
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// ReferenceError reports that a referenced entity does not exist. Kind and
// Ref identify which reference failed.
type ReferenceError struct {
	Kind EntityKind
	Ref  string
}

func (e *ReferenceError) Error() string {
	switch e.Kind {
	case KindPlayer:
		return fmt.Sprintf("%s player not found", e.Ref)
	case KindTimeControl:
		return "time control not found"
	case KindOpening:
		return "opening not found"
	default:
		return fmt.Sprintf("%s not found", e.Kind)
	}
}

// ConflictError reports a duplicate identifier on a manual add
type ConflictError struct {
	Kind EntityKind
	ID   string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s with id %q already exists", e.Kind, e.ID)
}

// MalformedRecordError reports a bulk input row that could not be parsed:
// wrong column count, empty required field, or a non-numeric value in a
// numeric field.
type MalformedRecordError struct {
	Row    int // 1-based row number within the batch
	Field  string
	Reason string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed record at row %d: %s: %s", e.Row, e.Field, e.Reason)
}

// PersistenceError wraps an infrastructure failure from the entity store
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure in %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
