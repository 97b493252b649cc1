package domain

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so that callers can react to it without
// parsing messages.
type Kind string

const (
	KindValidation Kind = "VALIDATION_ERROR"
	KindReference  Kind = "REFERENCE_ERROR"
	KindNotFound   Kind = "NOT_FOUND"
	KindStore      Kind = "STORE_ERROR"
)

// Sentinels matched by errors.Is against the typed errors below.
var (
	ErrValidation = errors.New("validation failed")
	ErrReference  = errors.New("reference violation")
	ErrNotFound   = errors.New("not found")
	ErrStore      = errors.New("store failure")
)

// ValidationError reports a missing or malformed input field.
type ValidationError struct {
	Field   string
	Message string
	cause   error
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func (e *ValidationError) Unwrap() error { return e.cause }

// ReferenceError reports a foreign key that points nowhere, or a row that
// cannot be removed because other rows still point at it.
type ReferenceError struct {
	Entity  string
	ID      int64
	Message string
}

func (e *ReferenceError) Error() string { return e.Message }

func (e *ReferenceError) Is(target error) bool { return target == ErrReference }

// NotFoundError reports an operation on an id that does not exist.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// StoreError wraps a connectivity, constraint or otherwise unexpected
// failure of the persistent store.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	if e.Err == nil {
		return e.Op + ": store failure"
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *StoreError) Is(target error) bool { return target == ErrStore }

func (e *StoreError) Unwrap() error { return e.Err }

// Required builds the ValidationError for an absent field.
func Required(field string) error {
	return &ValidationError{Field: field, Message: field + " is required"}
}

// Invalid builds the ValidationError for a malformed field.
func Invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// InvalidCause is Invalid with the underlying parse error attached.
func InvalidCause(field, message string, cause error) error {
	return &ValidationError{Field: field, Message: message, cause: cause}
}

func NotFound(entity string, id int64) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// DanglingReference is returned when a write names a parent row that does
// not exist.
func DanglingReference(entity string, id int64) error {
	return &ReferenceError{
		Entity:  entity,
		ID:      id,
		Message: fmt.Sprintf("%s %d does not exist", entity, id),
	}
}

// StillReferenced is returned when a delete is refused because dependent
// rows exist.
func StillReferenced(entity string, id int64, dependents string) error {
	return &ReferenceError{
		Entity:  entity,
		ID:      id,
		Message: fmt.Sprintf("%s %d still has %s", entity, id, dependents),
	}
}

// Store wraps err as a StoreError unless it already carries a kind.
func Store(op string, err error) error {
	if err == nil {
		return nil
	}
	if isTagged(err) {
		return err
	}
	return &StoreError{Op: op, Err: err}
}

// KindOf classifies err. Unclassified errors count as store failures.
func KindOf(err error) Kind {
	switch {
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrReference):
		return KindReference
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	default:
		return KindStore
	}
}

func isTagged(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrReference) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrStore)
}
