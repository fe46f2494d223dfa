// Package shared contains common domain types, errors and events that are used
// across all domain packages. This package has zero external dependencies.
package shared

import (
	"errors"
	"fmt"
)

// Base domain errors that can be used for error checking with errors.Is().
var (
	// Entity errors
	ErrNotFound      = errors.New("entity not found")
	ErrAlreadyExists = errors.New("entity already exists")
	ErrInvalidEntity = errors.New("invalid entity")

	// Validation errors
	ErrValidation      = errors.New("validation error")
	ErrInvalidID       = errors.New("invalid ID")
	ErrInvalidInput    = errors.New("invalid input")
	ErrEmptyValue      = errors.New("value cannot be empty")
	ErrNegativeValue   = errors.New("value cannot be negative")
	ErrValueOutOfRange = errors.New("value out of range")
	ErrInvalidFormat   = errors.New("invalid format")

	// State errors
	ErrInvalidState    = errors.New("invalid state")
	ErrStateTransition = errors.New("invalid state transition")

	// Capacity errors
	ErrCapacityExceeded = errors.New("capacity exceeded")
)

// DomainError represents a domain-specific error with context.
type DomainError struct {
	Domain  string // e.g., "scheduling", "constraint", "scheduler"
	Op      string // Operation that failed, e.g., "NewRoom", "AssignStudent"
	Kind    error  // Base error type for errors.Is() checking
	Message string // Human-readable message
	Err     error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s.%s: %s: %v", e.Domain, e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s.%s: %s", e.Domain, e.Op, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap().
func (e *DomainError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Kind
}

// Is implements errors.Is() matching.
func (e *DomainError) Is(target error) bool {
	if e.Kind != nil && errors.Is(e.Kind, target) {
		return true
	}
	if e.Err != nil && errors.Is(e.Err, target) {
		return true
	}
	return false
}

// NewDomainError creates a new domain error.
func NewDomainError(domain, op string, kind error, message string) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
	}
}

// WrapError wraps an existing error with domain context.
func WrapError(domain, op string, kind error, message string, err error) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// Scheduling domain errors
var (
	ErrStudentNotFound  = NewDomainError("scheduling", "Find", ErrNotFound, "student not found")
	ErrCourseNotFound   = NewDomainError("scheduling", "Find", ErrNotFound, "course not found")
	ErrRoomNotFound     = NewDomainError("scheduling", "Find", ErrNotFound, "room not found")
	ErrExamNotFound     = NewDomainError("scheduling", "Find", ErrNotFound, "exam not found")
	ErrScheduleNotFound = NewDomainError("scheduling", "Find", ErrNotFound, "schedule not found")

	ErrStudentAlreadyExists = NewDomainError("scheduling", "Create", ErrAlreadyExists, "student already exists")
	ErrCourseAlreadyExists  = NewDomainError("scheduling", "Create", ErrAlreadyExists, "course already exists")
	ErrRoomAlreadyExists    = NewDomainError("scheduling", "Create", ErrAlreadyExists, "room already exists")
	ErrExamAlreadyExists    = NewDomainError("scheduling", "Create", ErrAlreadyExists, "exam already exists")

	ErrNegativeCapacity = NewDomainError("scheduling", "Validate", ErrNegativeValue, "room capacity cannot be negative")
	ErrInvalidTimeSlot  = NewDomainError("scheduling", "Validate", ErrInvalidInput, "time slot end must be after start")
	ErrInvalidTimeOfDay = NewDomainError("scheduling", "Validate", ErrValueOutOfRange, "time of day out of range")
	ErrInvalidDate      = NewDomainError("scheduling", "Validate", ErrInvalidFormat, "invalid date")
)

// Import/export errors
var (
	ErrMalformedRecord = NewDomainError("csvio", "Parse", ErrInvalidFormat, "malformed record")
	ErrUnknownCourse   = NewDomainError("csvio", "Link", ErrNotFound, "record references unknown course")
	ErrUnknownStudent  = NewDomainError("csvio", "Link", ErrNotFound, "record references unknown student")
)

// IsNotFound checks if the error is a "not found" error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if the error is an "already exists" error.
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsValidation checks if the error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrInvalidID) ||
		errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrEmptyValue) ||
		errors.Is(err, ErrNegativeValue) ||
		errors.Is(err, ErrValueOutOfRange) ||
		errors.Is(err, ErrInvalidFormat)
}
