package domain

import (
	"fmt"
	"time"
)

// ValidationError indicates the caller supplied malformed or unresolvable input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NewValidationError creates a ValidationError with the given message.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// NotFoundError indicates the requested entity does not exist.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Entity, e.ID)
}

// NewNotFoundError creates a NotFoundError for the given entity and identifier.
func NewNotFoundError(entity, id string) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

// ForbiddenError indicates the caller lacks the role or ownership relation
// required for the operation.
type ForbiddenError struct {
	Message string
}

func (e *ForbiddenError) Error() string { return e.Message }

// NewForbiddenError creates a ForbiddenError with the given message.
func NewForbiddenError(message string) *ForbiddenError {
	return &ForbiddenError{Message: message}
}

// InvalidStateError indicates a requested transition is not legal from the
// entity's current state.
type InvalidStateError struct {
	From string
	To   string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("invalid state transition from %s to %s", e.From, e.To)
}

// NewInvalidStateError creates an InvalidStateError for the attempted transition.
func NewInvalidStateError(from, to string) *InvalidStateError {
	return &InvalidStateError{From: from, To: to}
}

// AvailabilityConflictError indicates a candidate date range overlaps a
// confirmed booking. The conflicting interval is carried so the caller can
// present it.
type AvailabilityConflictError struct {
	PropertyID string
	CheckIn    time.Time
	CheckOut   time.Time
}

func (e *AvailabilityConflictError) Error() string {
	return fmt.Sprintf("property %s is already booked from %s to %s",
		e.PropertyID, e.CheckIn.Format("2006-01-02"), e.CheckOut.Format("2006-01-02"))
}

// NewAvailabilityConflictError creates an AvailabilityConflictError naming the
// conflicting confirmed interval.
func NewAvailabilityConflictError(propertyID string, checkIn, checkOut time.Time) *AvailabilityConflictError {
	return &AvailabilityConflictError{PropertyID: propertyID, CheckIn: checkIn, CheckOut: checkOut}
}

// ConflictError indicates a concurrent modification was detected.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// NewConflictError creates a ConflictError with the given message.
func NewConflictError(message string) *ConflictError {
	return &ConflictError{Message: message}
}

// UnavailableError indicates the persistence collaborator failed. It is
// retryable from the caller's point of view and must never be presented as a
// successful operation.
type UnavailableError struct {
	Message string
	Cause   error
}

func (e *UnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *UnavailableError) Unwrap() error { return e.Cause }

// NewUnavailableError wraps a store-level failure.
func NewUnavailableError(message string, cause error) *UnavailableError {
	return &UnavailableError{Message: message, Cause: cause}
}
