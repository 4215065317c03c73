package errs

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Sentinels for business rule violations. Kind maps each of them to an
// error kind.
var (
	ErrInvalidState          = errors.New("invalid state")
	ErrConflict              = errors.New("conflict")
	ErrStaffUnavailable      = errors.New("staff unavailable")
	ErrIncompletePreparation = errors.New("preparation is incomplete")
	ErrDeadlineExpired       = errors.New("accept deadline expired")
)

// InvalidStateError reports an operation that is illegal for the current
// status of an entity, including out-of-order transitions.
type InvalidStateError struct {
	Entity string
	State  string
	Action string
	Cause  error
}

// NewInvalidStateError creates an InvalidStateError.
func NewInvalidStateError(entity, state, action string) *InvalidStateError {
	return &InvalidStateError{Entity: entity, State: state, Action: action}
}

// NewInvalidStateErrorWithCause is NewInvalidStateError with the underlying error attached.
func NewInvalidStateErrorWithCause(entity, state, action string, cause error) *InvalidStateError {
	return &InvalidStateError{Entity: entity, State: state, Action: action, Cause: cause}
}

func (e *InvalidStateError) Error() string {
	msg := fmt.Sprintf("%s: cannot %s %s in status %s", ErrInvalidState, e.Action, e.Entity, e.State)
	if e.Cause != nil {
		msg += fmt.Sprintf(" (cause: %v)", e.Cause)
	}
	return msg
}

// Unwrap makes the error match ErrInvalidState with errors.Is.
func (e *InvalidStateError) Unwrap() error {
	return ErrInvalidState
}

// ConflictError reports a concurrent mutation collision.
type ConflictError struct {
	Entity string
	ID     string
	Reason string
	Cause  error
}

// NewConflictError creates a ConflictError.
func NewConflictError(entity, id, reason string) *ConflictError {
	return &ConflictError{Entity: entity, ID: id, Reason: reason}
}

// NewConflictErrorWithCause is NewConflictError with the underlying error attached.
func NewConflictErrorWithCause(entity, id, reason string, cause error) *ConflictError {
	return &ConflictError{Entity: entity, ID: id, Reason: reason, Cause: cause}
}

func (e *ConflictError) Error() string {
	msg := fmt.Sprintf("%s: %s %s: %s", ErrConflict, e.Entity, e.ID, e.Reason)
	if e.Cause != nil {
		msg += fmt.Sprintf(" (cause: %v)", e.Cause)
	}
	return msg
}

// Unwrap exposes ErrConflict and the cause, when there is one.
func (e *ConflictError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrConflict, e.Cause}
	}
	return []error{ErrConflict}
}

// StaffUnavailableError reports a courier that failed the availability or
// capacity check.
type StaffUnavailableError struct {
	StaffID string
	Reason  string
}

// NewStaffUnavailableError creates a StaffUnavailableError.
func NewStaffUnavailableError(staffID, reason string) *StaffUnavailableError {
	return &StaffUnavailableError{StaffID: staffID, Reason: reason}
}

func (e *StaffUnavailableError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrStaffUnavailable, e.StaffID, e.Reason)
}

// Unwrap makes the error match ErrStaffUnavailable with errors.Is.
func (e *StaffUnavailableError) Unwrap() error {
	return ErrStaffUnavailable
}

// IncompletePreparationError lists the preparation items that still block
// the ready transition.
type IncompletePreparationError struct {
	OrderID          string
	RemainingItemIDs []string
}

// NewIncompletePreparationError creates an IncompletePreparationError.
func NewIncompletePreparationError(orderID string, remaining []string) *IncompletePreparationError {
	return &IncompletePreparationError{OrderID: orderID, RemainingItemIDs: remaining}
}

func (e *IncompletePreparationError) Error() string {
	if len(e.RemainingItemIDs) == 0 {
		return fmt.Sprintf("%s: order %s has no preparation items", ErrIncompletePreparation, e.OrderID)
	}
	return fmt.Sprintf("%s: order %s has %d items remaining: %s",
		ErrIncompletePreparation, e.OrderID, len(e.RemainingItemIDs), strings.Join(e.RemainingItemIDs, ", "))
}

// Unwrap makes the error match ErrIncompletePreparation with errors.Is.
func (e *IncompletePreparationError) Unwrap() error {
	return ErrIncompletePreparation
}

// DeadlineExpiredError reports an accept attempted after the window closed.
type DeadlineExpiredError struct {
	AssignmentID string
	Deadline     time.Time
}

// NewDeadlineExpiredError creates a DeadlineExpiredError.
func NewDeadlineExpiredError(assignmentID string, deadline time.Time) *DeadlineExpiredError {
	return &DeadlineExpiredError{AssignmentID: assignmentID, Deadline: deadline}
}

func (e *DeadlineExpiredError) Error() string {
	return fmt.Sprintf("%s: assignment %s had to be accepted before %s",
		ErrDeadlineExpired, e.AssignmentID, e.Deadline.UTC().Format(time.RFC3339))
}

// Unwrap makes the error match ErrDeadlineExpired with errors.Is.
func (e *DeadlineExpiredError) Unwrap() error {
	return ErrDeadlineExpired
}
