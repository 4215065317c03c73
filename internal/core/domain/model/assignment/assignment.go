package assignment

import (
	"errors"
	"fmt"
	"time"

	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/pkg/errs"
)

// Upper bounds for the minutes a distributor may set on an assignment.
const (
	MaxAcceptTimeoutMinutes    = 24 * 60
	MaxExpectedDeliveryMinutes = 24 * 60
)

// ErrAssignmentIsNotConstructed is returned for an Assignment not created
// through NewAssignment or RestoreAssignment.
var ErrAssignmentIsNotConstructed = errors.New("Assignment must be created via NewAssignment constructor")

// Assignment is one courier's attempt at delivering one order.
type Assignment struct {
	id                      kernel.UUID
	orderID                 kernel.UUID
	staffID                 kernel.UUID
	status                  Status
	acceptDeadline          time.Time
	expectedDeliveryMinutes int
	assignedAt              time.Time
	acceptedAt              *time.Time
	pickedUpAt              *time.Time
	arrivedAt               *time.Time
	deliveredAt             *time.Time
	rejectedAt              *time.Time
	expiredAt               *time.Time
	cancelledAt             *time.Time
	rejectReason            string
	version                 int

	isConstructed bool
}

// NewAssignment opens an assignment in Assigned status whose accept window
// closes acceptTimeoutMinutes after now.
func NewAssignment(
	id, orderID, staffID kernel.UUID,
	acceptTimeoutMinutes, expectedDeliveryMinutes int,
	now time.Time,
) (*Assignment, error) {
	a := &Assignment{
		status:        Assigned,
		assignedAt:    now,
		isConstructed: true,
	}

	if err := errors.Join(
		a.setIDs(id, orderID, staffID),
		validateMinutes("acceptTimeoutMinutes", acceptTimeoutMinutes, MaxAcceptTimeoutMinutes),
		validateMinutes("expectedDeliveryMinutes", expectedDeliveryMinutes, MaxExpectedDeliveryMinutes),
	); err != nil {
		return nil, err
	}
	a.acceptDeadline = now.Add(time.Duration(acceptTimeoutMinutes) * time.Minute)
	a.expectedDeliveryMinutes = expectedDeliveryMinutes

	return a, nil
}

// Snapshot carries persisted assignment state into RestoreAssignment.
type Snapshot struct {
	ID                      kernel.UUID
	OrderID                 kernel.UUID
	StaffID                 kernel.UUID
	Status                  Status
	AcceptDeadline          time.Time
	ExpectedDeliveryMinutes int
	AssignedAt              time.Time
	AcceptedAt              *time.Time
	PickedUpAt              *time.Time
	ArrivedAt               *time.Time
	DeliveredAt             *time.Time
	RejectedAt              *time.Time
	ExpiredAt               *time.Time
	CancelledAt             *time.Time
	RejectReason            string
	Version                 int
}

// RestoreAssignment rebuilds an assignment read from storage. Identifiers and
// status are validated; timestamps are taken as stored.
func RestoreAssignment(s Snapshot) (*Assignment, error) {
	a := &Assignment{
		acceptDeadline:          s.AcceptDeadline,
		expectedDeliveryMinutes: s.ExpectedDeliveryMinutes,
		assignedAt:              s.AssignedAt,
		acceptedAt:              s.AcceptedAt,
		pickedUpAt:              s.PickedUpAt,
		arrivedAt:               s.ArrivedAt,
		deliveredAt:             s.DeliveredAt,
		rejectedAt:              s.RejectedAt,
		expiredAt:               s.ExpiredAt,
		cancelledAt:             s.CancelledAt,
		rejectReason:            s.RejectReason,
		version:                 s.Version,
		isConstructed:           true,
	}

	if err := errors.Join(a.setIDs(s.ID, s.OrderID, s.StaffID), s.Status.Validate()); err != nil {
		return nil, err
	}
	a.status = s.Status

	return a, nil
}

// IsEqual compares assignments by identity.
func (a *Assignment) IsEqual(other *Assignment) bool {
	return other != nil && a.id.IsEqual(other.id)
}

// Validate reports whether the assignment was built by a constructor.
func (a *Assignment) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAssignmentIsNotConstructed
	}
	return nil
}

// ID identifies the assignment.
func (a *Assignment) ID() kernel.UUID { return a.id }

// OrderID is the order being delivered.
func (a *Assignment) OrderID() kernel.UUID { return a.orderID }

// StaffID is the courier the order was handed to.
func (a *Assignment) StaffID() kernel.UUID { return a.staffID }

// Status is the current state of the assignment.
func (a *Assignment) Status() Status { return a.status }

// AcceptDeadline is the last instant the courier could have accepted.
func (a *Assignment) AcceptDeadline() time.Time { return a.acceptDeadline }

// ExpectedDeliveryMinutes is the SLA from accept to handover.
func (a *Assignment) ExpectedDeliveryMinutes() int { return a.expectedDeliveryMinutes }

// AssignedAt is when the distributor made the assignment.
func (a *Assignment) AssignedAt() time.Time { return a.assignedAt }

// AcceptedAt and the other stage timestamps are nil until the stage is reached.
func (a *Assignment) AcceptedAt() *time.Time  { return a.acceptedAt }
func (a *Assignment) PickedUpAt() *time.Time  { return a.pickedUpAt }
func (a *Assignment) ArrivedAt() *time.Time   { return a.arrivedAt }
func (a *Assignment) DeliveredAt() *time.Time { return a.deliveredAt }
func (a *Assignment) RejectedAt() *time.Time  { return a.rejectedAt }
func (a *Assignment) ExpiredAt() *time.Time   { return a.expiredAt }
func (a *Assignment) CancelledAt() *time.Time { return a.cancelledAt }

// RejectReason is the courier's reason, kept verbatim.
func (a *Assignment) RejectReason() string { return a.rejectReason }

// Version is the optimistic-lock counter read from storage.
func (a *Assignment) Version() int { return a.version }

// IsActive reports whether the assignment still holds a courier slot.
func (a *Assignment) IsActive() bool { return a.status.IsActive() }

// IsStale reports an assignment whose accept window closed without an answer.
func (a *Assignment) IsStale(now time.Time) bool {
	return a.status == Assigned && !now.Before(a.acceptDeadline)
}

// Accept is allowed only in Assigned status and strictly before the
// deadline. A late accept, before or after the sweep marked the assignment
// expired, gets DeadlineExpired.
func (a *Assignment) Accept(now time.Time) error {
	if a.status == Expired || (a.status == Assigned && !now.Before(a.acceptDeadline)) {
		return errs.NewDeadlineExpiredError(a.id.String(), a.acceptDeadline)
	}
	if err := a.transition(Accepted); err != nil {
		return err
	}
	a.acceptedAt = stamp(now)
	return nil
}

// Reject records the courier's refusal. The reason is kept verbatim.
func (a *Assignment) Reject(reason string, now time.Time) error {
	if err := a.transition(Rejected); err != nil {
		return err
	}
	a.rejectReason = reason
	a.rejectedAt = stamp(now)
	return nil
}

// MarkPickedUp records that the courier collected the order at the branch.
func (a *Assignment) MarkPickedUp(now time.Time) error {
	if err := a.transition(PickedUp); err != nil {
		return err
	}
	a.pickedUpAt = stamp(now)
	return nil
}

// MarkArriving records that the courier is about to reach the customer.
func (a *Assignment) MarkArriving(now time.Time) error {
	if err := a.transition(Arriving); err != nil {
		return err
	}
	a.arrivedAt = stamp(now)
	return nil
}

// MarkDelivered closes the assignment after handover.
func (a *Assignment) MarkDelivered(now time.Time) error {
	if err := a.transition(Delivered); err != nil {
		return err
	}
	a.deliveredAt = stamp(now)
	return nil
}

// Expire closes a stale assignment. It fails for an assignment whose
// window is still open so that a sweep cannot race a valid accept.
func (a *Assignment) Expire(now time.Time) error {
	if a.status == Assigned && !a.IsStale(now) {
		return errs.NewInvalidStateErrorWithCause("assignment", a.status.String(), "expire",
			fmt.Errorf("accept deadline %s has not passed", a.acceptDeadline.UTC().Format(time.RFC3339)))
	}
	if err := a.transition(Expired); err != nil {
		return err
	}
	a.expiredAt = stamp(now)
	return nil
}

// Cancel ends an active assignment because its order was withdrawn.
func (a *Assignment) Cancel(now time.Time) error {
	if err := a.transition(Cancelled); err != nil {
		return err
	}
	a.cancelledAt = stamp(now)
	return nil
}

// DeliveryDuration is the time from accept to handover, once delivered.
func (a *Assignment) DeliveryDuration() (time.Duration, bool) {
	if a.acceptedAt == nil || a.deliveredAt == nil {
		return 0, false
	}
	return a.deliveredAt.Sub(*a.acceptedAt), true
}

// IsLate reports whether the delivery took longer than expected. The second
// result is false until the assignment is delivered.
func (a *Assignment) IsLate() (bool, bool) {
	d, ok := a.DeliveryDuration()
	if !ok {
		return false, false
	}
	return d > time.Duration(a.expectedDeliveryMinutes)*time.Minute, true
}

func (a *Assignment) transition(target Status) error {
	next, err := a.status.TransitionTo(target)
	if err != nil {
		return err
	}
	a.status = next
	return nil
}

func (a *Assignment) setIDs(id, orderID, staffID kernel.UUID) error {
	var problems []error
	if err := id.Validate(); err != nil {
		problems = append(problems, err)
	}
	if err := orderID.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("orderId", err))
	}
	if err := staffID.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("deliveryStaffId", err))
	}
	if len(problems) > 0 {
		return errors.Join(problems...)
	}
	a.id, a.orderID, a.staffID = id, orderID, staffID
	return nil
}

func validateMinutes(param string, v, maxValue int) error {
	if v < 1 || v > maxValue {
		return errs.NewValueIsOutOfRangeError(param, v, 1, maxValue)
	}
	return nil
}

func stamp(t time.Time) *time.Time {
	return &t
}
