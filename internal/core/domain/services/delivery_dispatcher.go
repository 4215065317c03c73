package services

import (
	"fmt"
	"time"

	"distribution/internal/core/domain/model/assignment"
	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/core/domain/model/order"
	"distribution/internal/core/domain/model/staff"
	"distribution/internal/pkg/errs"
)

// DeliveryDispatcher is the domain service that moves an assignment together
// with the order and the courier it touches. It keeps the two rules that span
// aggregates: an order has at most one active assignment, and a courier's load
// goes up exactly when an assignment opens and down exactly once when it ends
// (delivered, rejected, expired or withdrawn).
//
// It holds no state; handlers persist the aggregates it changed in one unit
// of work.
//
// Example:
//
//	dispatcher := services.NewDeliveryDispatcher()
//	a, err := dispatcher.Assign(o, courier, active, 10, 30, clock.Now())
//	if errors.Is(err, errs.ErrStaffUnavailable) {
//	    // pick another courier
//	}
type DeliveryDispatcher struct{}

// NewDeliveryDispatcher returns the stateless dispatcher.
func NewDeliveryDispatcher() DeliveryDispatcher {
	return DeliveryDispatcher{}
}

// Assign opens an assignment of a ready order to courier s. active is the
// order's current active assignment, or nil.
func (d DeliveryDispatcher) Assign(
	o *order.Order,
	s *staff.DeliveryStaff,
	active *assignment.Assignment,
	acceptTimeoutMinutes, expectedDeliveryMinutes int,
	now time.Time,
) (*assignment.Assignment, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if o.Status() != order.Ready {
		return nil, errs.NewInvalidStateError("order", o.Status().String(), "assign delivery for")
	}
	if active != nil && active.IsActive() {
		return nil, errs.NewConflictError("order", o.ID().String(),
			fmt.Sprintf("assignment %s is already %s", active.ID(), active.Status()))
	}

	a, err := assignment.NewAssignment(kernel.NewUUID(), o.ID(), s.ID(),
		acceptTimeoutMinutes, expectedDeliveryMinutes, now)
	if err != nil {
		return nil, err
	}
	if err = s.IncrementLoad(o.BranchID()); err != nil {
		return nil, err
	}

	return a, nil
}

// Accept starts the delivery: the order goes out once the courier commits.
func (d DeliveryDispatcher) Accept(a *assignment.Assignment, o *order.Order, now time.Time) error {
	if err := d.ensureOrder(a, o); err != nil {
		return err
	}
	if err := a.Accept(now); err != nil {
		return err
	}
	return o.MarkOutForDelivery(now)
}

// Reject returns the courier's slot; the order stays ready for reassignment.
func (d DeliveryDispatcher) Reject(a *assignment.Assignment, s *staff.DeliveryStaff, reason string, now time.Time) error {
	if err := d.ensureStaff(a, s); err != nil {
		return err
	}
	if err := a.Reject(reason, now); err != nil {
		return err
	}
	return s.DecrementLoad()
}

// Expire closes a stale assignment and returns the courier's slot.
func (d DeliveryDispatcher) Expire(a *assignment.Assignment, s *staff.DeliveryStaff, now time.Time) error {
	if err := d.ensureStaff(a, s); err != nil {
		return err
	}
	if err := a.Expire(now); err != nil {
		return err
	}
	return s.DecrementLoad()
}

// Deliver completes both the assignment and the order.
func (d DeliveryDispatcher) Deliver(
	a *assignment.Assignment,
	o *order.Order,
	s *staff.DeliveryStaff,
	now time.Time,
) error {
	if err := d.ensureOrder(a, o); err != nil {
		return err
	}
	if err := d.ensureStaff(a, s); err != nil {
		return err
	}
	if err := a.MarkDelivered(now); err != nil {
		return err
	}
	if err := o.MarkDelivered(now); err != nil {
		return err
	}
	return s.DecrementLoad()
}

// Withdraw cancels the active assignment of an order that was cancelled or
// rejected and returns the courier's slot.
func (d DeliveryDispatcher) Withdraw(a *assignment.Assignment, s *staff.DeliveryStaff, now time.Time) error {
	if err := d.ensureStaff(a, s); err != nil {
		return err
	}
	if err := a.Cancel(now); err != nil {
		return err
	}
	return s.DecrementLoad()
}

func (d DeliveryDispatcher) ensureOrder(a *assignment.Assignment, o *order.Order) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if err := o.Validate(); err != nil {
		return err
	}
	if !a.OrderID().IsEqual(o.ID()) {
		return errs.NewValueIsInvalidErrorWithCause("order",
			fmt.Errorf("assignment %s belongs to order %s, not %s", a.ID(), a.OrderID(), o.ID()))
	}
	return nil
}

func (d DeliveryDispatcher) ensureStaff(a *assignment.Assignment, s *staff.DeliveryStaff) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if err := s.Validate(); err != nil {
		return err
	}
	if !a.StaffID().IsEqual(s.ID()) {
		return errs.NewValueIsInvalidErrorWithCause("deliveryStaff",
			fmt.Errorf("assignment %s belongs to courier %s, not %s", a.ID(), a.StaffID(), s.ID()))
	}
	return nil
}
