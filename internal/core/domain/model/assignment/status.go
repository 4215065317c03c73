package assignment

import (
	"fmt"

	"distribution/internal/pkg/errs"
)

// Status is the state of a delivery assignment.
type Status int

// Assignment statuses. Unknown is the zero value and never valid.
const (
	Unknown Status = iota
	Assigned
	Accepted
	PickedUp
	Arriving
	Delivered
	Rejected
	Expired
	Cancelled
)

var statusNames = [...]string{
	Unknown:   "unknown",
	Assigned:  "assigned",
	Accepted:  "accepted",
	PickedUp:  "picked_up",
	Arriving:  "arriving",
	Delivered: "delivered",
	Rejected:  "rejected",
	Expired:   "expired",
	Cancelled: "cancelled",
}

var transitions = map[Status][]Status{
	Assigned: {Accepted, Expired, Rejected, Cancelled},
	Accepted: {PickedUp, Cancelled},
	PickedUp: {Arriving, Cancelled},
	Arriving: {Delivered, Cancelled},
}

// AllStatuses lists every valid status in lifecycle order.
func AllStatuses() []Status {
	return []Status{Assigned, Accepted, PickedUp, Arriving, Delivered, Rejected, Expired, Cancelled}
}

// ActiveStatuses are the statuses that hold a courier slot.
func ActiveStatuses() []Status {
	return []Status{Assigned, Accepted, PickedUp, Arriving}
}

// ParseStatus maps a wire name such as "picked_up" back to its Status.
func ParseStatus(name string) (Status, error) {
	for _, s := range AllStatuses() {
		if s.String() == name {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid assignment status", name))
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if s <= Unknown || int(s) >= len(statusNames) {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status.
func (s Status) String() string {
	if s < Unknown || int(s) >= len(statusNames) {
		return statusNames[Unknown]
	}
	return statusNames[s]
}

// IsActive reports whether the assignment still occupies the courier.
func (s Status) IsActive() bool {
	return len(transitions[s]) > 0
}

// IsTerminal reports a valid status with no way out: delivered, rejected,
// expired or cancelled.
func (s Status) IsTerminal() bool {
	return s.Validate() == nil && !s.IsActive()
}

// CanTransitionTo reports whether target directly follows s.
func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range transitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// TransitionTo is the single legality check of the assignment state machine.
func (s Status) TransitionTo(target Status) (Status, error) {
	if !s.CanTransitionTo(target) {
		return Unknown, errs.NewInvalidStateError("assignment", s.String(), "move to "+target.String())
	}
	return target, nil
}
