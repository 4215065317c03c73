package order

import (
	"fmt"

	"distribution/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
//	pending -> confirmed -> preparing -> ready -> out_for_delivery -> delivered
//	   \__________\____________\__________\____________\
//	                                                    -> cancelled | rejected
//
// Every legal move is listed in transitions; TransitionTo is the only place
// that decides whether a move is allowed.
type Status int

const (
	// Unknown catches uninitialized values.
	Unknown Status = iota
	Pending
	Confirmed
	Preparing
	Ready
	OutForDelivery
	Delivered
	Cancelled
	Rejected
)

var statusNames = map[Status]string{
	Unknown:        "unknown",
	Pending:        "pending",
	Confirmed:      "confirmed",
	Preparing:      "preparing",
	Ready:          "ready",
	OutForDelivery: "out_for_delivery",
	Delivered:      "delivered",
	Cancelled:      "cancelled",
	Rejected:       "rejected",
}

var transitions = map[Status][]Status{
	Pending:        {Confirmed, Cancelled, Rejected},
	Confirmed:      {Preparing, Cancelled, Rejected},
	Preparing:      {Ready, Cancelled, Rejected},
	Ready:          {OutForDelivery, Cancelled, Rejected},
	OutForDelivery: {Delivered, Cancelled, Rejected},
}

// AllStatuses lists every valid status in lifecycle order.
func AllStatuses() []Status {
	return []Status{Pending, Confirmed, Preparing, Ready, OutForDelivery, Delivered, Cancelled, Rejected}
}

// ParseStatus converts the wire name of a status.
func ParseStatus(name string) (Status, error) {
	for s, n := range statusNames {
		if n == name && s != Unknown {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid order status", name))
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok || s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name, "unknown" for invalid values.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return statusNames[Unknown]
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled || s == Rejected
}

// CanTransitionTo reports whether target is a legal next status.
func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range transitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// TransitionTo returns target when the move is legal, otherwise an
// InvalidStateError naming both statuses.
func (s Status) TransitionTo(target Status) (Status, error) {
	if !s.CanTransitionTo(target) {
		return Unknown, errs.NewInvalidStateError("order", s.String(), "move to "+target.String())
	}
	return target, nil
}
