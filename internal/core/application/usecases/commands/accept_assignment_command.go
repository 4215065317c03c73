package commands

import (
	"errors"

	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/pkg/guard"
)

// ErrAcceptAssignmentCommandIsNotConstructed reports a AcceptAssignmentCommand built without NewAcceptAssignmentCommand.
var ErrAcceptAssignmentCommandIsNotConstructed = errors.New(
	"AcceptAssignmentCommand must be created via NewAcceptAssignmentCommand constructor",
)

// AcceptAssignmentCommand is the courier taking the order before the accept deadline.
type AcceptAssignmentCommand struct {
	assignmentTarget

	guard guard.ConstructorGuard
}

// NewAcceptAssignmentCommand addresses the current assignment of orderID.
// courierID is the acting courier, or nil when a distributor acts.
func NewAcceptAssignmentCommand(orderID kernel.UUID, courierID *kernel.UUID) (AcceptAssignmentCommand, error) {
	target, err := newAssignmentTarget(orderID, courierID)
	if err != nil {
		return AcceptAssignmentCommand{}, err
	}
	return AcceptAssignmentCommand{assignmentTarget: target, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c AcceptAssignmentCommand) Validate() error {
	return c.guard.Validate(ErrAcceptAssignmentCommandIsNotConstructed)
}
