package commands

import (
	"errors"

	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/pkg/guard"
)

// ErrMarkArrivingCommandIsNotConstructed reports a MarkArrivingCommand built without NewMarkArrivingCommand.
var ErrMarkArrivingCommandIsNotConstructed = errors.New(
	"MarkArrivingCommand must be created via NewMarkArrivingCommand constructor",
)

// MarkArrivingCommand records that the courier reached the customer.
type MarkArrivingCommand struct {
	assignmentTarget

	guard guard.ConstructorGuard
}

// NewMarkArrivingCommand creates the command. A nil courierID skips the
// ownership check.
func NewMarkArrivingCommand(orderID kernel.UUID, courierID *kernel.UUID) (MarkArrivingCommand, error) {
	target, err := newAssignmentTarget(orderID, courierID)
	if err != nil {
		return MarkArrivingCommand{}, err
	}
	return MarkArrivingCommand{assignmentTarget: target, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkArrivingCommand) Validate() error {
	return c.guard.Validate(ErrMarkArrivingCommandIsNotConstructed)
}
