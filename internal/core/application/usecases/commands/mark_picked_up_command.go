package commands

import (
	"errors"

	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/pkg/guard"
)

// ErrMarkPickedUpCommandIsNotConstructed reports a MarkPickedUpCommand built without NewMarkPickedUpCommand.
var ErrMarkPickedUpCommandIsNotConstructed = errors.New(
	"MarkPickedUpCommand must be created via NewMarkPickedUpCommand constructor",
)

// MarkPickedUpCommand records that the courier collected the order at the branch.
type MarkPickedUpCommand struct {
	assignmentTarget

	guard guard.ConstructorGuard
}

// NewMarkPickedUpCommand creates the command. A nil courierID skips the
// ownership check.
func NewMarkPickedUpCommand(orderID kernel.UUID, courierID *kernel.UUID) (MarkPickedUpCommand, error) {
	target, err := newAssignmentTarget(orderID, courierID)
	if err != nil {
		return MarkPickedUpCommand{}, err
	}
	return MarkPickedUpCommand{assignmentTarget: target, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkPickedUpCommand) Validate() error {
	return c.guard.Validate(ErrMarkPickedUpCommandIsNotConstructed)
}
