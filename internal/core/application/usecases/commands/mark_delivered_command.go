package commands

import (
	"errors"

	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/pkg/guard"
)

// ErrMarkDeliveredCommandIsNotConstructed reports a MarkDeliveredCommand built without NewMarkDeliveredCommand.
var ErrMarkDeliveredCommandIsNotConstructed = errors.New(
	"MarkDeliveredCommand must be created via NewMarkDeliveredCommand constructor",
)

// MarkDeliveredCommand records the handover and closes the order.
type MarkDeliveredCommand struct {
	assignmentTarget

	guard guard.ConstructorGuard
}

// NewMarkDeliveredCommand creates the command. A nil courierID skips the
// ownership check.
func NewMarkDeliveredCommand(orderID kernel.UUID, courierID *kernel.UUID) (MarkDeliveredCommand, error) {
	target, err := newAssignmentTarget(orderID, courierID)
	if err != nil {
		return MarkDeliveredCommand{}, err
	}
	return MarkDeliveredCommand{assignmentTarget: target, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkDeliveredCommand) Validate() error {
	return c.guard.Validate(ErrMarkDeliveredCommandIsNotConstructed)
}
