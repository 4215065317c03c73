package commands

import (
	"errors"

	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/pkg/guard"
)

// ErrCompletePreparationCommandIsNotConstructed reports a CompletePreparationCommand built without NewCompletePreparationCommand.
var ErrCompletePreparationCommandIsNotConstructed = errors.New(
	"CompletePreparationCommand must be created via NewCompletePreparationCommand constructor",
)

// CompletePreparationCommand marks the picking of an order as finished.
type CompletePreparationCommand struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCompletePreparationCommand creates the command for the given order.
func NewCompletePreparationCommand(orderID kernel.UUID) (CompletePreparationCommand, error) {
	if err := orderID.Validate(); err != nil {
		return CompletePreparationCommand{}, err
	}
	return CompletePreparationCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c CompletePreparationCommand) Validate() error {
	return c.guard.Validate(ErrCompletePreparationCommandIsNotConstructed)
}

// OrderID returns the order being prepared.
func (c CompletePreparationCommand) OrderID() kernel.UUID { return c.orderID }
