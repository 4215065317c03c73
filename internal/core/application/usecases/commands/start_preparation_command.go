package commands

import (
	"errors"

	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/pkg/guard"
)

// ErrStartPreparationCommandIsNotConstructed reports a StartPreparationCommand built without NewStartPreparationCommand.
var ErrStartPreparationCommandIsNotConstructed = errors.New(
	"StartPreparationCommand must be created via NewStartPreparationCommand constructor",
)

// StartPreparationCommand begins picking a confirmed order.
type StartPreparationCommand struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewStartPreparationCommand creates the command for the given order.
func NewStartPreparationCommand(orderID kernel.UUID) (StartPreparationCommand, error) {
	if err := orderID.Validate(); err != nil {
		return StartPreparationCommand{}, err
	}
	return StartPreparationCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c StartPreparationCommand) Validate() error {
	return c.guard.Validate(ErrStartPreparationCommandIsNotConstructed)
}

// OrderID returns the order to prepare.
func (c StartPreparationCommand) OrderID() kernel.UUID { return c.orderID }
