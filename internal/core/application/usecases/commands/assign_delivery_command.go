package commands

import (
	"errors"

	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/pkg/guard"
)

// ErrAssignDeliveryCommandIsNotConstructed reports a AssignDeliveryCommand built without NewAssignDeliveryCommand.
var ErrAssignDeliveryCommandIsNotConstructed = errors.New(
	"AssignDeliveryCommand must be created via NewAssignDeliveryCommand constructor",
)

// AssignDeliveryCommand offers a ready order to a courier. The courier has
// acceptTimeoutMinutes to accept; expectedDeliveryMinutes is the SLA target
// from acceptance to handover.
type AssignDeliveryCommand struct {
	orderID                 kernel.UUID
	staffID                 kernel.UUID
	acceptTimeoutMinutes    int
	expectedDeliveryMinutes int

	guard guard.ConstructorGuard
}

// NewAssignDeliveryCommand checks identifiers only; minute ranges are
// checked when the assignment is created.
func NewAssignDeliveryCommand(
	orderID, staffID kernel.UUID,
	acceptTimeoutMinutes, expectedDeliveryMinutes int,
) (AssignDeliveryCommand, error) {
	if err := errors.Join(orderID.Validate(), staffID.Validate()); err != nil {
		return AssignDeliveryCommand{}, err
	}
	return AssignDeliveryCommand{
		orderID:                 orderID,
		staffID:                 staffID,
		acceptTimeoutMinutes:    acceptTimeoutMinutes,
		expectedDeliveryMinutes: expectedDeliveryMinutes,
		guard:                   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrAssignDeliveryCommandIsNotConstructed)
}

// OrderID returns the ready order to hand out.
func (c AssignDeliveryCommand) OrderID() kernel.UUID { return c.orderID }

// StaffID returns the courier receiving the order.
func (c AssignDeliveryCommand) StaffID() kernel.UUID { return c.staffID }

// AcceptTimeoutMinutes returns how long the courier has to answer.
func (c AssignDeliveryCommand) AcceptTimeoutMinutes() int { return c.acceptTimeoutMinutes }

// ExpectedDeliveryMinutes returns the delivery estimate, zero when unknown.
func (c AssignDeliveryCommand) ExpectedDeliveryMinutes() int { return c.expectedDeliveryMinutes }
