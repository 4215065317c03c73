package commands

import (
	"errors"

	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/pkg/guard"
)

// ErrCancelOrderCommandIsNotConstructed reports a CancelOrderCommand built without NewCancelOrderCommand.
var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand or NewRejectOrderCommand constructor",
)

// CancelOrderCommand ends an order before delivery. The same command covers a
// cancellation (customer or distributor withdrew it) and a rejection (the
// branch will not fulfil it); the two differ only in the terminal status.
type CancelOrderCommand struct {
	orderID kernel.UUID
	reason  string
	reject  bool

	guard guard.ConstructorGuard
}

// NewCancelOrderCommand creates a customer or branch cancellation.
func NewCancelOrderCommand(orderID kernel.UUID, reason string) (CancelOrderCommand, error) {
	return newCancelOrderCommand(orderID, reason, false)
}

// NewRejectOrderCommand creates a branch rejection. It is handled like a
// cancellation but ends in the rejected status.
func NewRejectOrderCommand(orderID kernel.UUID, reason string) (CancelOrderCommand, error) {
	return newCancelOrderCommand(orderID, reason, true)
}

func newCancelOrderCommand(orderID kernel.UUID, reason string, reject bool) (CancelOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return CancelOrderCommand{}, err
	}
	return CancelOrderCommand{
		orderID: orderID,
		reason:  reason,
		reject:  reject,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

// OrderID returns the order to stop.
func (c CancelOrderCommand) OrderID() kernel.UUID { return c.orderID }

// Reason returns the explanation shown to the customer.
func (c CancelOrderCommand) Reason() string { return c.reason }

// IsReject reports whether the order ends rejected rather than cancelled.
func (c CancelOrderCommand) IsReject() bool { return c.reject }
