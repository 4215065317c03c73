package commands

import (
	"errors"
	"strings"

	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/core/domain/model/order"
	"distribution/internal/pkg/errs"
	"distribution/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrCustomerIsRequired = errs.NewValueIsRequiredError("customerId")
)

// CreateOrderCommand takes an order placed at checkout into the pending
// state of a branch.
//
// Example:
//
//	milk, _ := order.NewItem("sku-42", "Milk 1L", 2, decimal.RequireFromString("1.20"))
//	shipping, _ := order.NewShippingInfo("Dana", "+100200300", "Main st 1", "")
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), branchID, "cust-7", []order.Item{milk}, shipping)
type CreateOrderCommand struct {
	orderID    kernel.UUID
	branchID   kernel.UUID
	customerID string
	items      []order.Item
	shipping   order.ShippingInfo

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the order identifiers, the customer and
// the item lines. Errors are joined so that every problem is reported at once.
func NewCreateOrderCommand(
	orderID, branchID kernel.UUID,
	customerID string,
	items []order.Item,
	shipping order.ShippingInfo,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		items:    items,
		shipping: shipping,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setBranchID(branchID),
		cmd.setCustomerID(customerID),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier assigned at checkout.
func (c CreateOrderCommand) OrderID() kernel.UUID { return c.orderID }

// BranchID returns the branch that fulfils the order.
func (c CreateOrderCommand) BranchID() kernel.UUID { return c.branchID }

// CustomerID returns the customer who placed the order.
func (c CreateOrderCommand) CustomerID() string { return c.customerID }

// Items returns the ordered lines.
func (c CreateOrderCommand) Items() []order.Item { return c.items }

// Shipping returns the delivery address and contact.
func (c CreateOrderCommand) Shipping() order.ShippingInfo { return c.shipping }

func (c *CreateOrderCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *CreateOrderCommand) setBranchID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("branchId", err)
	}
	c.branchID = id
	return nil
}

func (c *CreateOrderCommand) setCustomerID(id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrCustomerIsRequired
	}
	c.customerID = id
	return nil
}
