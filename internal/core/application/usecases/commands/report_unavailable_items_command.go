package commands

import (
	"errors"

	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/core/domain/model/order"
	"distribution/internal/pkg/errs"
	"distribution/internal/pkg/guard"
)

// ErrReportUnavailableItemsCommandIsNotConstructed reports a ReportUnavailableItemsCommand built without NewReportUnavailableItemsCommand.
var ErrReportUnavailableItemsCommandIsNotConstructed = errors.New(
	"ReportUnavailableItemsCommand must be created via NewReportUnavailableItemsCommand constructor",
)

// ReportUnavailableItemsCommand records shortages found while picking, each
// with the customer's substitution preference.
type ReportUnavailableItemsCommand struct {
	orderID kernel.UUID
	items   []order.UnavailableItem

	guard guard.ConstructorGuard
}

// NewReportUnavailableItemsCommand requires at least one item.
func NewReportUnavailableItemsCommand(
	orderID kernel.UUID,
	items []order.UnavailableItem,
) (ReportUnavailableItemsCommand, error) {
	if err := orderID.Validate(); err != nil {
		return ReportUnavailableItemsCommand{}, err
	}
	if len(items) == 0 {
		return ReportUnavailableItemsCommand{}, errs.NewValueIsRequiredError("unavailableItems")
	}
	return ReportUnavailableItemsCommand{
		orderID: orderID,
		items:   items,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ReportUnavailableItemsCommand) Validate() error {
	return c.guard.Validate(ErrReportUnavailableItemsCommandIsNotConstructed)
}

// OrderID returns the order being picked.
func (c ReportUnavailableItemsCommand) OrderID() kernel.UUID { return c.orderID }

// Items returns the reported shortages.
func (c ReportUnavailableItemsCommand) Items() []order.UnavailableItem { return c.items }
