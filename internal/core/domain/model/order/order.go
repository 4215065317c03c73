package order

import (
	"errors"
	"fmt"
	"time"

	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned for an Order not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrOrderHasNoItems is returned when an order is placed without lines.
	ErrOrderHasNoItems = errs.NewValueIsRequiredError("items")
)

// Order is the aggregate root for one customer order at one branch.
//
// Invariants:
//   - id and branchID are valid and never change
//   - items are non-empty and never change
//   - status changes only through Status.TransitionTo
//
// version is the optimistic-lock counter read from storage; repositories
// compare it on update so that two writers cannot both move the same order.
type Order struct {
	id               kernel.UUID
	branchID         kernel.UUID
	customerID       string
	items            []Item
	unavailableItems []UnavailableItem
	shipping         ShippingInfo
	status           Status
	statusReason     string
	createdAt        time.Time
	updatedAt        time.Time
	version          int

	isConstructed bool
}

// NewOrder places an order in Pending status.
//
// Example:
//
//	item, _ := order.NewItem("sku-42", "Milk 1L", 2, decimal.RequireFromString("1.20"))
//	shipping, _ := order.NewShippingInfo("Dana", "+100200300", "Main st 1", "")
//	o, err := order.NewOrder(kernel.NewUUID(), branchID, "cust-7", []order.Item{item}, shipping, clock.Now())
func NewOrder(
	id, branchID kernel.UUID,
	customerID string,
	items []Item,
	shipping ShippingInfo,
	now time.Time,
) (*Order, error) {
	o := &Order{
		customerID:    customerID,
		shipping:      shipping,
		status:        Pending,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setBranchID(branchID),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Snapshot carries persisted order state into RestoreOrder.
type Snapshot struct {
	ID               kernel.UUID
	BranchID         kernel.UUID
	CustomerID       string
	Items            []Item
	UnavailableItems []UnavailableItem
	Shipping         ShippingInfo
	Status           Status
	StatusReason     string
	CreatedAt        time.Time
	UpdatedAt        time.Time
	Version          int
}

// RestoreOrder rebuilds an order read from storage. The same invariants as
// NewOrder are checked, plus the validity of the stored status.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		customerID:       s.CustomerID,
		unavailableItems: s.UnavailableItems,
		shipping:         s.Shipping,
		statusReason:     s.StatusReason,
		createdAt:        s.CreatedAt,
		updatedAt:        s.UpdatedAt,
		version:          s.Version,
		isConstructed:    true,
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setBranchID(s.BranchID),
		o.setItems(s.Items),
		o.setStatus(s.Status),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate reports whether the order was built by a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID identifies the order.
func (o *Order) ID() kernel.UUID { return o.id }

// BranchID is the store that fulfils the order.
func (o *Order) BranchID() kernel.UUID { return o.branchID }

// CustomerID is the opaque id of the customer from checkout.
func (o *Order) CustomerID() string { return o.customerID }

// Shipping is the delivery destination.
func (o *Order) Shipping() ShippingInfo { return o.shipping }

// Status is the current lifecycle status.
func (o *Order) Status() Status { return o.status }

// CreatedAt is when the order was placed.
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// UpdatedAt is when the order last changed.
func (o *Order) UpdatedAt() time.Time { return o.updatedAt }

// Version is the optimistic-lock counter read from storage.
func (o *Order) Version() int { return o.version }

// StatusReason is the free-text reason recorded with a cancel or reject.
func (o *Order) StatusReason() string { return o.statusReason }

// Items returns a copy of the order lines.
func (o *Order) Items() []Item {
	return append([]Item(nil), o.items...)
}

// UnavailableItems returns a copy of the recorded shortages.
func (o *Order) UnavailableItems() []UnavailableItem {
	return append([]UnavailableItem(nil), o.unavailableItems...)
}

// Total sums the line subtotals.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// Confirm is the entry gate: pending -> confirmed.
func (o *Order) Confirm(now time.Time) error {
	return o.transition(Confirmed, now)
}

// StartPreparation moves a confirmed order to preparing.
func (o *Order) StartPreparation(now time.Time) error {
	return o.transition(Preparing, now)
}

// MarkReady moves a preparing order to ready. Whether every preparation item
// is done is checked by the preparation checklist before this is called.
func (o *Order) MarkReady(now time.Time) error {
	return o.transition(Ready, now)
}

// MarkOutForDelivery is applied when a courier accepts the assignment.
func (o *Order) MarkOutForDelivery(now time.Time) error {
	return o.transition(OutForDelivery, now)
}

// MarkDelivered closes the order after the courier hands it over.
func (o *Order) MarkDelivered(now time.Time) error {
	return o.transition(Delivered, now)
}

// Cancel ends the order on behalf of the customer or the distributor.
func (o *Order) Cancel(reason string, now time.Time) error {
	if err := o.transition(Cancelled, now); err != nil {
		return err
	}
	o.statusReason = reason
	return nil
}

// Reject ends the order because the branch will not fulfil it.
func (o *Order) Reject(reason string, now time.Time) error {
	if err := o.transition(Rejected, now); err != nil {
		return err
	}
	o.statusReason = reason
	return nil
}

// ReportUnavailable records shortages found while picking. Allowed while the
// order is confirmed or preparing; every product must be a line of the order.
// A later report for the same product replaces the earlier one.
func (o *Order) ReportUnavailable(items []UnavailableItem, now time.Time) error {
	if o.status != Confirmed && o.status != Preparing {
		return errs.NewInvalidStateError("order", o.status.String(), "report unavailable items for")
	}
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("unavailableItems")
	}

	for _, item := range items {
		if !o.hasProduct(item.ProductID()) {
			return errs.NewValueIsInvalidErrorWithCause(
				"productId", fmt.Errorf("%s is not a line of order %s", item.ProductID(), o.id))
		}
	}

	for _, item := range items {
		replaced := false
		for i := range o.unavailableItems {
			if o.unavailableItems[i].ProductID() == item.ProductID() {
				o.unavailableItems[i] = item
				replaced = true
				break
			}
		}
		if !replaced {
			o.unavailableItems = append(o.unavailableItems, item)
		}
	}
	o.updatedAt = now
	return nil
}

func (o *Order) transition(target Status, now time.Time) error {
	next, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}
	o.status = next
	o.updatedAt = now
	return nil
}

func (o *Order) hasProduct(productID string) bool {
	for _, item := range o.items {
		if item.ProductID() == productID {
			return true
		}
	}
	return false
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setBranchID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("branchId", err)
	}
	o.branchID = id
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return ErrOrderHasNoItems
	}
	o.items = append([]Item(nil), items...)
	return nil
}

func (o *Order) setStatus(s Status) error {
	if err := s.Validate(); err != nil {
		return err
	}
	o.status = s
	return nil
}
