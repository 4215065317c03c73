package preparation

import (
	"errors"
	"fmt"
	"time"

	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/core/domain/model/order"
	"distribution/internal/pkg/errs"
)

// ErrItemIsNotConstructed is returned for an Item not created through
// NewItem or RestoreItem.
var ErrItemIsNotConstructed = errors.New("preparation Item must be created via NewItem constructor")

// Item is the checklist entry for one order line.
type Item struct {
	id          kernel.UUID
	orderID     kernel.UUID
	productID   string
	productName string
	quantity    int
	isPrepared  bool
	notes       string
	preparedAt  *time.Time

	isConstructed bool
}

// NewItem creates an unprepared entry for one order line.
func NewItem(id, orderID kernel.UUID, line order.Item) (*Item, error) {
	item := &Item{
		productID:     line.ProductID(),
		productName:   line.Name(),
		quantity:      line.Quantity(),
		isConstructed: true,
	}
	if err := errors.Join(item.setID(id), item.setOrderID(orderID), item.setQuantity(line.Quantity())); err != nil {
		return nil, err
	}
	return item, nil
}

// RestoreItem rebuilds an entry read from storage.
func RestoreItem(
	id, orderID kernel.UUID,
	productID, productName string,
	quantity int,
	isPrepared bool,
	notes string,
	preparedAt *time.Time,
) (*Item, error) {
	item := &Item{
		productID:     productID,
		productName:   productName,
		isPrepared:    isPrepared,
		notes:         notes,
		preparedAt:    preparedAt,
		isConstructed: true,
	}
	if err := errors.Join(item.setID(id), item.setOrderID(orderID), item.setQuantity(quantity)); err != nil {
		return nil, err
	}
	return item, nil
}

// Validate reports whether the item was built by a constructor.
func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

// ID identifies the checklist entry.
func (i *Item) ID() kernel.UUID { return i.id }

// OrderID is the order the entry belongs to.
func (i *Item) OrderID() kernel.UUID { return i.orderID }

// ProductID and ProductName are copied from the order line.
func (i *Item) ProductID() string   { return i.productID }
func (i *Item) ProductName() string { return i.productName }

// Quantity is the number of units to pick.
func (i *Item) Quantity() int { return i.quantity }

// IsPrepared reports whether the picker ticked the entry.
func (i *Item) IsPrepared() bool { return i.isPrepared }

// Notes are the picker's remarks.
func (i *Item) Notes() string { return i.notes }

// PreparedAt is nil while the entry is not prepared.
func (i *Item) PreparedAt() *time.Time { return i.preparedAt }

// Toggle sets the completion flag. Unpreparing is allowed to correct
// mistakes, but only while the parent order is still preparing; once the
// order is handed to delivery the checklist is frozen. A nil notes pointer
// keeps the current notes.
func (i *Item) Toggle(parent order.Status, prepared bool, notes *string, now time.Time) error {
	if parent != order.Preparing {
		return errs.NewInvalidStateError("preparation item", parent.String(), "toggle")
	}
	i.isPrepared = prepared
	if prepared {
		at := now
		i.preparedAt = &at
	} else {
		i.preparedAt = nil
	}
	if notes != nil {
		i.notes = *notes
	}
	return nil
}

func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Item) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderId", err)
	}
	i.orderID = id
	return nil
}

func (i *Item) setQuantity(q int) error {
	if q <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", q))
	}
	i.quantity = q
	return nil
}
