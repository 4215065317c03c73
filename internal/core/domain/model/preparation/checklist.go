package preparation

import (
	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/core/domain/model/order"
	"distribution/internal/pkg/errs"
)

// Checklist is the full set of preparation items of one order.
type Checklist struct {
	orderID kernel.UUID
	items   []*Item
}

// NewChecklist wraps the stored items of an order.
func NewChecklist(orderID kernel.UUID, items []*Item) Checklist {
	return Checklist{orderID: orderID, items: items}
}

// BuildChecklist creates one unprepared item per order line, in line order.
func BuildChecklist(o *order.Order) (Checklist, error) {
	lines := o.Items()
	items := make([]*Item, 0, len(lines))
	for _, line := range lines {
		item, err := NewItem(kernel.NewUUID(), o.ID(), line)
		if err != nil {
			return Checklist{}, err
		}
		items = append(items, item)
	}
	return NewChecklist(o.ID(), items), nil
}

// OrderID is the order the checklist belongs to.
func (c Checklist) OrderID() kernel.UUID { return c.orderID }

// Items are the entries in line order.
func (c Checklist) Items() []*Item { return c.items }

// Total counts all entries.
func (c Checklist) Total() int { return len(c.items) }

// IsEmpty reports a checklist that was never started.
func (c Checklist) IsEmpty() bool { return len(c.items) == 0 }

// Prepared counts finished items.
func (c Checklist) Prepared() int {
	n := 0
	for _, item := range c.items {
		if item.IsPrepared() {
			n++
		}
	}
	return n
}

// Remaining lists the ids of unprepared items in checklist order.
func (c Checklist) Remaining() []kernel.UUID {
	remaining := make([]kernel.UUID, 0)
	for _, item := range c.items {
		if !item.IsPrepared() {
			remaining = append(remaining, item.ID())
		}
	}
	return remaining
}

// EnsureComplete returns nil only when the checklist has items and all of
// them are prepared; otherwise an IncompletePreparationError listing what
// still blocks the order.
func (c Checklist) EnsureComplete() error {
	remaining := c.Remaining()
	if c.IsEmpty() || len(remaining) > 0 {
		return errs.NewIncompletePreparationError(c.orderID.String(), kernel.Strings(remaining))
	}
	return nil
}
