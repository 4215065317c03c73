package ports

import (
	"context"

	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/core/domain/model/preparation"
)

// PreparationRepository persists the checklist items of orders.
type PreparationRepository interface {
	// AddAll stores a whole checklist in one statement.
	AddAll(ctx context.Context, items []*preparation.Item) error

	Update(ctx context.Context, item *preparation.Item) error

	Get(ctx context.Context, id kernel.UUID) (*preparation.Item, error)

	// GetByOrder returns the checklist items of an order in creation order.
	// An order without a checklist yields an empty slice.
	GetByOrder(ctx context.Context, orderID kernel.UUID) ([]*preparation.Item, error)
}
