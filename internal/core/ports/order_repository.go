// Package ports defines the contracts between the distribution core and its
// infrastructure: repositories bound to a unit of work, and the notifier.
package ports

import (
	"context"

	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/core/domain/model/order"
)

// OrderRepository persists order aggregates.
type OrderRepository interface {
	Add(ctx context.Context, aggregate *order.Order) error

	// Update writes the order if its stored version still equals the version
	// it was read with, and fails with a conflict otherwise.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get returns errs.ObjectNotFoundError for an unknown id.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
