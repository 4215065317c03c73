package ports

import (
	"context"

	"distribution/internal/core/domain/model/assignment"
	"distribution/internal/core/domain/model/kernel"
)

// AssignmentRepository persists delivery assignments. Rows are appended and
// updated, never removed.
type AssignmentRepository interface {
	// Add fails with a conflict when the order already has an active
	// assignment.
	Add(ctx context.Context, aggregate *assignment.Assignment) error

	Update(ctx context.Context, aggregate *assignment.Assignment) error

	Get(ctx context.Context, id kernel.UUID) (*assignment.Assignment, error)

	// GetActiveByOrder returns the active assignment of an order, or
	// errs.ObjectNotFoundError when there is none.
	GetActiveByOrder(ctx context.Context, orderID kernel.UUID) (*assignment.Assignment, error)

	// GetLatestByOrder returns the active assignment of an order if there is
	// one, otherwise the most recently created one.
	GetLatestByOrder(ctx context.Context, orderID kernel.UUID) (*assignment.Assignment, error)

	// GetAllInAssignedStatus returns assignments still waiting for the
	// courier's answer, oldest deadline first.
	GetAllInAssignedStatus(ctx context.Context) ([]*assignment.Assignment, error)

	// GetAssignedByStaff returns the assignments of one courier that are
	// still waiting for an answer, oldest deadline first.
	GetAssignedByStaff(ctx context.Context, staffID kernel.UUID) ([]*assignment.Assignment, error)
}
