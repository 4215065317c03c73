package queries

import (
	"errors"

	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/core/domain/model/order"
	"distribution/internal/pkg/guard"
)

// ErrGetOrdersQueryIsNotConstructed reports a GetOrdersQuery built without NewGetOrdersQuery.
var ErrGetOrdersQueryIsNotConstructed = errors.New(
	"GetOrdersQuery must be created via NewGetOrdersQuery constructor",
)

// GetOrdersQuery is the distributor order board: orders of a branch,
// optionally narrowed to one status, oldest first.
type GetOrdersQuery struct {
	branchID kernel.UUID
	status   *order.Status

	guard guard.ConstructorGuard
}

// NewGetOrdersQuery creates the query. A nil status lists every status.
func NewGetOrdersQuery(branchID kernel.UUID, status *order.Status) (GetOrdersQuery, error) {
	if err := branchID.Validate(); err != nil {
		return GetOrdersQuery{}, err
	}
	if status != nil {
		if err := status.Validate(); err != nil {
			return GetOrdersQuery{}, err
		}
	}
	return GetOrdersQuery{branchID: branchID, status: status, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersQueryIsNotConstructed)
}

// BranchID returns the branch of the board.
func (q GetOrdersQuery) BranchID() kernel.UUID { return q.branchID }

// Status returns the status filter and whether one was set.
func (q GetOrdersQuery) Status() (order.Status, bool) {
	if q.status == nil {
		return order.Unknown, false
	}
	return *q.status, true
}
