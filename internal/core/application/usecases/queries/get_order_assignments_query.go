package queries

import (
	"errors"

	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/pkg/guard"
)

// ErrGetOrderAssignmentsQueryIsNotConstructed reports a GetOrderAssignmentsQuery built without NewGetOrderAssignmentsQuery.
var ErrGetOrderAssignmentsQueryIsNotConstructed = errors.New(
	"GetOrderAssignmentsQuery must be created via NewGetOrderAssignmentsQuery constructor",
)

// GetOrderAssignmentsQuery reads the assignment history of one order.
type GetOrderAssignmentsQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderAssignmentsQuery creates the query for the given order.
func NewGetOrderAssignmentsQuery(orderID kernel.UUID) (GetOrderAssignmentsQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderAssignmentsQuery{}, err
	}
	return GetOrderAssignmentsQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderAssignmentsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderAssignmentsQueryIsNotConstructed)
}

// OrderID returns the order whose history is read.
func (q GetOrderAssignmentsQuery) OrderID() kernel.UUID { return q.orderID }
