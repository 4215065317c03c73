package queries

import (
	"errors"
	"time"

	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/pkg/guard"
)

// ErrGetPreparationItemsQueryIsNotConstructed reports a GetPreparationItemsQuery built without NewGetPreparationItemsQuery.
var ErrGetPreparationItemsQueryIsNotConstructed = errors.New(
	"GetPreparationItemsQuery must be created via NewGetPreparationItemsQuery constructor",
)

// GetPreparationItemsQuery reads the picking checklist of one order.
type GetPreparationItemsQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetPreparationItemsQuery creates the query for the given order.
func NewGetPreparationItemsQuery(orderID kernel.UUID) (GetPreparationItemsQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetPreparationItemsQuery{}, err
	}
	return GetPreparationItemsQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetPreparationItemsQuery) Validate() error {
	return q.guard.Validate(ErrGetPreparationItemsQueryIsNotConstructed)
}

// OrderID returns the order whose checklist is read.
func (q GetPreparationItemsQuery) OrderID() kernel.UUID { return q.orderID }

// PreparationItemsResponse is the checklist with its progress. Items is
// empty until preparation has started.
type PreparationItemsResponse struct {
	OrderID     kernel.UUID
	OrderStatus string
	Items       []PreparationItemResponse
	Total       int
	Prepared    int
}

// PreparationItemResponse is one checklist entry.
type PreparationItemResponse struct {
	ID          kernel.UUID
	ProductID   string
	ProductName string
	Quantity    int
	IsPrepared  bool
	Notes       string
	PreparedAt  *time.Time
}
