package queries

import (
	"errors"
	"time"

	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrGetOrderQueryIsNotConstructed reports a GetOrderQuery built without NewGetOrderQuery.
var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery reads one order with its lines and shipping details.
//
// Example:
//
//	query, err := NewGetOrderQuery(orderID)
//	if err != nil {
//	    return err
//	}
//
//	o, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("get order: %w", err)
//	}
//	fmt.Printf("%s is %s, total %s\n", o.ID, o.Status, o.Total)
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates the query for the given order.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the requested order.
func (q GetOrderQuery) OrderID() kernel.UUID { return q.orderID }

// OrderResponse is the full order as the console shows it.
type OrderResponse struct {
	ID               kernel.UUID
	BranchID         kernel.UUID
	CustomerID       string
	Status           string
	StatusReason     string
	Items            []OrderItemResponse
	UnavailableItems []UnavailableItemResponse
	Shipping         ShippingResponse
	Total            decimal.Decimal
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// OrderItemResponse is one ordered line.
type OrderItemResponse struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// UnavailableItemResponse is one reported shortage.
type UnavailableItemResponse struct {
	ProductID              string `json:"productId"`
	Name                   string `json:"name"`
	Quantity               int    `json:"quantity"`
	SubstitutionPreference string `json:"substitutionPreference"`
}

// ShippingResponse is the delivery destination.
type ShippingResponse struct {
	RecipientName string `json:"recipientName"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	Notes         string `json:"notes,omitempty"`
}
