package queries

import (
	"context"
	"encoding/json"
	"time"

	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/core/domain/model/order"
	"distribution/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads orders straight from the orders table.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates the handler.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// orderRow is the orders row with its JSON columns still encoded.
type orderRow struct {
	ID               uuid.UUID
	BranchID         uuid.UUID
	CustomerID       string
	Items            []byte
	UnavailableItems []byte
	Shipping         []byte
	Status           int
	StatusReason     string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Handle returns errs.ObjectNotFoundError for an unknown order.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderResponse{}, err
	}

	var rows []orderRow
	if err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			branch_id,
			customer_id,
			items,
			unavailable_items,
			shipping,
			status,
			status_reason,
			created_at,
			updated_at
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Scan(&rows).Error; err != nil {
		return OrderResponse{}, err
	}

	if len(rows) == 0 {
		return OrderResponse{}, errs.NewObjectNotFoundError("orderId", query.OrderID().String())
	}

	return rows[0].toResponse()
}

func (r orderRow) toResponse() (OrderResponse, error) {
	id, err := kernel.UUIDFromBytes(r.ID[:])
	if err != nil {
		return OrderResponse{}, err
	}
	branchID, err := kernel.UUIDFromBytes(r.BranchID[:])
	if err != nil {
		return OrderResponse{}, err
	}

	response := OrderResponse{
		ID:               id,
		BranchID:         branchID,
		CustomerID:       r.CustomerID,
		Status:           order.Status(r.Status).String(),
		StatusReason:     r.StatusReason,
		Items:            make([]OrderItemResponse, 0),
		UnavailableItems: make([]UnavailableItemResponse, 0),
		Total:            decimal.Zero,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}

	if err = unmarshalColumn(r.Items, &response.Items); err != nil {
		return OrderResponse{}, err
	}
	if err = unmarshalColumn(r.UnavailableItems, &response.UnavailableItems); err != nil {
		return OrderResponse{}, err
	}
	if err = unmarshalColumn(r.Shipping, &response.Shipping); err != nil {
		return OrderResponse{}, err
	}

	for _, item := range response.Items {
		response.Total = response.Total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	return response, nil
}

func unmarshalColumn(raw []byte, v any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, v)
}
