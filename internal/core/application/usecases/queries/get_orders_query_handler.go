package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetOrdersQueryHandler serves the order board of a branch.
type GetOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersQueryHandler creates the handler.
func NewGetOrdersQueryHandler(db *gorm.DB) GetOrdersQueryHandler {
	return GetOrdersQueryHandler{db: db}
}

// Handle lists the matching orders, oldest first. No match is an empty
// slice.
func (h GetOrdersQueryHandler) Handle(ctx context.Context, query GetOrdersQuery) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	tx := h.db.WithContext(ctx).
		Table("orders").
		Select("id, branch_id, customer_id, items, unavailable_items, shipping, status, status_reason, created_at, updated_at").
		Where("branch_id = ?", query.BranchID().Bytes())
	if status, ok := query.Status(); ok {
		tx = tx.Where("status = ?", int(status))
	}

	var rows []orderRow
	if err := tx.Order("created_at, id").Scan(&rows).Error; err != nil {
		return nil, err
	}

	orders := make([]OrderResponse, 0, len(rows))
	for _, row := range rows {
		o, err := row.toResponse()
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}
