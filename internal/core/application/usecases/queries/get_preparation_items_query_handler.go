package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/core/domain/model/order"
	"distribution/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetPreparationItemsQueryHandler reads the picking checklist of an order.
type GetPreparationItemsQueryHandler struct {
	db *gorm.DB
}

// NewGetPreparationItemsQueryHandler creates the handler.
func NewGetPreparationItemsQueryHandler(db *gorm.DB) GetPreparationItemsQueryHandler {
	return GetPreparationItemsQueryHandler{db: db}
}

type preparationItemRow struct {
	ID          uuid.UUID
	ProductID   string
	ProductName string
	Quantity    int
	IsPrepared  bool
	Notes       string
	PreparedAt  *time.Time
}

// Handle returns errs.ObjectNotFoundError for an unknown order.
func (h GetPreparationItemsQueryHandler) Handle(
	ctx context.Context,
	query GetPreparationItemsQuery,
) (PreparationItemsResponse, error) {
	if err := query.Validate(); err != nil {
		return PreparationItemsResponse{}, err
	}

	db := h.db.WithContext(ctx)
	orderID := query.OrderID()

	var status int
	err := db.Raw(`SELECT status FROM orders WHERE id = ?`, orderID.Bytes()).Row().Scan(&status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return PreparationItemsResponse{}, errs.NewObjectNotFoundError("orderId", orderID.String())
		}
		return PreparationItemsResponse{}, err
	}

	var rows []preparationItemRow
	if err = db.Raw(`
		SELECT
			id,
			product_id,
			product_name,
			quantity,
			is_prepared,
			notes,
			prepared_at
		FROM preparation_items
		WHERE order_id = ?
		ORDER BY position
	`, orderID.Bytes()).Scan(&rows).Error; err != nil {
		return PreparationItemsResponse{}, err
	}

	response := PreparationItemsResponse{
		OrderID:     orderID,
		OrderStatus: order.Status(status).String(),
		Items:       make([]PreparationItemResponse, 0, len(rows)),
		Total:       len(rows),
	}
	for _, row := range rows {
		id, idErr := kernel.UUIDFromBytes(row.ID[:])
		if idErr != nil {
			return PreparationItemsResponse{}, idErr
		}
		if row.IsPrepared {
			response.Prepared++
		}
		response.Items = append(response.Items, PreparationItemResponse{
			ID:          id,
			ProductID:   row.ProductID,
			ProductName: row.ProductName,
			Quantity:    row.Quantity,
			IsPrepared:  row.IsPrepared,
			Notes:       row.Notes,
			PreparedAt:  row.PreparedAt,
		})
	}

	return response, nil
}
