package queries

import (
	"context"

	"distribution/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderAssignmentsQueryHandler reads the assignment history of an order.
type GetOrderAssignmentsQueryHandler struct {
	db      *gorm.DB
	expirer StaleAssignmentExpirer
}

// NewGetOrderAssignmentsQueryHandler creates the handler.
func NewGetOrderAssignmentsQueryHandler(db *gorm.DB, expirer StaleAssignmentExpirer) GetOrderAssignmentsQueryHandler {
	return GetOrderAssignmentsQueryHandler{db: db, expirer: expirer}
}

// Handle returns every assignment the order ever had, in the order they were
// made. An unknown order is NotFound; an order never assigned yields an
// empty history.
func (h GetOrderAssignmentsQueryHandler) Handle(
	ctx context.Context,
	query GetOrderAssignmentsQuery,
) ([]AssignmentResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if err := expireStale(ctx, h.expirer); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)

	var found int64
	if err := db.Table("orders").Where("id = ?", query.OrderID().Bytes()).Count(&found).Error; err != nil {
		return nil, err
	}
	if found == 0 {
		return nil, errs.NewObjectNotFoundError("orderId", query.OrderID().String())
	}

	var rows []assignmentRow
	if err := db.Raw(`SELECT `+assignmentColumns+assignmentJoins+`
		WHERE a.order_id = ?
		ORDER BY a.assigned_at, a.id`, query.OrderID().Bytes()).Scan(&rows).Error; err != nil {
		return nil, err
	}

	return toAssignmentResponses(rows)
}
