package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetActiveDeliveriesQueryHandler serves the live delivery board.
//
// Example:
//
//	handler := NewGetActiveDeliveriesQueryHandler(db, expirer)
//	query, _ := NewGetActiveDeliveriesQuery(&branchID)
//
//	active, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	for _, a := range active {
//	    fmt.Printf("%s %s %s\n", a.OrderID, a.StaffName, a.Status)
//	}
type GetActiveDeliveriesQueryHandler struct {
	db      *gorm.DB
	expirer StaleAssignmentExpirer
}

// NewGetActiveDeliveriesQueryHandler creates the handler. A nil expirer
// skips the lazy expiry.
func NewGetActiveDeliveriesQueryHandler(db *gorm.DB, expirer StaleAssignmentExpirer) GetActiveDeliveriesQueryHandler {
	return GetActiveDeliveriesQueryHandler{db: db, expirer: expirer}
}

// Handle expires stale assignments and then lists the active ones, oldest
// assignment first.
func (h GetActiveDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query GetActiveDeliveriesQuery,
) ([]AssignmentResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if err := expireStale(ctx, h.expirer); err != nil {
		return nil, err
	}

	stmt := `SELECT ` + assignmentColumns + assignmentJoins + `
		WHERE a.status IN ?`
	args := []any{activeAssignmentStatuses()}
	if branchID, ok := query.BranchID(); ok {
		stmt += ` AND o.branch_id = ?`
		args = append(args, branchID.Bytes())
	}
	stmt += ` ORDER BY a.assigned_at, a.id`

	var rows []assignmentRow
	if err := h.db.WithContext(ctx).Raw(stmt, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}

	return toAssignmentResponses(rows)
}
