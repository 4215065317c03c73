package queries

import (
	"context"

	"distribution/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAvailableStaffQueryHandler lists the couriers a distributor can pick
// for a ready order.
type GetAvailableStaffQueryHandler struct {
	db      *gorm.DB
	expirer StaleAssignmentExpirer
}

// NewGetAvailableStaffQueryHandler creates the handler. Stale assignments are
// expired through expirer before the couriers are read, so that a slot held
// past its deadline counts as free.
func NewGetAvailableStaffQueryHandler(db *gorm.DB, expirer StaleAssignmentExpirer) GetAvailableStaffQueryHandler {
	return GetAvailableStaffQueryHandler{db: db, expirer: expirer}
}

// Handle expires stale assignments, so that their slots count as free, and
// returns available couriers of the branch that still have a free slot,
// least loaded first, then by name.
func (h GetAvailableStaffQueryHandler) Handle(
	ctx context.Context,
	query GetAvailableStaffQuery,
) ([]AvailableStaffResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if err := expireStale(ctx, h.expirer); err != nil {
		return nil, err
	}

	staff := make([]AvailableStaffResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			s.id,
			s.name,
			s.phone,
			s.current_orders,
			s.max_orders
		FROM delivery_staff s
		JOIN delivery_staff_branches b ON b.staff_id = s.id
		WHERE b.branch_id = ?
			AND s.is_available = ?
			AND s.current_orders < s.max_orders
		ORDER BY s.current_orders, s.name, s.id
	`, query.BranchID().Bytes(), true).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var s AvailableStaffResponse
		var id uuid.UUID

		if err = rows.Scan(&id, &s.Name, &s.Phone, &s.CurrentOrders, &s.MaxOrders); err != nil {
			return nil, err
		}

		s.ID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		staff = append(staff, s)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return staff, nil
}
