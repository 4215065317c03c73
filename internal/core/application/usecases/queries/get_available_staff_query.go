package queries

import (
	"errors"

	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/pkg/guard"
)

// ErrGetAvailableStaffQueryIsNotConstructed reports a GetAvailableStaffQuery built without NewGetAvailableStaffQuery.
var ErrGetAvailableStaffQueryIsNotConstructed = errors.New(
	"GetAvailableStaffQuery must be created via NewGetAvailableStaffQuery constructor",
)

// GetAvailableStaffQuery lists the couriers a distributor can assign an
// order of the branch to.
type GetAvailableStaffQuery struct {
	branchID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetAvailableStaffQuery creates the query for the given branch.
func NewGetAvailableStaffQuery(branchID kernel.UUID) (GetAvailableStaffQuery, error) {
	if err := branchID.Validate(); err != nil {
		return GetAvailableStaffQuery{}, err
	}
	return GetAvailableStaffQuery{branchID: branchID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetAvailableStaffQuery) Validate() error {
	return q.guard.Validate(ErrGetAvailableStaffQueryIsNotConstructed)
}

// BranchID returns the branch whose couriers are listed.
func (q GetAvailableStaffQuery) BranchID() kernel.UUID { return q.branchID }

// AvailableStaffResponse is one courier with spare capacity.
type AvailableStaffResponse struct {
	ID            kernel.UUID
	Name          string
	Phone         string
	CurrentOrders int
	MaxOrders     int
}
