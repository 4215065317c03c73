package queries

import (
	"errors"

	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/pkg/guard"
)

// ErrGetActiveDeliveriesQueryIsNotConstructed reports a GetActiveDeliveriesQuery built without NewGetActiveDeliveriesQuery.
var ErrGetActiveDeliveriesQueryIsNotConstructed = errors.New(
	"GetActiveDeliveriesQuery must be created via NewGetActiveDeliveriesQuery constructor",
)

// GetActiveDeliveriesQuery lists assignments still in progress, for one
// branch or for all of them.
type GetActiveDeliveriesQuery struct {
	branchID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetActiveDeliveriesQuery creates the query. A nil branchID lists every
// branch.
func NewGetActiveDeliveriesQuery(branchID *kernel.UUID) (GetActiveDeliveriesQuery, error) {
	if branchID != nil {
		if err := branchID.Validate(); err != nil {
			return GetActiveDeliveriesQuery{}, err
		}
	}
	return GetActiveDeliveriesQuery{branchID: branchID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetActiveDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveDeliveriesQueryIsNotConstructed)
}

// BranchID returns the branch filter and whether one was set.
func (q GetActiveDeliveriesQuery) BranchID() (kernel.UUID, bool) {
	if q.branchID == nil {
		return kernel.UUID{}, false
	}
	return *q.branchID, true
}
