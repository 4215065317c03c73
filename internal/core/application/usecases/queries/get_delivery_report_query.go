package queries

import (
	"errors"
	"fmt"
	"time"

	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/pkg/errs"
	"distribution/internal/pkg/guard"
)

// ErrGetDeliveryReportQueryIsNotConstructed reports a GetDeliveryReportQuery built without NewGetDeliveryReportQuery.
var ErrGetDeliveryReportQueryIsNotConstructed = errors.New(
	"GetDeliveryReportQuery must be created via NewGetDeliveryReportQuery constructor",
)

// GetDeliveryReportQuery selects the assignments of a branch made in
// [from, to) for the SLA report.
type GetDeliveryReportQuery struct {
	branchID kernel.UUID
	from     time.Time
	to       time.Time

	guard guard.ConstructorGuard
}

// NewGetDeliveryReportQuery requires from to be before to. Both bounds are
// converted to UTC.
func NewGetDeliveryReportQuery(branchID kernel.UUID, from, to time.Time) (GetDeliveryReportQuery, error) {
	if err := branchID.Validate(); err != nil {
		return GetDeliveryReportQuery{}, err
	}
	if !from.Before(to) {
		return GetDeliveryReportQuery{}, errs.NewValueIsInvalidErrorWithCause(
			"period", fmt.Errorf("from %s is not before to %s", from.Format(time.RFC3339), to.Format(time.RFC3339)))
	}
	return GetDeliveryReportQuery{
		branchID: branchID,
		from:     from.UTC(),
		to:       to.UTC(),
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDeliveryReportQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryReportQueryIsNotConstructed)
}

// BranchID, From and To return the branch and the half-open period.
func (q GetDeliveryReportQuery) BranchID() kernel.UUID { return q.branchID }
func (q GetDeliveryReportQuery) From() time.Time       { return q.from }
func (q GetDeliveryReportQuery) To() time.Time         { return q.to }

// DeliveryReport summarises the selected assignments. OnTime and Late count
// delivered assignments only.
type DeliveryReport struct {
	BranchID    kernel.UUID
	From        time.Time
	To          time.Time
	Assignments []AssignmentResponse
	Delivered   int
	OnTime      int
	Late        int
	Rejected    int
	Expired     int
	Cancelled   int
}
