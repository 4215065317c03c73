package queries

import (
	"context"

	"distribution/internal/core/domain/model/assignment"

	"gorm.io/gorm"
)

// GetDeliveryReportQueryHandler builds the SLA report of a branch.
type GetDeliveryReportQueryHandler struct {
	db      *gorm.DB
	expirer StaleAssignmentExpirer
}

// NewGetDeliveryReportQueryHandler creates the handler.
func NewGetDeliveryReportQueryHandler(db *gorm.DB, expirer StaleAssignmentExpirer) GetDeliveryReportQueryHandler {
	return GetDeliveryReportQueryHandler{db: db, expirer: expirer}
}

// Handle expires stale assignments and summarises those made in the period.
func (h GetDeliveryReportQueryHandler) Handle(ctx context.Context, query GetDeliveryReportQuery) (DeliveryReport, error) {
	if err := query.Validate(); err != nil {
		return DeliveryReport{}, err
	}

	if err := expireStale(ctx, h.expirer); err != nil {
		return DeliveryReport{}, err
	}

	var rows []assignmentRow
	if err := h.db.WithContext(ctx).Raw(`SELECT `+assignmentColumns+assignmentJoins+`
		WHERE o.branch_id = ?
			AND a.assigned_at >= ?
			AND a.assigned_at < ?
		ORDER BY a.assigned_at, a.id`,
		query.BranchID().Bytes(), query.From(), query.To()).Scan(&rows).Error; err != nil {
		return DeliveryReport{}, err
	}

	assignments, err := toAssignmentResponses(rows)
	if err != nil {
		return DeliveryReport{}, err
	}

	report := DeliveryReport{
		BranchID:    query.BranchID(),
		From:        query.From(),
		To:          query.To(),
		Assignments: assignments,
	}
	for _, a := range assignments {
		switch a.Status {
		case assignment.Delivered.String():
			report.Delivered++
			if a.IsLate != nil && *a.IsLate {
				report.Late++
			} else {
				report.OnTime++
			}
		case assignment.Rejected.String():
			report.Rejected++
		case assignment.Expired.String():
			report.Expired++
		case assignment.Cancelled.String():
			report.Cancelled++
		}
	}

	return report, nil
}
