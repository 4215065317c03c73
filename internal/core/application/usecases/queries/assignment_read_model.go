package queries

import (
	"time"

	"distribution/internal/core/domain/model/assignment"
	"distribution/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AssignmentResponse is one assignment with its courier and SLA figures.
// DeliveryMinutes and IsLate are set once the assignment is delivered.
type AssignmentResponse struct {
	ID                      kernel.UUID
	OrderID                 kernel.UUID
	BranchID                kernel.UUID
	StaffID                 kernel.UUID
	StaffName               string
	Status                  string
	AcceptDeadline          time.Time
	ExpectedDeliveryMinutes int
	AssignedAt              time.Time
	AcceptedAt              *time.Time
	PickedUpAt              *time.Time
	ArrivedAt               *time.Time
	DeliveredAt             *time.Time
	RejectedAt              *time.Time
	ExpiredAt               *time.Time
	CancelledAt             *time.Time
	RejectReason            string
	DeliveryMinutes         *float64
	IsLate                  *bool
}

const assignmentColumns = `
	a.id,
	a.order_id,
	o.branch_id,
	a.delivery_staff_id,
	s.name AS staff_name,
	a.status,
	a.accept_deadline,
	a.expected_delivery_minutes,
	a.assigned_at,
	a.accepted_at,
	a.picked_up_at,
	a.customer_arrived_at,
	a.delivered_at,
	a.rejected_at,
	a.expired_at,
	a.cancelled_at,
	a.reject_reason`

const assignmentJoins = `
	FROM delivery_assignments a
	JOIN orders o ON o.id = a.order_id
	JOIN delivery_staff s ON s.id = a.delivery_staff_id`

type assignmentRow struct {
	ID                      uuid.UUID
	OrderID                 uuid.UUID
	BranchID                uuid.UUID
	DeliveryStaffID         uuid.UUID
	StaffName               string
	Status                  int
	AcceptDeadline          time.Time
	ExpectedDeliveryMinutes int
	AssignedAt              time.Time
	AcceptedAt              *time.Time
	PickedUpAt              *time.Time
	CustomerArrivedAt       *time.Time
	DeliveredAt             *time.Time
	RejectedAt              *time.Time
	ExpiredAt               *time.Time
	CancelledAt             *time.Time
	RejectReason            string
}

func (r assignmentRow) toResponse() (AssignmentResponse, error) {
	id, err := kernel.UUIDFromBytes(r.ID[:])
	if err != nil {
		return AssignmentResponse{}, err
	}
	orderID, err := kernel.UUIDFromBytes(r.OrderID[:])
	if err != nil {
		return AssignmentResponse{}, err
	}
	branchID, err := kernel.UUIDFromBytes(r.BranchID[:])
	if err != nil {
		return AssignmentResponse{}, err
	}
	staffID, err := kernel.UUIDFromBytes(r.DeliveryStaffID[:])
	if err != nil {
		return AssignmentResponse{}, err
	}

	response := AssignmentResponse{
		ID:                      id,
		OrderID:                 orderID,
		BranchID:                branchID,
		StaffID:                 staffID,
		StaffName:               r.StaffName,
		Status:                  assignment.Status(r.Status).String(),
		AcceptDeadline:          r.AcceptDeadline,
		ExpectedDeliveryMinutes: r.ExpectedDeliveryMinutes,
		AssignedAt:              r.AssignedAt,
		AcceptedAt:              r.AcceptedAt,
		PickedUpAt:              r.PickedUpAt,
		ArrivedAt:               r.CustomerArrivedAt,
		DeliveredAt:             r.DeliveredAt,
		RejectedAt:              r.RejectedAt,
		ExpiredAt:               r.ExpiredAt,
		CancelledAt:             r.CancelledAt,
		RejectReason:            r.RejectReason,
	}

	if r.AcceptedAt != nil && r.DeliveredAt != nil {
		d := r.DeliveredAt.Sub(*r.AcceptedAt)
		minutes := d.Minutes()
		late := d > time.Duration(r.ExpectedDeliveryMinutes)*time.Minute
		response.DeliveryMinutes = &minutes
		response.IsLate = &late
	}

	return response, nil
}

func toAssignmentResponses(rows []assignmentRow) ([]AssignmentResponse, error) {
	assignments := make([]AssignmentResponse, 0, len(rows))
	for _, row := range rows {
		a, err := row.toResponse()
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	return assignments, nil
}

func activeAssignmentStatuses() []int {
	statuses := assignment.ActiveStatuses()
	ints := make([]int, 0, len(statuses))
	for _, s := range statuses {
		ints = append(ints, int(s))
	}
	return ints
}
