// Package assignmentrepo maps delivery assignments to the
// delivery_assignments table. Rows are never deleted; the table is the
// assignment history of every order.
package assignmentrepo

import (
	"time"

	"distribution/internal/core/domain/model/assignment"
	"distribution/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DeliveryAssignmentDTO is one assignment row.
type DeliveryAssignmentDTO struct {
	ID                      uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID                 uuid.UUID `gorm:"type:uuid;not null;index"`
	StaffID                 uuid.UUID `gorm:"column:delivery_staff_id;type:uuid;not null;index"`
	Status                  int       `gorm:"not null;index"`
	AcceptDeadline          time.Time `gorm:"not null"`
	ExpectedDeliveryMinutes int       `gorm:"not null"`
	AssignedAt              time.Time `gorm:"not null"`
	AcceptedAt              *time.Time
	PickedUpAt              *time.Time
	CustomerArrivedAt       *time.Time
	DeliveredAt             *time.Time
	RejectedAt              *time.Time
	ExpiredAt               *time.Time
	CancelledAt             *time.Time
	RejectReason            string `gorm:"type:text"`
	Version                 int    `gorm:"not null;default:0"`
}

// TableName maps assignments to "delivery_assignments".
func (DeliveryAssignmentDTO) TableName() string {
	return "delivery_assignments"
}

func fromDomain(a *assignment.Assignment) DeliveryAssignmentDTO {
	return DeliveryAssignmentDTO{
		ID:                      a.ID().Bytes(),
		OrderID:                 a.OrderID().Bytes(),
		StaffID:                 a.StaffID().Bytes(),
		Status:                  int(a.Status()),
		AcceptDeadline:          a.AcceptDeadline().UTC(),
		ExpectedDeliveryMinutes: a.ExpectedDeliveryMinutes(),
		AssignedAt:              a.AssignedAt().UTC(),
		AcceptedAt:              utc(a.AcceptedAt()),
		PickedUpAt:              utc(a.PickedUpAt()),
		CustomerArrivedAt:       utc(a.ArrivedAt()),
		DeliveredAt:             utc(a.DeliveredAt()),
		RejectedAt:              utc(a.RejectedAt()),
		ExpiredAt:               utc(a.ExpiredAt()),
		CancelledAt:             utc(a.CancelledAt()),
		RejectReason:            a.RejectReason(),
		Version:                 a.Version(),
	}
}

func toDomain(dto DeliveryAssignmentDTO) (*assignment.Assignment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	staffID, err := kernel.UUIDFromBytes(dto.StaffID[:])
	if err != nil {
		return nil, err
	}

	return assignment.RestoreAssignment(assignment.Snapshot{
		ID:                      id,
		OrderID:                 orderID,
		StaffID:                 staffID,
		Status:                  assignment.Status(dto.Status),
		AcceptDeadline:          dto.AcceptDeadline,
		ExpectedDeliveryMinutes: dto.ExpectedDeliveryMinutes,
		AssignedAt:              dto.AssignedAt,
		AcceptedAt:              dto.AcceptedAt,
		PickedUpAt:              dto.PickedUpAt,
		ArrivedAt:               dto.CustomerArrivedAt,
		DeliveredAt:             dto.DeliveredAt,
		RejectedAt:              dto.RejectedAt,
		ExpiredAt:               dto.ExpiredAt,
		CancelledAt:             dto.CancelledAt,
		RejectReason:            dto.RejectReason,
		Version:                 dto.Version,
	})
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
