// Package staffrepo maps couriers to the delivery_staff table and the
// branches they serve to delivery_staff_branches.
package staffrepo

import (
	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/core/domain/model/staff"

	"github.com/google/uuid"
)

// DeliveryStaffDTO is the courier row. CurrentOrders is the load counter the
// availability checks run against.
type DeliveryStaffDTO struct {
	ID            uuid.UUID        `gorm:"type:uuid;primaryKey"`
	Name          string           `gorm:"type:varchar(255);not null"`
	Phone         string           `gorm:"type:varchar(32)"`
	IsAvailable   bool             `gorm:"not null;default:true"`
	MaxOrders     int              `gorm:"not null;check:chk_delivery_staff_max_orders,max_orders > 0"`
	CurrentOrders int              `gorm:"not null;default:0;check:chk_delivery_staff_current_orders,current_orders >= 0 AND current_orders <= max_orders"`
	Version       int              `gorm:"not null;default:0"`
	Branches      []StaffBranchDTO `gorm:"foreignKey:StaffID;constraint:OnDelete:CASCADE"`
}

// TableName maps couriers to "delivery_staff".
func (DeliveryStaffDTO) TableName() string {
	return "delivery_staff"
}

// StaffBranchDTO links a courier to one branch.
type StaffBranchDTO struct {
	StaffID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	BranchID uuid.UUID `gorm:"type:uuid;primaryKey;index"`
}

// TableName maps the courier to branch links to "delivery_staff_branches".
func (StaffBranchDTO) TableName() string {
	return "delivery_staff_branches"
}

func fromDomain(s *staff.DeliveryStaff) DeliveryStaffDTO {
	staffID := s.ID().Bytes()
	branches := make([]StaffBranchDTO, 0, len(s.BranchIDs()))
	for _, branchID := range s.BranchIDs() {
		branches = append(branches, StaffBranchDTO{StaffID: staffID, BranchID: branchID.Bytes()})
	}

	return DeliveryStaffDTO{
		ID:            staffID,
		Name:          s.Name(),
		Phone:         s.Phone(),
		IsAvailable:   s.IsAvailable(),
		MaxOrders:     s.MaxOrders(),
		CurrentOrders: s.CurrentOrders(),
		Version:       s.Version(),
		Branches:      branches,
	}
}

func toDomain(dto DeliveryStaffDTO) (*staff.DeliveryStaff, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	branchIDs := make([]kernel.UUID, 0, len(dto.Branches))
	for _, b := range dto.Branches {
		branchID, branchErr := kernel.UUIDFromBytes(b.BranchID[:])
		if branchErr != nil {
			return nil, branchErr
		}
		branchIDs = append(branchIDs, branchID)
	}

	return staff.RestoreDeliveryStaff(id, dto.Name, dto.Phone, branchIDs,
		dto.IsAvailable, dto.MaxOrders, dto.CurrentOrders, dto.Version)
}
