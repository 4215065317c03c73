// Package preparationrepo maps preparation checklist items to the
// preparation_items table.
package preparationrepo

import (
	"time"

	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/core/domain/model/preparation"

	"github.com/google/uuid"
)

// PreparationItemDTO is one checklist row. Position keeps the order of the
// lines the checklist was built from.
type PreparationItemDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_preparation_items_order_position"`
	Position    int       `gorm:"not null;uniqueIndex:ux_preparation_items_order_position"`
	ProductID   string    `gorm:"type:varchar(64);not null"`
	ProductName string    `gorm:"type:varchar(255);not null"`
	Quantity    int       `gorm:"not null"`
	IsPrepared  bool      `gorm:"not null;default:false"`
	Notes       string    `gorm:"type:text"`
	PreparedAt  *time.Time
}

// TableName maps checklist items to "preparation_items".
func (PreparationItemDTO) TableName() string {
	return "preparation_items"
}

func fromDomain(item *preparation.Item, position int) PreparationItemDTO {
	var preparedAt *time.Time
	if at := item.PreparedAt(); at != nil {
		utc := at.UTC()
		preparedAt = &utc
	}

	return PreparationItemDTO{
		ID:          item.ID().Bytes(),
		OrderID:     item.OrderID().Bytes(),
		Position:    position,
		ProductID:   item.ProductID(),
		ProductName: item.ProductName(),
		Quantity:    item.Quantity(),
		IsPrepared:  item.IsPrepared(),
		Notes:       item.Notes(),
		PreparedAt:  preparedAt,
	}
}

func toDomain(dto PreparationItemDTO) (*preparation.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	return preparation.RestoreItem(id, orderID, dto.ProductID, dto.ProductName,
		dto.Quantity, dto.IsPrepared, dto.Notes, dto.PreparedAt)
}
