package staffrepo

import (
	"context"
	"errors"

	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/core/domain/model/staff"
	"distribution/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormStaffRepository implements ports.StaffRepository using GORM.
type GormStaffRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormStaffRepository creates a new GORM courier repository.
func NewGormStaffRepository(db *gorm.DB, tracker aggregateTracker) *GormStaffRepository {
	return &GormStaffRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts the courier together with its branch links.
func (r *GormStaffRepository) Add(ctx context.Context, aggregate *staff.DeliveryStaff) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause("deliveryStaff", aggregate.ID().String(), "already exists", err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the courier's scalar columns as a compare-and-swap on
// version. The branch set is fixed at registration and is not rewritten.
func (r *GormStaffRepository) Update(ctx context.Context, aggregate *staff.DeliveryStaff) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&DeliveryStaffDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
		Updates(map[string]any{
			"name":           dto.Name,
			"phone":          dto.Phone,
			"is_available":   dto.IsAvailable,
			"max_orders":     dto.MaxOrders,
			"current_orders": dto.CurrentOrders,
			"version":        aggregate.Version() + 1,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewConflictErrorWithCause("deliveryStaff", aggregate.ID().String(), "modified concurrently",
			errs.NewVersionIsInvalidError("version"))
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get loads a courier with the branches it serves.
func (r *GormStaffRepository) Get(ctx context.Context, id kernel.UUID) (*staff.DeliveryStaff, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DeliveryStaffDTO
	if err := r.db.WithContext(ctx).Preload("Branches").First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("deliveryStaff", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
