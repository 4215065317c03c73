package preparationrepo

import (
	"context"
	"errors"

	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/core/domain/model/preparation"
	"distribution/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormPreparationRepository implements ports.PreparationRepository using GORM.
type GormPreparationRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormPreparationRepository creates a new GORM checklist repository.
func NewGormPreparationRepository(db *gorm.DB, tracker aggregateTracker) *GormPreparationRepository {
	return &GormPreparationRepository{
		db:      db,
		tracker: tracker,
	}
}

// AddAll inserts a checklist in one statement. A second checklist for the
// same order collides on the (order_id, position) index and is reported as
// a conflict.
func (r *GormPreparationRepository) AddAll(ctx context.Context, items []*preparation.Item) error {
	if len(items) == 0 {
		return nil
	}

	dtos := make([]PreparationItemDTO, 0, len(items))
	for i, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, fromDomain(item, i))
	}

	if err := r.db.WithContext(ctx).Create(&dtos).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause("preparation", items[0].OrderID().String(),
				"checklist already exists", err)
		}
		return err
	}

	for _, item := range items {
		r.tracker.TrackAggregate(item.ID(), item)
	}
	return nil
}

// Update writes the mutable columns of one item.
func (r *GormPreparationRepository) Update(ctx context.Context, item *preparation.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}

	dto := fromDomain(item, 0)
	result := r.db.WithContext(ctx).
		Model(&PreparationItemDTO{}).
		Where("id = ?", dto.ID).
		Select("is_prepared", "notes", "prepared_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("preparationItem", item.ID().String())
	}

	r.tracker.TrackAggregate(item.ID(), item)
	return nil
}

// Get loads one checklist item by id.
func (r *GormPreparationRepository) Get(ctx context.Context, id kernel.UUID) (*preparation.Item, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PreparationItemDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("preparationItem", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByOrder returns the checklist of an order in order line sequence.
func (r *GormPreparationRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) ([]*preparation.Item, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []PreparationItemDTO
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("position").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	items := make([]*preparation.Item, 0, len(dtos))
	for _, dto := range dtos {
		item, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}
