package assignmentrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"distribution/internal/core/domain/model/assignment"
	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/pkg/errs"

	"gorm.io/gorm"
)

// ActiveOrderIndex enforces at most one active assignment per order.
const ActiveOrderIndex = "ux_delivery_assignments_active_order"

// GormAssignmentRepository implements ports.AssignmentRepository using GORM.
type GormAssignmentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormAssignmentRepository creates a new GORM assignment repository.
func NewGormAssignmentRepository(db *gorm.DB, tracker aggregateTracker) *GormAssignmentRepository {
	return &GormAssignmentRepository{
		db:      db,
		tracker: tracker,
	}
}

// CreateActiveOrderIndex creates the partial unique index backing the one
// active assignment per order rule. The statement is valid for both
// PostgreSQL and SQLite.
func CreateActiveOrderIndex(db *gorm.DB) error {
	return db.Exec(fmt.Sprintf(
		"CREATE UNIQUE INDEX IF NOT EXISTS %s ON delivery_assignments (order_id) WHERE status IN (%s)",
		ActiveOrderIndex, activeStatusList(),
	)).Error
}

// Add inserts a new assignment. A second active assignment for the same
// order violates ActiveOrderIndex and is reported as a conflict.
func (r *GormAssignmentRepository) Add(ctx context.Context, aggregate *assignment.Assignment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if isUniqueViolation(err) {
			return errs.NewConflictErrorWithCause("order", aggregate.OrderID().String(),
				"already has an active assignment", err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the assignment back if its version is unchanged since it
// was read.
func (r *GormAssignmentRepository) Update(ctx context.Context, aggregate *assignment.Assignment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = aggregate.Version() + 1

	result := r.db.WithContext(ctx).
		Model(&DeliveryAssignmentDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
		Select("*").
		Omit("id", "order_id", "delivery_staff_id", "assigned_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewConflictErrorWithCause("assignment", aggregate.ID().String(), "modified concurrently",
			errs.NewVersionIsInvalidError("version"))
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get loads an assignment by id.
func (r *GormAssignmentRepository) Get(ctx context.Context, id kernel.UUID) (*assignment.Assignment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DeliveryAssignmentDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("assignment", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetActiveByOrder returns the assignment currently holding the order.
func (r *GormAssignmentRepository) GetActiveByOrder(ctx context.Context, orderID kernel.UUID) (*assignment.Assignment, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto DeliveryAssignmentDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ? AND status IN ?", orderID.Bytes(), activeStatuses()).
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("orderId", orderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetLatestByOrder prefers the active assignment, then the most recent one.
func (r *GormAssignmentRepository) GetLatestByOrder(ctx context.Context, orderID kernel.UUID) (*assignment.Assignment, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto DeliveryAssignmentDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order(fmt.Sprintf("CASE WHEN status IN (%s) THEN 0 ELSE 1 END, assigned_at DESC", activeStatusList())).
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("orderId", orderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllInAssignedStatus returns every unanswered assignment, earliest
// deadline first.
func (r *GormAssignmentRepository) GetAllInAssignedStatus(ctx context.Context) ([]*assignment.Assignment, error) {
	var dtos []DeliveryAssignmentDTO
	if err := r.db.WithContext(ctx).
		Where("status = ?", int(assignment.Assigned)).
		Order("accept_deadline").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

// GetAssignedByStaff returns the unanswered assignments of one courier,
// earliest deadline first.
func (r *GormAssignmentRepository) GetAssignedByStaff(ctx context.Context, staffID kernel.UUID) ([]*assignment.Assignment, error) {
	if err := staffID.Validate(); err != nil {
		return nil, err
	}

	var dtos []DeliveryAssignmentDTO
	if err := r.db.WithContext(ctx).
		Where("delivery_staff_id = ? AND status = ?", staffID.Bytes(), int(assignment.Assigned)).
		Order("accept_deadline").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

func toDomainAll(dtos []DeliveryAssignmentDTO) ([]*assignment.Assignment, error) {
	assignments := make([]*assignment.Assignment, 0, len(dtos))
	for _, dto := range dtos {
		a, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	return assignments, nil
}

func activeStatuses() []int {
	statuses := assignment.ActiveStatuses()
	ints := make([]int, 0, len(statuses))
	for _, s := range statuses {
		ints = append(ints, int(s))
	}
	return ints
}

func activeStatusList() string {
	parts := make([]string, 0, 4)
	for _, s := range activeStatuses() {
		parts = append(parts, fmt.Sprint(s))
	}
	return strings.Join(parts, ", ")
}

// isUniqueViolation recognises the active-order index collision whether or
// not the dialector translates driver errors.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}
