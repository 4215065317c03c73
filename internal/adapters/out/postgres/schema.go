package postgres

import (
	"distribution/internal/adapters/out/postgres/assignmentrepo"
	"distribution/internal/adapters/out/postgres/orderrepo"
	"distribution/internal/adapters/out/postgres/preparationrepo"
	"distribution/internal/adapters/out/postgres/staffrepo"

	"gorm.io/gorm"
)

// Models lists every table the service owns.
func Models() []any {
	return []any{
		&orderrepo.OrderDTO{},
		&preparationrepo.PreparationItemDTO{},
		&staffrepo.DeliveryStaffDTO{},
		&staffrepo.StaffBranchDTO{},
		&assignmentrepo.DeliveryAssignmentDTO{},
	}
}

// Migrate creates or updates the tables and the indexes GORM tags cannot
// express.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return err
	}
	return assignmentrepo.CreateActiveOrderIndex(db)
}
