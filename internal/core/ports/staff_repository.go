package ports

import (
	"context"

	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/core/domain/model/staff"
)

// StaffRepository persists couriers together with the branches they serve.
type StaffRepository interface {
	Add(ctx context.Context, aggregate *staff.DeliveryStaff) error

	// Update is a compare-and-swap on the courier's version; the load
	// counter is only ever written through it.
	Update(ctx context.Context, aggregate *staff.DeliveryStaff) error

	Get(ctx context.Context, id kernel.UUID) (*staff.DeliveryStaff, error)
}
