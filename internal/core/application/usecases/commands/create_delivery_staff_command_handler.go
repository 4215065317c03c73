package commands

import (
	"context"

	"distribution/internal/core/domain/model/staff"
)

// CreateDeliveryStaffCommandHandler registers a courier with an empty load.
type CreateDeliveryStaffCommandHandler struct {
	uowFactory StaffUoWFactory
}

// NewCreateDeliveryStaffCommandHandler creates a handler for courier registration.
func NewCreateDeliveryStaffCommandHandler(uowFactory StaffUoWFactory) CreateDeliveryStaffCommandHandler {
	return CreateDeliveryStaffCommandHandler{uowFactory: uowFactory}
}

// Handle stores the courier as available.
func (h CreateDeliveryStaffCommandHandler) Handle(ctx context.Context, cmd CreateDeliveryStaffCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	courier, err := staff.NewDeliveryStaff(cmd.StaffID(), cmd.Name(), cmd.Phone(), cmd.BranchIDs(), cmd.MaxOrders())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.StaffRepository().Add(ctx, courier); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
