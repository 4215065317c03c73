package commands

import (
	"context"
)

// SetStaffAvailabilityCommandHandler takes a courier on or off shift.
type SetStaffAvailabilityCommandHandler struct {
	uowFactory StaffUoWFactory
}

// NewSetStaffAvailabilityCommandHandler creates the handler.
func NewSetStaffAvailabilityCommandHandler(uowFactory StaffUoWFactory) SetStaffAvailabilityCommandHandler {
	return SetStaffAvailabilityCommandHandler{uowFactory: uowFactory}
}

// Handle changes availability only. Assignments the courier already holds
// keep running and release their slots as usual.
func (h SetStaffAvailabilityCommandHandler) Handle(ctx context.Context, cmd SetStaffAvailabilityCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	staffRepo := uow.StaffRepository()

	courier, err := staffRepo.Get(ctx, cmd.StaffID())
	if err != nil {
		return err
	}

	courier.SetAvailability(cmd.IsAvailable())

	if err = staffRepo.Update(ctx, courier); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
