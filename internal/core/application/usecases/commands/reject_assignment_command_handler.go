package commands

import (
	"context"

	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/core/domain/services"
)

// RejectAssignmentCommandHandler lets a courier refuse an assigned order.
type RejectAssignmentCommandHandler struct {
	uowFactory UoWFactory
	clock      kernel.Clock
}

// NewRejectAssignmentCommandHandler creates the handler.
func NewRejectAssignmentCommandHandler(uowFactory UoWFactory, clock kernel.Clock) RejectAssignmentCommandHandler {
	return RejectAssignmentCommandHandler{uowFactory: uowFactory, clock: clock}
}

// Handle records the refusal and returns the courier's slot. The order stays
// ready for another assignment.
func (h RejectAssignmentCommandHandler) Handle(ctx context.Context, cmd RejectAssignmentCommand) error {
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
	assignmentRepo := uow.AssignmentRepository()

	a, err := cmd.load(ctx, assignmentRepo)
	if err != nil {
		return err
	}

	courier, err := staffRepo.Get(ctx, a.StaffID())
	if err != nil {
		return err
	}

	if err = services.NewDeliveryDispatcher().Reject(a, courier, cmd.Reason(), h.clock.Now()); err != nil {
		return err
	}

	if err = assignmentRepo.Update(ctx, a); err != nil {
		return err
	}

	if err = staffRepo.Update(ctx, courier); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
