package commands

import (
	"context"

	"distribution/internal/core/domain/model/kernel"
)

// MarkPickedUpCommandHandler records the pickup at the branch.
type MarkPickedUpCommandHandler struct {
	uowFactory UoWFactory
	clock      kernel.Clock
}

// NewMarkPickedUpCommandHandler creates the handler.
func NewMarkPickedUpCommandHandler(uowFactory UoWFactory, clock kernel.Clock) MarkPickedUpCommandHandler {
	return MarkPickedUpCommandHandler{uowFactory: uowFactory, clock: clock}
}

// Handle requires an accepted assignment.
func (h MarkPickedUpCommandHandler) Handle(ctx context.Context, cmd MarkPickedUpCommand) error {
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

	assignmentRepo := uow.AssignmentRepository()

	a, err := cmd.load(ctx, assignmentRepo)
	if err != nil {
		return err
	}

	if err = a.MarkPickedUp(h.clock.Now()); err != nil {
		return err
	}

	if err = assignmentRepo.Update(ctx, a); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
