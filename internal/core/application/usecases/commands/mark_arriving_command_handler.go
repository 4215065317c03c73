package commands

import (
	"context"

	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/core/ports"
)

// StatusArriving is the customer-facing status sent when the courier is at
// the door. The order itself stays out_for_delivery.
const StatusArriving = "arriving"

// MarkArrivingCommandHandler records that the courier is about to reach the
// customer.
type MarkArrivingCommandHandler struct {
	uowFactory UoWFactory
	clock      kernel.Clock
	notifier   ports.Notifier
}

// NewMarkArrivingCommandHandler creates a handler that tells the customer the
// courier is close.
func NewMarkArrivingCommandHandler(
	uowFactory UoWFactory,
	clock kernel.Clock,
	notifier ports.Notifier,
) MarkArrivingCommandHandler {
	return MarkArrivingCommandHandler{uowFactory: uowFactory, clock: clock, notifier: notifier}
}

// Handle requires a picked up assignment.
func (h MarkArrivingCommandHandler) Handle(ctx context.Context, cmd MarkArrivingCommand) error {
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
	now := h.clock.Now()

	a, err := cmd.load(ctx, assignmentRepo)
	if err != nil {
		return err
	}

	if err = a.MarkArriving(now); err != nil {
		return err
	}

	if err = assignmentRepo.Update(ctx, a); err != nil {
		return err
	}

	o, err := uow.OrderRepository().Get(ctx, a.OrderID())
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	notifyCustomer(ctx, h.notifier, o, StatusArriving, now)
	return nil
}
