package commands

import (
	"context"

	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/core/domain/services"
	"distribution/internal/core/ports"
)

// MarkDeliveredCommandHandler closes a delivery.
type MarkDeliveredCommandHandler struct {
	uowFactory UoWFactory
	clock      kernel.Clock
	notifier   ports.Notifier
}

// NewMarkDeliveredCommandHandler creates a handler for completed deliveries.
func NewMarkDeliveredCommandHandler(
	uowFactory UoWFactory,
	clock kernel.Clock,
	notifier ports.Notifier,
) MarkDeliveredCommandHandler {
	return MarkDeliveredCommandHandler{uowFactory: uowFactory, clock: clock, notifier: notifier}
}

// Handle requires an arriving assignment. It closes the assignment and the
// order and returns the courier's slot.
func (h MarkDeliveredCommandHandler) Handle(ctx context.Context, cmd MarkDeliveredCommand) error {
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

	orderRepo := uow.OrderRepository()
	staffRepo := uow.StaffRepository()
	assignmentRepo := uow.AssignmentRepository()
	now := h.clock.Now()

	a, err := cmd.load(ctx, assignmentRepo)
	if err != nil {
		return err
	}

	o, err := orderRepo.Get(ctx, a.OrderID())
	if err != nil {
		return err
	}

	courier, err := staffRepo.Get(ctx, a.StaffID())
	if err != nil {
		return err
	}

	if err = services.NewDeliveryDispatcher().Deliver(a, o, courier, now); err != nil {
		return err
	}

	if err = assignmentRepo.Update(ctx, a); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if err = staffRepo.Update(ctx, courier); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	notifyCustomer(ctx, h.notifier, o, o.Status().String(), now)
	return nil
}
