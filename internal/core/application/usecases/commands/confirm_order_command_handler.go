package commands

import (
	"context"

	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/core/ports"
)

// ConfirmOrderCommandHandler accepts a pending order on behalf of the branch.
type ConfirmOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      kernel.Clock
	notifier   ports.Notifier
}

// NewConfirmOrderCommandHandler creates a handler for branch confirmations.
func NewConfirmOrderCommandHandler(
	uowFactory OrderUoWFactory,
	clock kernel.Clock,
	notifier ports.Notifier,
) ConfirmOrderCommandHandler {
	return ConfirmOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		notifier:   notifier,
	}
}

// Handle moves a pending order to confirmed. Any other status is an
// InvalidState error.
func (h ConfirmOrderCommandHandler) Handle(ctx context.Context, cmd ConfirmOrderCommand) error {
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
	now := h.clock.Now()

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = o.Confirm(now); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	notifyCustomer(ctx, h.notifier, o, o.Status().String(), now)
	return nil
}
