package commands

import (
	"context"

	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/core/domain/model/order"
	"distribution/internal/core/domain/model/preparation"
	"distribution/internal/core/ports"
	"distribution/internal/pkg/errs"
)

// CompletePreparationCommandHandler hands a fully picked order over to
// distribution.
type CompletePreparationCommandHandler struct {
	uowFactory PreparationUoWFactory
	clock      kernel.Clock
	notifier   ports.Notifier
}

// NewCompletePreparationCommandHandler creates a handler that notifies the
// customer once the order is ready.
func NewCompletePreparationCommandHandler(
	uowFactory PreparationUoWFactory,
	clock kernel.Clock,
	notifier ports.Notifier,
) CompletePreparationCommandHandler {
	return CompletePreparationCommandHandler{uowFactory: uowFactory, clock: clock, notifier: notifier}
}

// Handle moves a preparing order to ready. It fails with
// errs.IncompletePreparationError listing the unprepared items, or with no
// items at all when the order has no checklist.
func (h CompletePreparationCommandHandler) Handle(ctx context.Context, cmd CompletePreparationCommand) error {
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

	if o.Status() != order.Preparing {
		return errs.NewInvalidStateError("order", o.Status().String(), "complete preparation of")
	}

	items, err := uow.PreparationRepository().GetByOrder(ctx, o.ID())
	if err != nil {
		return err
	}

	if err = preparation.NewChecklist(o.ID(), items).EnsureComplete(); err != nil {
		return err
	}

	if err = o.MarkReady(now); err != nil {
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
