package commands

import (
	"context"

	"distribution/internal/core/domain/model/kernel"
)

// ReportUnavailableItemsCommandHandler attaches shortages to an order.
type ReportUnavailableItemsCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      kernel.Clock
}

// NewReportUnavailableItemsCommandHandler creates the handler.
func NewReportUnavailableItemsCommandHandler(
	uowFactory OrderUoWFactory,
	clock kernel.Clock,
) ReportUnavailableItemsCommandHandler {
	return ReportUnavailableItemsCommandHandler{uowFactory: uowFactory, clock: clock}
}

// Handle replaces the shortages recorded on the order. The order status
// does not change.
func (h ReportUnavailableItemsCommandHandler) Handle(ctx context.Context, cmd ReportUnavailableItemsCommand) error {
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

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = o.ReportUnavailable(cmd.Items(), h.clock.Now()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
