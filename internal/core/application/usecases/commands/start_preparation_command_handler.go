package commands

import (
	"context"

	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/core/domain/model/order"
	"distribution/internal/core/domain/model/preparation"
)

// StartPreparationCommandHandler opens the picking checklist of an order.
//
// Example:
//
//	cmd, _ := NewStartPreparationCommand(orderID)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("start preparation: %w", err)
//	}
type StartPreparationCommandHandler struct {
	uowFactory PreparationUoWFactory
	clock      kernel.Clock
}

// NewStartPreparationCommandHandler creates the handler.
func NewStartPreparationCommandHandler(uowFactory PreparationUoWFactory, clock kernel.Clock) StartPreparationCommandHandler {
	return StartPreparationCommandHandler{uowFactory: uowFactory, clock: clock}
}

// Handle turns a confirmed order into a checklist with one item per line and
// moves it to preparing. Repeating the call on an order that is already
// preparing changes nothing.
func (h StartPreparationCommandHandler) Handle(ctx context.Context, cmd StartPreparationCommand) error {
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
	preparationRepo := uow.PreparationRepository()

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	existing, err := preparationRepo.GetByOrder(ctx, o.ID())
	if err != nil {
		return err
	}

	if o.Status() == order.Preparing && len(existing) > 0 {
		return nil
	}

	if o.Status() != order.Preparing {
		if err = o.StartPreparation(h.clock.Now()); err != nil {
			return err
		}
	}

	if len(existing) == 0 {
		checklist, buildErr := preparation.BuildChecklist(o)
		if buildErr != nil {
			return buildErr
		}
		if err = preparationRepo.AddAll(ctx, checklist.Items()); err != nil {
			return err
		}
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
