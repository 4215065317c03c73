package commands

import (
	"context"

	"distribution/internal/core/domain/model/kernel"
)

// TogglePreparationItemCommandHandler ticks items on the picking checklist.
type TogglePreparationItemCommandHandler struct {
	uowFactory PreparationUoWFactory
	clock      kernel.Clock
}

// NewTogglePreparationItemCommandHandler creates the handler.
func NewTogglePreparationItemCommandHandler(
	uowFactory PreparationUoWFactory,
	clock kernel.Clock,
) TogglePreparationItemCommandHandler {
	return TogglePreparationItemCommandHandler{uowFactory: uowFactory, clock: clock}
}

// Handle flips one item while its order is preparing. The order row is
// written back unchanged so that its version moves: a toggle and a
// concurrent CompletePreparation cannot both commit.
func (h TogglePreparationItemCommandHandler) Handle(ctx context.Context, cmd TogglePreparationItemCommand) error {
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

	item, err := preparationRepo.Get(ctx, cmd.ItemID())
	if err != nil {
		return err
	}

	o, err := orderRepo.Get(ctx, item.OrderID())
	if err != nil {
		return err
	}

	if err = item.Toggle(o.Status(), cmd.IsPrepared(), cmd.Notes(), h.clock.Now()); err != nil {
		return err
	}

	if err = preparationRepo.Update(ctx, item); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
