package commands

import (
	"context"
	"errors"

	"distribution/internal/core/domain/model/assignment"
	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/core/domain/services"
	"distribution/internal/core/ports"
	"distribution/internal/pkg/errs"
)

// CancelOrderCommandHandler stops an order before it is delivered.
//
// Example:
//
//	cmd, err := NewCancelOrderCommand(orderID, "customer called")
//	if err != nil {
//	    return err
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("cancel order: %w", err)
//	}
type CancelOrderCommandHandler struct {
	uowFactory UoWFactory
	clock      kernel.Clock
	notifier   ports.Notifier
}

// NewCancelOrderCommandHandler creates a handler for cancellations and rejections.
func NewCancelOrderCommandHandler(
	uowFactory UoWFactory,
	clock kernel.Clock,
	notifier ports.Notifier,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		notifier:   notifier,
	}
}

// Handle moves the order to cancelled or rejected. An active assignment is
// cancelled in the same transaction and its courier slot released.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
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
	assignmentRepo := uow.AssignmentRepository()
	staffRepo := uow.StaffRepository()
	now := h.clock.Now()

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if cmd.IsReject() {
		err = o.Reject(cmd.Reason(), now)
	} else {
		err = o.Cancel(cmd.Reason(), now)
	}
	if err != nil {
		return err
	}

	var withdrawn *assignment.Assignment
	active, err := assignmentRepo.GetActiveByOrder(ctx, o.ID())
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		// no courier to release
	case err != nil:
		return err
	default:
		courier, getErr := staffRepo.Get(ctx, active.StaffID())
		if getErr != nil {
			return getErr
		}
		if err = services.NewDeliveryDispatcher().Withdraw(active, courier, now); err != nil {
			return err
		}
		if err = assignmentRepo.Update(ctx, active); err != nil {
			return err
		}
		if err = staffRepo.Update(ctx, courier); err != nil {
			return err
		}
		withdrawn = active
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	notifyCustomer(ctx, h.notifier, o, o.Status().String(), now)
	if withdrawn != nil {
		notifyCourier(ctx, h.notifier, withdrawn, ports.CourierAssignmentRevoked, now)
	}
	return nil
}
