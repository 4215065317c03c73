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

// AssignDeliveryCommandHandler hands a ready order to a courier.
type AssignDeliveryCommandHandler struct {
	uowFactory UoWFactory
	clock      kernel.Clock
	notifier   ports.Notifier
}

// NewAssignDeliveryCommandHandler creates a handler for distributor assignments.
// Notifications go out through notifier once the transaction is committed.
func NewAssignDeliveryCommandHandler(
	uowFactory UoWFactory,
	clock kernel.Clock,
	notifier ports.Notifier,
) AssignDeliveryCommandHandler {
	return AssignDeliveryCommandHandler{uowFactory: uowFactory, clock: clock, notifier: notifier}
}

// Handle creates an assigned row and takes one slot of the courier. Stale
// assignments that still hold the order or a slot of the courier are expired
// first, in the same transaction, so that neither waits for the sweep.
func (h AssignDeliveryCommandHandler) Handle(ctx context.Context, cmd AssignDeliveryCommand) (*assignment.Assignment, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	staffRepo := uow.StaffRepository()
	assignmentRepo := uow.AssignmentRepository()
	dispatcher := services.NewDeliveryDispatcher()
	now := h.clock.Now()

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	var expired []*assignment.Assignment

	active, err := assignmentRepo.GetActiveByOrder(ctx, o.ID())
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		active = nil
	case err != nil:
		return nil, err
	case active.IsStale(now):
		previous, getErr := staffRepo.Get(ctx, active.StaffID())
		if getErr != nil {
			return nil, getErr
		}
		if err = dispatcher.Expire(active, previous, now); err != nil {
			return nil, err
		}
		if err = assignmentRepo.Update(ctx, active); err != nil {
			return nil, err
		}
		if err = staffRepo.Update(ctx, previous); err != nil {
			return nil, err
		}
		expired = append(expired, active)
	}

	courier, err := staffRepo.Get(ctx, cmd.StaffID())
	if err != nil {
		return nil, err
	}

	waiting, err := assignmentRepo.GetAssignedByStaff(ctx, courier.ID())
	if err != nil {
		return nil, err
	}
	for _, a := range waiting {
		if !a.IsStale(now) {
			continue
		}
		if err = dispatcher.Expire(a, courier, now); err != nil {
			return nil, err
		}
		if err = assignmentRepo.Update(ctx, a); err != nil {
			return nil, err
		}
		expired = append(expired, a)
	}

	created, err := dispatcher.Assign(o, courier, active,
		cmd.AcceptTimeoutMinutes(), cmd.ExpectedDeliveryMinutes(), now)
	if err != nil {
		return nil, err
	}

	if err = assignmentRepo.Add(ctx, created); err != nil {
		return nil, err
	}

	if err = staffRepo.Update(ctx, courier); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	for _, a := range expired {
		notifyCourier(ctx, h.notifier, a, ports.CourierAssignmentExpired, now)
	}
	notifyCourier(ctx, h.notifier, created, ports.CourierAssigned, now)
	return created, nil
}
