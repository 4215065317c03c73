package commands

import (
	"context"

	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/core/domain/services"
	"distribution/internal/core/ports"
)

// AcceptAssignmentCommandHandler lets a courier take an assigned order before
// its accept deadline passes. The order goes out for delivery and the
// customer is told so after commit.
type AcceptAssignmentCommandHandler struct {
	uowFactory UoWFactory
	clock      kernel.Clock
	notifier   ports.Notifier
}

// NewAcceptAssignmentCommandHandler creates a handler for courier acceptances.
func NewAcceptAssignmentCommandHandler(
	uowFactory UoWFactory,
	clock kernel.Clock,
	notifier ports.Notifier,
) AcceptAssignmentCommandHandler {
	return AcceptAssignmentCommandHandler{uowFactory: uowFactory, clock: clock, notifier: notifier}
}

// Handle accepts the assignment and sends the order out for delivery. After
// the deadline it fails with errs.DeadlineExpiredError and changes nothing.
func (h AcceptAssignmentCommandHandler) Handle(ctx context.Context, cmd AcceptAssignmentCommand) error {
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
	now := h.clock.Now()

	a, err := cmd.load(ctx, assignmentRepo)
	if err != nil {
		return err
	}

	o, err := orderRepo.Get(ctx, a.OrderID())
	if err != nil {
		return err
	}

	if err = services.NewDeliveryDispatcher().Accept(a, o, now); err != nil {
		return err
	}

	if err = assignmentRepo.Update(ctx, a); err != nil {
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
