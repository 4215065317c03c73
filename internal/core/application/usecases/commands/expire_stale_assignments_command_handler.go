package commands

import (
	"context"
	"errors"
	"time"

	"distribution/internal/core/domain/model/assignment"
	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/core/domain/services"
	"distribution/internal/core/ports"
	"distribution/internal/pkg/errs"
)

// ExpireStaleAssignmentsCommandHandler releases assignments whose accept
// deadline passed without an answer. It runs from the background sweep and
// lazily from read paths.
//
// Example:
//
//	n, err := handler.Handle(ctx, NewExpireStaleAssignmentsCommand())
//	if err != nil {
//	    return err
//	}
//	logger.Info("assignments expired", "count", n)
type ExpireStaleAssignmentsCommandHandler struct {
	uowFactory UoWFactory
	clock      kernel.Clock
	notifier   ports.Notifier
}

// NewExpireStaleAssignmentsCommandHandler creates the sweep handler.
func NewExpireStaleAssignmentsCommandHandler(
	uowFactory UoWFactory,
	clock kernel.Clock,
	notifier ports.Notifier,
) ExpireStaleAssignmentsCommandHandler {
	return ExpireStaleAssignmentsCommandHandler{uowFactory: uowFactory, clock: clock, notifier: notifier}
}

// Handle expires stale assignments one transaction each and returns how many
// it expired. An assignment that another writer accepted, rejected or
// expired in the meantime is skipped, so a courier slot is released at most
// once however many sweeps run concurrently.
func (h ExpireStaleAssignmentsCommandHandler) Handle(ctx context.Context, cmd ExpireStaleAssignmentsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	now := h.clock.Now()

	candidates, err := h.findStale(ctx, now)
	if err != nil {
		return 0, err
	}

	var (
		expired  int
		failures []error
	)
	for _, id := range candidates {
		a, expireErr := h.expire(ctx, id, now)
		switch {
		case errors.Is(expireErr, errs.ErrConflict):
			continue
		case expireErr != nil:
			failures = append(failures, expireErr)
		case a != nil:
			expired++
			notifyCourier(ctx, h.notifier, a, ports.CourierAssignmentExpired, now)
		}
	}

	return expired, errors.Join(failures...)
}

func (h ExpireStaleAssignmentsCommandHandler) findStale(ctx context.Context, now time.Time) ([]kernel.UUID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	waiting, err := uow.AssignmentRepository().GetAllInAssignedStatus(ctx)
	if err != nil {
		return nil, err
	}

	stale := make([]kernel.UUID, 0, len(waiting))
	for _, a := range waiting {
		if a.IsStale(now) {
			stale = append(stale, a.ID())
		}
	}
	return stale, nil
}

// expire returns nil without error when the assignment is no longer stale.
func (h ExpireStaleAssignmentsCommandHandler) expire(
	ctx context.Context,
	id kernel.UUID,
	now time.Time,
) (*assignment.Assignment, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	staffRepo := uow.StaffRepository()
	assignmentRepo := uow.AssignmentRepository()

	a, err := assignmentRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !a.IsStale(now) {
		return nil, nil
	}

	courier, err := staffRepo.Get(ctx, a.StaffID())
	if err != nil {
		return nil, err
	}

	if err = services.NewDeliveryDispatcher().Expire(a, courier, now); err != nil {
		return nil, err
	}

	if err = assignmentRepo.Update(ctx, a); err != nil {
		return nil, err
	}

	if err = staffRepo.Update(ctx, courier); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return a, nil
}
