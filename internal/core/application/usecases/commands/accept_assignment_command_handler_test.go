package commands_test

import (
	"testing"
	"time"

	"distribution/internal/core/application/usecases/commands"
	"distribution/internal/core/domain/model/assignment"
	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/core/domain/model/order"
	"distribution/internal/core/ports"
	"distribution/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAcceptAssignmentCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	o := orderIn(t, order.Ready, 2)
	courierID := kernel.NewUUID()
	a := assignmentIn(t, assignment.Assigned, o.ID(), courierID, testNow.Add(time.Minute))
	cmd, err := commands.NewAcceptAssignmentCommand(o.ID(), &courierID)
	require.NoError(t, err)

	f := newDeliveryFixture(t)
	mock.InOrder(
		f.assignmentRepo.On("GetLatestByOrder", ctx, o.ID()).Return(a, nil).Once(),
		f.orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		f.assignmentRepo.On("Update", ctx, a).Return(nil).Once(),
		f.orderRepo.On("Update", ctx, o).Return(nil).Once(),
		f.uow.On("Commit", ctx).Return(nil).Once(),
	)
	f.notifier.On("NotifyCustomer", ctx, mock.MatchedBy(func(n ports.CustomerNotification) bool {
		return n.Status == order.OutForDelivery.String() && n.OrderID == o.ID()
	})).Return(nil).Once()

	handler := commands.NewAcceptAssignmentCommandHandler(f.factory, fixedClock(), f.notifier)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, assignment.Accepted, a.Status())
	require.NotNil(t, a.AcceptedAt())
	assert.Equal(t, testNow, *a.AcceptedAt())
	assert.Equal(t, order.OutForDelivery, o.Status())
	f.notifier.AssertExpectations(t)
}

func TestAcceptAssignmentCommandHandler_Handle_DeadlineExpired(t *testing.T) {
	ctx := t.Context()
	o := orderIn(t, order.Ready, 1)
	courierID := kernel.NewUUID()
	a := assignmentIn(t, assignment.Assigned, o.ID(), courierID, testNow.Add(-time.Second))
	cmd, err := commands.NewAcceptAssignmentCommand(o.ID(), &courierID)
	require.NoError(t, err)

	f := newDeliveryFixture(t)
	f.assignmentRepo.On("GetLatestByOrder", ctx, o.ID()).Return(a, nil).Once()
	f.orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once()

	handler := commands.NewAcceptAssignmentCommandHandler(f.factory, fixedClock(), f.notifier)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrDeadlineExpired)
	assert.Equal(t, assignment.Assigned, a.Status())
	assert.Equal(t, order.Ready, o.Status())
	f.assignmentRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
	f.notifier.AssertNotCalled(t, "NotifyCustomer", mock.Anything, mock.Anything)
}

func TestAcceptAssignmentCommandHandler_Handle_AnotherCourier(t *testing.T) {
	ctx := t.Context()
	o := orderIn(t, order.Ready, 1)
	a := assignmentIn(t, assignment.Assigned, o.ID(), kernel.NewUUID(), testNow.Add(time.Minute))
	intruder := kernel.NewUUID()
	cmd, err := commands.NewAcceptAssignmentCommand(o.ID(), &intruder)
	require.NoError(t, err)

	f := newDeliveryFixture(t)
	f.assignmentRepo.On("GetLatestByOrder", ctx, o.ID()).Return(a, nil).Once()

	handler := commands.NewAcceptAssignmentCommandHandler(f.factory, fixedClock(), f.notifier)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrAssignmentBelongsToAnotherCourier)
	assert.Equal(t, assignment.Assigned, a.Status())
	f.orderRepo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestAcceptAssignmentCommandHandler_Handle_NoAssignment(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	cmd, err := commands.NewAcceptAssignmentCommand(orderID, nil)
	require.NoError(t, err)

	f := newDeliveryFixture(t)
	f.assignmentRepo.On("GetLatestByOrder", ctx, orderID).Return(nil, notFound(orderID)).Once()

	handler := commands.NewAcceptAssignmentCommandHandler(f.factory, fixedClock(), f.notifier)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestAcceptAssignmentCommandHandler_Handle_NotConstructed(t *testing.T) {
	handler := commands.NewAcceptAssignmentCommandHandler(new(MockUoWFactory), fixedClock(), nil)
	err := handler.Handle(t.Context(), commands.AcceptAssignmentCommand{})
	require.ErrorIs(t, err, commands.ErrAcceptAssignmentCommandIsNotConstructed)
}
