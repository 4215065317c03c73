package commands_test

import (
	"testing"
	"time"

	"distribution/internal/core/application/usecases/commands"
	"distribution/internal/core/domain/model/assignment"
	"distribution/internal/core/domain/model/order"
	"distribution/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMarkDeliveredCommandHandler_Handle_ClosesOrderAndReleasesSlot(t *testing.T) {
	ctx := t.Context()
	o := orderIn(t, order.OutForDelivery, 1)
	courier := courierWithLoad(t, 2, 2)
	a := assignmentIn(t, assignment.Arriving, o.ID(), courier.ID(), testNow.Add(-30*time.Minute))
	courierID := courier.ID()
	cmd, err := commands.NewMarkDeliveredCommand(o.ID(), &courierID)
	require.NoError(t, err)

	f := newDeliveryFixture(t)
	mock.InOrder(
		f.assignmentRepo.On("GetLatestByOrder", ctx, o.ID()).Return(a, nil).Once(),
		f.orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		f.staffRepo.On("Get", ctx, courier.ID()).Return(courier, nil).Once(),
		f.assignmentRepo.On("Update", ctx, a).Return(nil).Once(),
		f.orderRepo.On("Update", ctx, o).Return(nil).Once(),
		f.staffRepo.On("Update", ctx, courier).Return(nil).Once(),
		f.uow.On("Commit", ctx).Return(nil).Once(),
	)
	f.notifier.On("NotifyCustomer", ctx, mock.Anything).Return(nil).Once()

	handler := commands.NewMarkDeliveredCommandHandler(f.factory, fixedClock(), f.notifier)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, assignment.Delivered, a.Status())
	assert.Equal(t, order.Delivered, o.Status())
	assert.Equal(t, 1, courier.CurrentOrders())
}

func TestMarkDeliveredCommandHandler_Handle_OutOfOrder(t *testing.T) {
	ctx := t.Context()
	o := orderIn(t, order.OutForDelivery, 1)
	courier := courierWithLoad(t, 1, 2)
	a := assignmentIn(t, assignment.PickedUp, o.ID(), courier.ID(), testNow.Add(-30*time.Minute))
	cmd, err := commands.NewMarkDeliveredCommand(o.ID(), nil)
	require.NoError(t, err)

	f := newDeliveryFixture(t)
	f.assignmentRepo.On("GetLatestByOrder", ctx, o.ID()).Return(a, nil).Once()
	f.orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once()
	f.staffRepo.On("Get", ctx, courier.ID()).Return(courier, nil).Once()

	handler := commands.NewMarkDeliveredCommandHandler(f.factory, fixedClock(), f.notifier)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrInvalidState)
	assert.Equal(t, order.OutForDelivery, o.Status())
	assert.Equal(t, 1, courier.CurrentOrders())
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
}
