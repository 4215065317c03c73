package commands_test

import (
	"errors"
	"testing"
	"time"

	"distribution/internal/core/application/usecases/commands"
	"distribution/internal/core/domain/model/assignment"
	"distribution/internal/core/domain/model/order"
	"distribution/internal/core/ports"
	"distribution/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMarkArrivingCommandHandler_Handle_NotifiesCustomer(t *testing.T) {
	ctx := t.Context()
	o := orderIn(t, order.OutForDelivery, 1)
	courier := courierWithLoad(t, 1, 2)
	a := assignmentIn(t, assignment.PickedUp, o.ID(), courier.ID(), testNow.Add(-10*time.Minute))
	courierID := courier.ID()
	cmd, err := commands.NewMarkArrivingCommand(o.ID(), &courierID)
	require.NoError(t, err)

	f := newDeliveryFixture(t)
	f.assignmentRepo.On("GetLatestByOrder", ctx, o.ID()).Return(a, nil).Once()
	f.assignmentRepo.On("Update", ctx, a).Return(nil).Once()
	f.orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.notifier.On("NotifyCustomer", ctx, mock.MatchedBy(func(n ports.CustomerNotification) bool {
		return n.Status == commands.StatusArriving && n.CustomerID == o.CustomerID()
	})).Return(errors.New("push gateway down")).Once()

	handler := commands.NewMarkArrivingCommandHandler(f.factory, fixedClock(), f.notifier)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, assignment.Arriving, a.Status())
	assert.Equal(t, order.OutForDelivery, o.Status())
	assert.Equal(t, 1, courier.CurrentOrders())
	f.orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	f.notifier.AssertExpectations(t)
}

func TestMarkArrivingCommandHandler_Handle_RequiresPickup(t *testing.T) {
	ctx := t.Context()
	o := orderIn(t, order.OutForDelivery, 1)
	a := assignmentIn(t, assignment.Accepted, o.ID(), courierWithLoad(t, 1, 2).ID(), testNow)
	cmd, err := commands.NewMarkArrivingCommand(o.ID(), nil)
	require.NoError(t, err)

	f := newDeliveryFixture(t)
	f.assignmentRepo.On("GetLatestByOrder", ctx, o.ID()).Return(a, nil).Once()

	handler := commands.NewMarkArrivingCommandHandler(f.factory, fixedClock(), f.notifier)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrInvalidState)
	assert.Equal(t, assignment.Accepted, a.Status())
}
