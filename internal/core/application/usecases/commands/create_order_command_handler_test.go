package commands_test

import (
	"errors"
	"testing"

	"distribution/internal/core/application/usecases/commands"
	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/core/domain/model/order"
	"distribution/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCreateOrderCommand(t *testing.T, lines int) commands.CreateOrderCommand {
	t.Helper()
	shipping, err := order.NewShippingInfo("Dana", "+1", "Main st 1", "ring twice")
	require.NoError(t, err)
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), testBranch, "cust-1", orderLines(t, lines), shipping)
	require.NoError(t, err)
	return cmd
}

func TestNewCreateOrderCommand_Validation(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(kernel.UUID{}, kernel.UUID{}, " ", nil, order.ShippingInfo{})

	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	assert.ErrorIs(t, err, commands.ErrCustomerIsRequired)
	assert.Contains(t, err.Error(), "branchId")
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateOrderCommand(t, 2)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	factory := new(MockOrderUoWFactory)

	var stored *order.Order
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).
			Run(func(args mock.Arguments) { stored = args.Get(1).(*order.Order) }).
			Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewCreateOrderCommandHandler(factory, fixedClock())
	err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.True(t, stored.ID().IsEqual(cmd.OrderID()))
	assert.Equal(t, order.Pending, stored.Status())
	assert.Equal(t, testNow, stored.CreatedAt())
	assert.Len(t, stored.Items(), 2)
	uow.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_NoItems(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateOrderCommand(t, 0)
	factory := new(MockOrderUoWFactory)

	handler := commands.NewCreateOrderCommandHandler(factory, fixedClock())
	err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, order.ErrOrderHasNoItems)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateOrderCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateOrderCommand(t, 1)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	factory := new(MockOrderUoWFactory)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("Add", ctx, mock.Anything).Return(errors.New("duplicate key")).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewCreateOrderCommandHandler(factory, fixedClock())
	err := handler.Handle(ctx, cmd)

	require.EqualError(t, err, "duplicate key")
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestCreateOrderCommandHandler_Handle_NotConstructed(t *testing.T) {
	factory := new(MockOrderUoWFactory)

	handler := commands.NewCreateOrderCommandHandler(factory, fixedClock())
	err := handler.Handle(t.Context(), commands.CreateOrderCommand{})

	require.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
