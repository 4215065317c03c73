package commands_test

import (
	"testing"

	"distribution/internal/core/application/usecases/commands"
	"distribution/internal/core/domain/model/order"
	"distribution/internal/core/domain/model/preparation"
	"distribution/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type preparationFixture struct {
	orderRepo       *MockOrderRepository
	preparationRepo *MockPreparationRepository
	uow             *MockUoW
	factory         *MockPreparationUoWFactory
}

func newPreparationFixture(t *testing.T) preparationFixture {
	t.Helper()
	f := preparationFixture{
		orderRepo:       new(MockOrderRepository),
		preparationRepo: new(MockPreparationRepository),
		uow:             new(MockUoW),
		factory:         new(MockPreparationUoWFactory),
	}
	ctx := t.Context()
	f.factory.On("Create").Return(f.uow).Once()
	f.uow.On("Begin", ctx).Return(nil).Once()
	f.uow.On("OrderRepository").Return(f.orderRepo).Maybe()
	f.uow.On("PreparationRepository").Return(f.preparationRepo).Maybe()
	f.uow.On("Rollback", ctx).Return(nil).Once()
	return f
}

func TestStartPreparationCommandHandler_Handle_CreatesChecklist(t *testing.T) {
	ctx := t.Context()
	o := orderIn(t, order.Confirmed, 3)
	cmd, err := commands.NewStartPreparationCommand(o.ID())
	require.NoError(t, err)

	f := newPreparationFixture(t)
	var created []*preparation.Item
	f.orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once()
	f.preparationRepo.On("GetByOrder", ctx, o.ID()).Return([]*preparation.Item{}, nil).Once()
	f.preparationRepo.On("AddAll", ctx, mock.Anything).
		Run(func(args mock.Arguments) { created = args.Get(1).([]*preparation.Item) }).
		Return(nil).Once()
	f.orderRepo.On("Update", ctx, o).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()

	handler := commands.NewStartPreparationCommandHandler(f.factory, fixedClock())
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Preparing, o.Status())
	require.Len(t, created, 3)
	for i, item := range created {
		assert.Equal(t, o.Items()[i].ProductID(), item.ProductID())
		assert.False(t, item.IsPrepared())
	}
	f.preparationRepo.AssertExpectations(t)
	f.orderRepo.AssertExpectations(t)
}

func TestStartPreparationCommandHandler_Handle_IsIdempotent(t *testing.T) {
	ctx := t.Context()
	o := orderIn(t, order.Preparing, 3)
	existing := checklist(t, o, 1)
	cmd, err := commands.NewStartPreparationCommand(o.ID())
	require.NoError(t, err)

	f := newPreparationFixture(t)
	f.orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once()
	f.preparationRepo.On("GetByOrder", ctx, o.ID()).Return(existing, nil).Once()

	handler := commands.NewStartPreparationCommandHandler(f.factory, fixedClock())
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Preparing, o.Status())
	f.preparationRepo.AssertNotCalled(t, "AddAll", mock.Anything, mock.Anything)
	f.orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	assert.True(t, existing[0].IsPrepared(), "progress is kept")
}

func TestStartPreparationCommandHandler_Handle_RequiresConfirmed(t *testing.T) {
	for _, status := range []order.Status{order.Pending, order.Ready, order.Cancelled} {
		t.Run(status.String(), func(t *testing.T) {
			ctx := t.Context()
			o := orderIn(t, status, 2)
			cmd, err := commands.NewStartPreparationCommand(o.ID())
			require.NoError(t, err)

			f := newPreparationFixture(t)
			f.orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once()
			f.preparationRepo.On("GetByOrder", ctx, o.ID()).Return([]*preparation.Item{}, nil).Once()

			handler := commands.NewStartPreparationCommandHandler(f.factory, fixedClock())
			err = handler.Handle(ctx, cmd)

			require.ErrorIs(t, err, errs.ErrInvalidState)
			f.preparationRepo.AssertNotCalled(t, "AddAll", mock.Anything, mock.Anything)
		})
	}
}
