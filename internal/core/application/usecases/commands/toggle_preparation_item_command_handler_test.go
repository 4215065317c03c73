package commands_test

import (
	"testing"

	"distribution/internal/core/application/usecases/commands"
	"distribution/internal/core/domain/model/order"
	"distribution/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestTogglePreparationItemCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	o := orderIn(t, order.Preparing, 2)
	item := checklist(t, o, 0)[1]
	notes := "swapped for 2x500g"
	cmd, err := commands.NewTogglePreparationItemCommand(item.ID(), true, &notes)
	require.NoError(t, err)

	f := newPreparationFixture(t)
	mock.InOrder(
		f.preparationRepo.On("Get", ctx, item.ID()).Return(item, nil).Once(),
		f.orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		f.preparationRepo.On("Update", ctx, item).Return(nil).Once(),
		f.orderRepo.On("Update", ctx, o).Return(nil).Once(),
		f.uow.On("Commit", ctx).Return(nil).Once(),
	)

	handler := commands.NewTogglePreparationItemCommandHandler(f.factory, fixedClock())
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, item.IsPrepared())
	assert.Equal(t, notes, item.Notes())
	require.NotNil(t, item.PreparedAt())
	assert.Equal(t, testNow, *item.PreparedAt())
}

func TestTogglePreparationItemCommandHandler_Handle_Untoggle(t *testing.T) {
	ctx := t.Context()
	o := orderIn(t, order.Preparing, 1)
	item := checklist(t, o, 1)[0]
	cmd, err := commands.NewTogglePreparationItemCommand(item.ID(), false, nil)
	require.NoError(t, err)

	f := newPreparationFixture(t)
	f.preparationRepo.On("Get", ctx, item.ID()).Return(item, nil).Once()
	f.orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once()
	f.preparationRepo.On("Update", ctx, item).Return(nil).Once()
	f.orderRepo.On("Update", ctx, o).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()

	handler := commands.NewTogglePreparationItemCommandHandler(f.factory, fixedClock())
	require.NoError(t, handler.Handle(ctx, cmd))

	assert.False(t, item.IsPrepared())
	assert.Nil(t, item.PreparedAt())
}

func TestTogglePreparationItemCommandHandler_Handle_FrozenAfterHandoff(t *testing.T) {
	ctx := t.Context()
	o := orderIn(t, order.Ready, 1)
	item := checklist(t, o, 1)[0]
	cmd, err := commands.NewTogglePreparationItemCommand(item.ID(), false, nil)
	require.NoError(t, err)

	f := newPreparationFixture(t)
	f.preparationRepo.On("Get", ctx, item.ID()).Return(item, nil).Once()
	f.orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once()

	handler := commands.NewTogglePreparationItemCommandHandler(f.factory, fixedClock())
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrInvalidState)
	assert.True(t, item.IsPrepared())
	f.preparationRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
