package commands_test

import (
	"testing"
	"time"

	"distribution/internal/core/application/usecases/commands"
	"distribution/internal/core/domain/model/assignment"
	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMarkPickedUpCommandHandler_Handle(t *testing.T) {
	tests := []struct {
		name    string
		status  assignment.Status
		want    assignment.Status
		wantErr error
	}{
		{name: "accepted", status: assignment.Accepted, want: assignment.PickedUp},
		{name: "not yet accepted", status: assignment.Assigned, want: assignment.Assigned, wantErr: errs.ErrInvalidState},
		{name: "already picked up", status: assignment.PickedUp, want: assignment.PickedUp, wantErr: errs.ErrInvalidState},
		{name: "expired", status: assignment.Expired, want: assignment.Expired, wantErr: errs.ErrInvalidState},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			orderID := kernel.NewUUID()
			a := assignmentIn(t, tt.status, orderID, kernel.NewUUID(), testNow.Add(time.Minute))
			cmd, err := commands.NewMarkPickedUpCommand(orderID, nil)
			require.NoError(t, err)

			f := newDeliveryFixture(t)
			f.assignmentRepo.On("GetLatestByOrder", ctx, orderID).Return(a, nil).Once()
			f.assignmentRepo.On("Update", ctx, a).Return(nil).Maybe()
			f.uow.On("Commit", ctx).Return(nil).Maybe()

			handler := commands.NewMarkPickedUpCommandHandler(f.factory, fixedClock())
			err = handler.Handle(ctx, cmd)

			assert.Equal(t, tt.want, a.Status())
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				f.uow.AssertNotCalled(t, "Commit", mock.Anything)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, a.PickedUpAt())
			assert.Equal(t, testNow, *a.PickedUpAt())
			f.uow.AssertCalled(t, "Commit", ctx)
		})
	}
}
