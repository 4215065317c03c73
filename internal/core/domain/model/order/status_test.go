package order_test

import (
	"fmt"
	"testing"

	"distribution/internal/core/domain/model/order"
	"distribution/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_String(t *testing.T) {
	testCases := []struct {
		status   order.Status
		expected string
	}{
		{order.Pending, "pending"},
		{order.Confirmed, "confirmed"},
		{order.Preparing, "preparing"},
		{order.Ready, "ready"},
		{order.OutForDelivery, "out_for_delivery"},
		{order.Delivered, "delivered"},
		{order.Cancelled, "cancelled"},
		{order.Rejected, "rejected"},
		{order.Unknown, "unknown"},
		{order.Status(42), "unknown"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.status.String())
		})
	}
}

func TestParseStatus(t *testing.T) {
	t.Run("round trips every valid status", func(t *testing.T) {
		for _, s := range order.AllStatuses() {
			parsed, err := order.ParseStatus(s.String())

			require.NoError(t, err)
			assert.Equal(t, s, parsed)
		}
	})

	t.Run("rejects unknown names", func(t *testing.T) {
		for _, name := range []string{"", "unknown", "READY", "shipped"} {
			_, err := order.ParseStatus(name)

			require.ErrorIs(t, err, errs.ErrValueIsInvalid, name)
		}
	})
}

func TestStatus_Validate(t *testing.T) {
	for _, s := range order.AllStatuses() {
		require.NoError(t, s.Validate())
	}

	for _, s := range []order.Status{order.Unknown, order.Status(-1), order.Status(9)} {
		err := s.Validate()

		require.Error(t, err)
		assert.IsType(t, &errs.ValueIsInvalidError{}, err)
		assert.Contains(t, err.Error(), fmt.Sprintf("%d is not a valid status", int(s)))
	}
}

func TestStatus_TransitionTo_Exhaustive(t *testing.T) {
	legal := map[order.Status][]order.Status{
		order.Pending:        {order.Confirmed, order.Cancelled, order.Rejected},
		order.Confirmed:      {order.Preparing, order.Cancelled, order.Rejected},
		order.Preparing:      {order.Ready, order.Cancelled, order.Rejected},
		order.Ready:          {order.OutForDelivery, order.Cancelled, order.Rejected},
		order.OutForDelivery: {order.Delivered, order.Cancelled, order.Rejected},
	}
	isLegal := func(from, to order.Status) bool {
		for _, s := range legal[from] {
			if s == to {
				return true
			}
		}
		return false
	}

	for _, from := range order.AllStatuses() {
		for _, to := range order.AllStatuses() {
			t.Run(from.String()+"->"+to.String(), func(t *testing.T) {
				next, err := from.TransitionTo(to)

				if isLegal(from, to) {
					require.NoError(t, err)
					assert.Equal(t, to, next)
					return
				}
				require.ErrorIs(t, err, errs.ErrInvalidState)
				assert.Equal(t, order.Unknown, next)
				assert.Contains(t, err.Error(), "in status "+from.String())
			})
		}
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	for _, s := range order.AllStatuses() {
		expected := s == order.Delivered || s == order.Cancelled || s == order.Rejected
		assert.Equal(t, expected, s.IsTerminal(), s.String())
	}
}
