package services_test

import (
	"testing"
	"time"

	"distribution/internal/core/domain/model/assignment"
	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/core/domain/model/order"
	"distribution/internal/core/domain/model/staff"
	"distribution/internal/core/domain/services"
	"distribution/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 4, 10, 12, 0, 0, 0, time.UTC)

func readyOrder(t *testing.T, branchID kernel.UUID) *order.Order {
	t.Helper()
	item, err := order.NewItem("sku-1", "Bread", 1, decimal.NewFromInt(2))
	require.NoError(t, err)
	shipping, err := order.NewShippingInfo("Dana", "+1", "Main st 1", "")
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), branchID, "cust", []order.Item{item}, shipping, now)
	require.NoError(t, err)
	require.NoError(t, o.Confirm(now))
	require.NoError(t, o.StartPreparation(now))
	require.NoError(t, o.MarkReady(now))
	return o
}

func courier(t *testing.T, branchID kernel.UUID, maxOrders int) *staff.DeliveryStaff {
	t.Helper()
	s, err := staff.NewDeliveryStaff(kernel.NewUUID(), "Sam", "+2", []kernel.UUID{branchID}, maxOrders)
	require.NoError(t, err)
	return s
}

func TestDeliveryDispatcher_Assign(t *testing.T) {
	dispatcher := services.NewDeliveryDispatcher()
	branch := kernel.NewUUID()

	t.Run("opens assignment and takes a slot", func(t *testing.T) {
		o := readyOrder(t, branch)
		s := courier(t, branch, 2)

		a, err := dispatcher.Assign(o, s, nil, 5, 30, now)

		require.NoError(t, err)
		assert.Equal(t, assignment.Assigned, a.Status())
		assert.True(t, a.OrderID().IsEqual(o.ID()))
		assert.True(t, a.StaffID().IsEqual(s.ID()))
		assert.Equal(t, 1, s.CurrentOrders())
		assert.Equal(t, order.Ready, o.Status(), "order waits for acceptance")
	})

	t.Run("order must be ready", func(t *testing.T) {
		o := readyOrder(t, branch)
		require.NoError(t, o.MarkOutForDelivery(now))
		s := courier(t, branch, 2)

		_, err := dispatcher.Assign(o, s, nil, 5, 30, now)

		require.ErrorIs(t, err, errs.ErrInvalidState)
		assert.Equal(t, 0, s.CurrentOrders())
	})

	t.Run("active assignment conflicts", func(t *testing.T) {
		o := readyOrder(t, branch)
		first := courier(t, branch, 2)
		active, err := dispatcher.Assign(o, first, nil, 5, 30, now)
		require.NoError(t, err)
		second := courier(t, branch, 2)

		_, err = dispatcher.Assign(o, second, active, 5, 30, now)

		require.ErrorIs(t, err, errs.ErrConflict)
		assert.Equal(t, 0, second.CurrentOrders())
	})

	t.Run("finished assignment does not block", func(t *testing.T) {
		o := readyOrder(t, branch)
		s := courier(t, branch, 2)
		previous, err := dispatcher.Assign(o, s, nil, 5, 30, now)
		require.NoError(t, err)
		require.NoError(t, dispatcher.Reject(previous, s, "busy", now))

		_, err = dispatcher.Assign(o, s, previous, 5, 30, now)

		require.NoError(t, err)
		assert.Equal(t, 1, s.CurrentOrders())
	})

	t.Run("courier at capacity", func(t *testing.T) {
		s := courier(t, branch, 1)
		_, err := dispatcher.Assign(readyOrder(t, branch), s, nil, 5, 30, now)
		require.NoError(t, err)

		_, err = dispatcher.Assign(readyOrder(t, branch), s, nil, 5, 30, now)

		require.ErrorIs(t, err, errs.ErrStaffUnavailable)
		assert.Equal(t, 1, s.CurrentOrders())
	})

	t.Run("courier from another branch", func(t *testing.T) {
		s := courier(t, kernel.NewUUID(), 1)

		_, err := dispatcher.Assign(readyOrder(t, branch), s, nil, 5, 30, now)

		require.ErrorIs(t, err, errs.ErrStaffUnavailable)
	})

	t.Run("invalid timeout leaves load untouched", func(t *testing.T) {
		s := courier(t, branch, 1)

		_, err := dispatcher.Assign(readyOrder(t, branch), s, nil, 0, 30, now)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Equal(t, 0, s.CurrentOrders())
	})
}

func TestDeliveryDispatcher_SlotReleasedOncePerTerminalOutcome(t *testing.T) {
	dispatcher := services.NewDeliveryDispatcher()
	branch := kernel.NewUUID()

	setup := func(t *testing.T) (*order.Order, *staff.DeliveryStaff, *assignment.Assignment) {
		o := readyOrder(t, branch)
		s := courier(t, branch, 3)
		a, err := dispatcher.Assign(o, s, nil, 5, 30, now)
		require.NoError(t, err)
		require.Equal(t, 1, s.CurrentOrders())
		return o, s, a
	}

	t.Run("delivered", func(t *testing.T) {
		o, s, a := setup(t)
		require.NoError(t, dispatcher.Accept(a, o, now.Add(time.Minute)))
		assert.Equal(t, order.OutForDelivery, o.Status())
		require.NoError(t, a.MarkPickedUp(now))
		require.NoError(t, a.MarkArriving(now))

		require.NoError(t, dispatcher.Deliver(a, o, s, now.Add(20*time.Minute)))

		assert.Equal(t, 0, s.CurrentOrders())
		assert.Equal(t, order.Delivered, o.Status())
		require.ErrorIs(t, dispatcher.Deliver(a, o, s, now), errs.ErrInvalidState)
		assert.Equal(t, 0, s.CurrentOrders())
	})

	t.Run("rejected", func(t *testing.T) {
		o, s, a := setup(t)

		require.NoError(t, dispatcher.Reject(a, s, "no car", now))

		assert.Equal(t, 0, s.CurrentOrders())
		assert.Equal(t, order.Ready, o.Status())
		require.ErrorIs(t, dispatcher.Reject(a, s, "again", now), errs.ErrInvalidState)
		require.ErrorIs(t, dispatcher.Expire(a, s, now.Add(time.Hour)), errs.ErrInvalidState)
		assert.Equal(t, 0, s.CurrentOrders())
	})

	t.Run("expired", func(t *testing.T) {
		o, s, a := setup(t)

		require.NoError(t, dispatcher.Expire(a, s, now.Add(6*time.Minute)))

		assert.Equal(t, 0, s.CurrentOrders())
		assert.Equal(t, order.Ready, o.Status())
		require.ErrorIs(t, dispatcher.Expire(a, s, now.Add(7*time.Minute)), errs.ErrInvalidState)
		assert.Equal(t, 0, s.CurrentOrders())
	})

	t.Run("withdrawn", func(t *testing.T) {
		o, s, a := setup(t)
		require.NoError(t, dispatcher.Accept(a, o, now))

		require.NoError(t, dispatcher.Withdraw(a, s, now))

		assert.Equal(t, assignment.Cancelled, a.Status())
		assert.Equal(t, 0, s.CurrentOrders())
		require.ErrorIs(t, dispatcher.Withdraw(a, s, now), errs.ErrInvalidState)
	})
}

func TestDeliveryDispatcher_Mismatch(t *testing.T) {
	dispatcher := services.NewDeliveryDispatcher()
	branch := kernel.NewUUID()
	o := readyOrder(t, branch)
	s := courier(t, branch, 1)
	a, err := dispatcher.Assign(o, s, nil, 5, 30, now)
	require.NoError(t, err)

	require.ErrorIs(t, dispatcher.Reject(a, courier(t, branch, 1), "x", now), errs.ErrValueIsInvalid)
	require.ErrorIs(t, dispatcher.Accept(a, readyOrder(t, branch), now), errs.ErrValueIsInvalid)
	assert.Equal(t, assignment.Assigned, a.Status())
}
