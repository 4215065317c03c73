package commands_test

import (
	"fmt"
	"testing"
	"time"

	"distribution/internal/core/domain/model/assignment"
	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/core/domain/model/order"
	"distribution/internal/core/domain/model/preparation"
	"distribution/internal/core/domain/model/staff"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var testBranch = kernel.NewUUID()

func orderLines(t *testing.T, n int) []order.Item {
	t.Helper()
	items := make([]order.Item, 0, n)
	for i := range n {
		item, err := order.NewItem(fmt.Sprintf("sku-%d", i), fmt.Sprintf("Product %d", i), 1, decimal.NewFromInt(3))
		require.NoError(t, err)
		items = append(items, item)
	}
	return items
}

func orderIn(t *testing.T, status order.Status, lines int) *order.Order {
	t.Helper()
	shipping, err := order.NewShippingInfo("Dana", "+1", "Main st 1", "")
	require.NoError(t, err)
	o, err := order.RestoreOrder(order.Snapshot{
		ID:         kernel.NewUUID(),
		BranchID:   testBranch,
		CustomerID: "cust-1",
		Items:      orderLines(t, lines),
		Shipping:   shipping,
		Status:     status,
		CreatedAt:  testNow.Add(-time.Hour),
		UpdatedAt:  testNow.Add(-time.Hour),
		Version:    1,
	})
	require.NoError(t, err)
	return o
}

func courierWithLoad(t *testing.T, current, maxOrders int) *staff.DeliveryStaff {
	t.Helper()
	s, err := staff.RestoreDeliveryStaff(kernel.NewUUID(), "Sam", "+2", []kernel.UUID{testBranch}, true, maxOrders, current, 1)
	require.NoError(t, err)
	return s
}

func assignmentIn(
	t *testing.T,
	status assignment.Status,
	orderID, staffID kernel.UUID,
	deadline time.Time,
) *assignment.Assignment {
	t.Helper()
	a, err := assignment.RestoreAssignment(assignment.Snapshot{
		ID:                      kernel.NewUUID(),
		OrderID:                 orderID,
		StaffID:                 staffID,
		Status:                  status,
		AcceptDeadline:          deadline,
		ExpectedDeliveryMinutes: 30,
		AssignedAt:              deadline.Add(-5 * time.Minute),
		Version:                 1,
	})
	require.NoError(t, err)
	return a
}

func checklist(t *testing.T, o *order.Order, prepared int) []*preparation.Item {
	t.Helper()
	built, err := preparation.BuildChecklist(o)
	require.NoError(t, err)
	for _, item := range built.Items()[:prepared] {
		require.NoError(t, item.Toggle(order.Preparing, true, nil, testNow))
	}
	return built.Items()
}
