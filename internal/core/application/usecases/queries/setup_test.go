package queries_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"distribution/internal/adapters/out/postgres"
	"distribution/internal/core/application/usecases/commands"
	"distribution/internal/core/domain/model/assignment"
	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/core/domain/model/order"
	"distribution/internal/core/domain/model/staff"
	"distribution/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testNow = time.Date(2025, 4, 10, 12, 0, 0, 0, time.UTC)

type store struct {
	t   *testing.T
	db  *gorm.DB
	uow ports.UnitOfWork
}

func newStore(t *testing.T) store {
	t.Helper()
	db, err := postgres.Open(postgres.DriverSQLite, ":memory:", nil)
	require.NoError(t, err)
	require.NoError(t, postgres.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			_ = sqlDB.Close()
		}
	})
	return store{t: t, db: db, uow: postgres.NewGormUnitOfWorkFactory(db).Create()}
}

func (s store) order(branchID kernel.UUID, status order.Status, created time.Time, prices ...string) *order.Order {
	s.t.Helper()
	items := make([]order.Item, 0, len(prices))
	for i, price := range prices {
		item, err := order.NewItem(fmt.Sprintf("sku-%d", i), fmt.Sprintf("Product %d", i), i+1, decimal.RequireFromString(price))
		require.NoError(s.t, err)
		items = append(items, item)
	}
	shipping, err := order.NewShippingInfo("Dana", "+1", "Main st 1", "ring twice")
	require.NoError(s.t, err)

	o, err := order.RestoreOrder(order.Snapshot{
		ID:         kernel.NewUUID(),
		BranchID:   branchID,
		CustomerID: "cust-1",
		Items:      items,
		Shipping:   shipping,
		Status:     status,
		CreatedAt:  created,
		UpdatedAt:  created,
	})
	require.NoError(s.t, err)
	require.NoError(s.t, s.uow.OrderRepository().Add(context.Background(), o))
	return o
}

func (s store) courier(name string, branchID kernel.UUID, available bool, current, maxOrders int) *staff.DeliveryStaff {
	s.t.Helper()
	c, err := staff.RestoreDeliveryStaff(kernel.NewUUID(), name, "+2", []kernel.UUID{branchID},
		available, maxOrders, current, 0)
	require.NoError(s.t, err)
	require.NoError(s.t, s.uow.StaffRepository().Add(context.Background(), c))
	return c
}

func (s store) assignment(snapshot assignment.Snapshot) *assignment.Assignment {
	s.t.Helper()
	snapshot.ID = kernel.NewUUID()
	if snapshot.ExpectedDeliveryMinutes == 0 {
		snapshot.ExpectedDeliveryMinutes = 30
	}
	a, err := assignment.RestoreAssignment(snapshot)
	require.NoError(s.t, err)
	require.NoError(s.t, s.uow.AssignmentRepository().Add(context.Background(), a))
	return a
}

func at(t time.Time) *time.Time {
	return &t
}

type MockExpirer struct{ mock.Mock }

func (m *MockExpirer) Handle(ctx context.Context, cmd commands.ExpireStaleAssignmentsCommand) (int, error) {
	args := m.Called(ctx, cmd)
	return args.Int(0), args.Error(1)
}
