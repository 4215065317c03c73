package cmd_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"distribution/cmd"
	"distribution/internal/adapters/out/postgres"
	"distribution/internal/core/application/usecases/commands"
	"distribution/internal/core/application/usecases/queries"
	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/core/domain/model/order"
	"distribution/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testStart = time.Date(2025, 4, 10, 9, 0, 0, 0, time.UTC)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type recordingNotifier struct {
	mu       sync.Mutex
	courier  []ports.CourierNotification
	customer []ports.CustomerNotification
}

func (n *recordingNotifier) NotifyCourier(_ context.Context, c ports.CourierNotification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.courier = append(n.courier, c)
	return nil
}

func (n *recordingNotifier) NotifyCustomer(_ context.Context, c ports.CustomerNotification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.customer = append(n.customer, c)
	return nil
}

func (n *recordingNotifier) courierEvents() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	events := make([]string, 0, len(n.courier))
	for _, c := range n.courier {
		events = append(events, c.Event)
	}
	return events
}

func (n *recordingNotifier) customerStatuses() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	statuses := make([]string, 0, len(n.customer))
	for _, c := range n.customer {
		statuses = append(statuses, c.Status)
	}
	return statuses
}

// testApp is the service wired over an in-memory SQLite database.
type testApp struct {
	t        *testing.T
	root     cmd.CompositionRoot
	db       *gorm.DB
	clock    *testClock
	notifier *recordingNotifier
	branchID kernel.UUID
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	db, err := postgres.Open(postgres.DriverSQLite, ":memory:", nil)
	require.NoError(t, err)
	require.NoError(t, postgres.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			_ = sqlDB.Close()
		}
	})

	config, err := cmd.ConfigFromEnv(func(string) string { return "" })
	require.NoError(t, err)

	clock := &testClock{now: testStart}
	notifier := &recordingNotifier{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &testApp{
		t:        t,
		root:     cmd.NewCompositionRoot(config, db, clock, notifier, logger),
		db:       db,
		clock:    clock,
		notifier: notifier,
		branchID: kernel.NewUUID(),
	}
}

func (a *testApp) createStaff(name string, maxOrders int) kernel.UUID {
	a.t.Helper()
	id := kernel.NewUUID()
	cmdStaff, err := commands.NewCreateDeliveryStaffCommand(id, name, "+3000", []kernel.UUID{a.branchID}, maxOrders)
	require.NoError(a.t, err)
	require.NoError(a.t, a.root.CreateCreateDeliveryStaffCommandHandler().Handle(a.t.Context(), cmdStaff))
	return id
}

// createOrder places a pending order with one line per product name.
func (a *testApp) createOrder(products ...string) kernel.UUID {
	a.t.Helper()
	items := make([]order.Item, 0, len(products))
	for i, name := range products {
		item, err := order.NewItem(fmt.Sprintf("sku-%d", i), name, 1, decimal.RequireFromString("2.50"))
		require.NoError(a.t, err)
		items = append(items, item)
	}
	shipping, err := order.NewShippingInfo("Dana", "+100200300", "Main st 1", "")
	require.NoError(a.t, err)

	id := kernel.NewUUID()
	create, err := commands.NewCreateOrderCommand(id, a.branchID, "cust-7", items, shipping)
	require.NoError(a.t, err)
	require.NoError(a.t, a.root.CreateCreateOrderCommandHandler().Handle(a.t.Context(), create))
	return id
}

func (a *testApp) confirm(orderID kernel.UUID) {
	a.t.Helper()
	c, err := commands.NewConfirmOrderCommand(orderID)
	require.NoError(a.t, err)
	require.NoError(a.t, a.root.CreateConfirmOrderCommandHandler().Handle(a.t.Context(), c))
}

func (a *testApp) startPreparation(orderID kernel.UUID) error {
	a.t.Helper()
	c, err := commands.NewStartPreparationCommand(orderID)
	require.NoError(a.t, err)
	return a.root.CreateStartPreparationCommandHandler().Handle(a.t.Context(), c)
}

func (a *testApp) preparationItems(orderID kernel.UUID) queries.PreparationItemsResponse {
	a.t.Helper()
	q, err := queries.NewGetPreparationItemsQuery(orderID)
	require.NoError(a.t, err)
	items, err := a.root.CreateGetPreparationItemsQueryHandler().Handle(a.t.Context(), q)
	require.NoError(a.t, err)
	return items
}

func (a *testApp) toggle(itemID kernel.UUID, prepared bool) {
	a.t.Helper()
	c, err := commands.NewTogglePreparationItemCommand(itemID, prepared, nil)
	require.NoError(a.t, err)
	require.NoError(a.t, a.root.CreateTogglePreparationItemCommandHandler().Handle(a.t.Context(), c))
}

func (a *testApp) completePreparation(orderID kernel.UUID) error {
	a.t.Helper()
	c, err := commands.NewCompletePreparationCommand(orderID)
	require.NoError(a.t, err)
	return a.root.CreateCompletePreparationCommandHandler().Handle(a.t.Context(), c)
}

// readyOrder walks a new order with the given lines to ready.
func (a *testApp) readyOrder(products ...string) kernel.UUID {
	a.t.Helper()
	orderID := a.createOrder(products...)
	a.confirm(orderID)
	require.NoError(a.t, a.startPreparation(orderID))
	for _, item := range a.preparationItems(orderID).Items {
		a.toggle(item.ID, true)
	}
	require.NoError(a.t, a.completePreparation(orderID))
	return orderID
}

func (a *testApp) assign(orderID, staffID kernel.UUID, acceptTimeoutMinutes int) error {
	a.t.Helper()
	c, err := commands.NewAssignDeliveryCommand(orderID, staffID, acceptTimeoutMinutes, 30)
	require.NoError(a.t, err)
	_, err = a.root.CreateAssignDeliveryCommandHandler().Handle(a.t.Context(), c)
	return err
}

func (a *testApp) accept(orderID kernel.UUID, courierID *kernel.UUID) error {
	a.t.Helper()
	c, err := commands.NewAcceptAssignmentCommand(orderID, courierID)
	require.NoError(a.t, err)
	return a.root.CreateAcceptAssignmentCommandHandler().Handle(a.t.Context(), c)
}

func (a *testApp) reject(orderID kernel.UUID, courierID *kernel.UUID) error {
	a.t.Helper()
	c, err := commands.NewRejectAssignmentCommand(orderID, courierID, "flat tyre")
	require.NoError(a.t, err)
	return a.root.CreateRejectAssignmentCommandHandler().Handle(a.t.Context(), c)
}

func (a *testApp) pickup(orderID kernel.UUID) error {
	a.t.Helper()
	c, err := commands.NewMarkPickedUpCommand(orderID, nil)
	require.NoError(a.t, err)
	return a.root.CreateMarkPickedUpCommandHandler().Handle(a.t.Context(), c)
}

func (a *testApp) arriving(orderID kernel.UUID) error {
	a.t.Helper()
	c, err := commands.NewMarkArrivingCommand(orderID, nil)
	require.NoError(a.t, err)
	return a.root.CreateMarkArrivingCommandHandler().Handle(a.t.Context(), c)
}

func (a *testApp) deliver(orderID kernel.UUID) error {
	a.t.Helper()
	c, err := commands.NewMarkDeliveredCommand(orderID, nil)
	require.NoError(a.t, err)
	return a.root.CreateMarkDeliveredCommandHandler().Handle(a.t.Context(), c)
}

func (a *testApp) cancel(orderID kernel.UUID) error {
	a.t.Helper()
	c, err := commands.NewCancelOrderCommand(orderID, "customer called")
	require.NoError(a.t, err)
	return a.root.CreateCancelOrderCommandHandler().Handle(a.t.Context(), c)
}

func (a *testApp) expireStale() int {
	a.t.Helper()
	expired, err := a.root.CreateExpireStaleAssignmentsCommandHandler().
		Handle(a.t.Context(), commands.NewExpireStaleAssignmentsCommand())
	require.NoError(a.t, err)
	return expired
}

func (a *testApp) availableStaff() []queries.AvailableStaffResponse {
	a.t.Helper()
	q, err := queries.NewGetAvailableStaffQuery(a.branchID)
	require.NoError(a.t, err)
	staff, err := a.root.CreateGetAvailableStaffQueryHandler().Handle(a.t.Context(), q)
	require.NoError(a.t, err)
	return staff
}

func (a *testApp) orderStatus(orderID kernel.UUID) string {
	a.t.Helper()
	q, err := queries.NewGetOrderQuery(orderID)
	require.NoError(a.t, err)
	o, err := a.root.CreateGetOrderQueryHandler().Handle(a.t.Context(), q)
	require.NoError(a.t, err)
	return o.Status
}

func (a *testApp) load(staffID kernel.UUID) int {
	a.t.Helper()
	s, err := postgres.NewGormUnitOfWorkFactory(a.db).Create().StaffRepository().Get(a.t.Context(), staffID)
	require.NoError(a.t, err)
	return s.CurrentOrders()
}

// history lists the assignment statuses of an order, oldest first.
func (a *testApp) history(orderID kernel.UUID) []string {
	a.t.Helper()
	q, err := queries.NewGetOrderAssignmentsQuery(orderID)
	require.NoError(a.t, err)
	rows, err := a.root.CreateGetOrderAssignmentsQueryHandler().Handle(a.t.Context(), q)
	require.NoError(a.t, err)
	statuses := make([]string, 0, len(rows))
	for _, r := range rows {
		statuses = append(statuses, r.Status)
	}
	return statuses
}
