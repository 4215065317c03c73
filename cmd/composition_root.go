package cmd

import (
	"log/slog"

	"distribution/internal/adapters/in/http"
	"distribution/internal/adapters/out/postgres"
	"distribution/internal/core/application/usecases/commands"
	"distribution/internal/core/application/usecases/queries"
	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/core/ports"
	"distribution/internal/jobs"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// CompositionRoot builds every handler of the service over one database
// connection, clock and notifier.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	clock      kernel.Clock
	notifier   ports.Notifier
	logger     *slog.Logger
}

// NewCompositionRoot wires use cases over gormDB. A nil notifier turns
// notifications off; a nil clock means the system clock.
func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	clock kernel.Clock,
	notifier ports.Notifier,
	logger *slog.Logger,
) CompositionRoot {
	if clock == nil {
		clock = kernel.SystemClock{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		clock:      clock,
		notifier:   notifier,
		logger:     logger,
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) staffUoWFactory() commands.StaffUoWFactory {
	return FuncStaffUoWFactory(func() commands.StaffUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) preparationUoWFactory() commands.PreparationUoWFactory {
	return FuncPreparationUoWFactory(func() commands.PreparationUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) uowFactoryAll() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateConfirmOrderCommandHandler() commands.ConfirmOrderCommandHandler {
	return commands.NewConfirmOrderCommandHandler(c.orderUoWFactory(), c.clock, c.notifier)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.uowFactoryAll(), c.clock, c.notifier)
}

func (c *CompositionRoot) CreateReportUnavailableItemsCommandHandler() commands.ReportUnavailableItemsCommandHandler {
	return commands.NewReportUnavailableItemsCommandHandler(c.orderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateStartPreparationCommandHandler() commands.StartPreparationCommandHandler {
	return commands.NewStartPreparationCommandHandler(c.preparationUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateTogglePreparationItemCommandHandler() commands.TogglePreparationItemCommandHandler {
	return commands.NewTogglePreparationItemCommandHandler(c.preparationUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateCompletePreparationCommandHandler() commands.CompletePreparationCommandHandler {
	return commands.NewCompletePreparationCommandHandler(c.preparationUoWFactory(), c.clock, c.notifier)
}

func (c *CompositionRoot) CreateAssignDeliveryCommandHandler() commands.AssignDeliveryCommandHandler {
	return commands.NewAssignDeliveryCommandHandler(c.uowFactoryAll(), c.clock, c.notifier)
}

func (c *CompositionRoot) CreateAcceptAssignmentCommandHandler() commands.AcceptAssignmentCommandHandler {
	return commands.NewAcceptAssignmentCommandHandler(c.uowFactoryAll(), c.clock, c.notifier)
}

func (c *CompositionRoot) CreateRejectAssignmentCommandHandler() commands.RejectAssignmentCommandHandler {
	return commands.NewRejectAssignmentCommandHandler(c.uowFactoryAll(), c.clock)
}

func (c *CompositionRoot) CreateMarkPickedUpCommandHandler() commands.MarkPickedUpCommandHandler {
	return commands.NewMarkPickedUpCommandHandler(c.uowFactoryAll(), c.clock)
}

func (c *CompositionRoot) CreateMarkArrivingCommandHandler() commands.MarkArrivingCommandHandler {
	return commands.NewMarkArrivingCommandHandler(c.uowFactoryAll(), c.clock, c.notifier)
}

func (c *CompositionRoot) CreateMarkDeliveredCommandHandler() commands.MarkDeliveredCommandHandler {
	return commands.NewMarkDeliveredCommandHandler(c.uowFactoryAll(), c.clock, c.notifier)
}

func (c *CompositionRoot) CreateExpireStaleAssignmentsCommandHandler() commands.ExpireStaleAssignmentsCommandHandler {
	return commands.NewExpireStaleAssignmentsCommandHandler(c.uowFactoryAll(), c.clock, c.notifier)
}

func (c *CompositionRoot) CreateCreateDeliveryStaffCommandHandler() commands.CreateDeliveryStaffCommandHandler {
	return commands.NewCreateDeliveryStaffCommandHandler(c.staffUoWFactory())
}

func (c *CompositionRoot) CreateSetStaffAvailabilityCommandHandler() commands.SetStaffAvailabilityCommandHandler {
	return commands.NewSetStaffAvailabilityCommandHandler(c.staffUoWFactory())
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrdersQueryHandler() queries.GetOrdersQueryHandler {
	return queries.NewGetOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPreparationItemsQueryHandler() queries.GetPreparationItemsQueryHandler {
	return queries.NewGetPreparationItemsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAvailableStaffQueryHandler() queries.GetAvailableStaffQueryHandler {
	return queries.NewGetAvailableStaffQueryHandler(c.gormDB, c.CreateExpireStaleAssignmentsCommandHandler())
}

func (c *CompositionRoot) CreateGetActiveDeliveriesQueryHandler() queries.GetActiveDeliveriesQueryHandler {
	return queries.NewGetActiveDeliveriesQueryHandler(c.gormDB, c.CreateExpireStaleAssignmentsCommandHandler())
}

func (c *CompositionRoot) CreateGetOrderAssignmentsQueryHandler() queries.GetOrderAssignmentsQueryHandler {
	return queries.NewGetOrderAssignmentsQueryHandler(c.gormDB, c.CreateExpireStaleAssignmentsCommandHandler())
}

func (c *CompositionRoot) CreateGetDeliveryReportQueryHandler() queries.GetDeliveryReportQueryHandler {
	return queries.NewGetDeliveryReportQueryHandler(c.gormDB, c.CreateExpireStaleAssignmentsCommandHandler())
}

// CreateServer wires every use case into the HTTP server.
func (c *CompositionRoot) CreateServer() *http.Server {
	return http.NewServer(http.Handlers{
		CreateOrder:            c.CreateCreateOrderCommandHandler(),
		ConfirmOrder:           c.CreateConfirmOrderCommandHandler(),
		CancelOrder:            c.CreateCancelOrderCommandHandler(),
		ReportUnavailableItems: c.CreateReportUnavailableItemsCommandHandler(),
		StartPreparation:       c.CreateStartPreparationCommandHandler(),
		TogglePreparationItem:  c.CreateTogglePreparationItemCommandHandler(),
		CompletePreparation:    c.CreateCompletePreparationCommandHandler(),
		AssignDelivery:         c.CreateAssignDeliveryCommandHandler(),
		AcceptAssignment:       c.CreateAcceptAssignmentCommandHandler(),
		RejectAssignment:       c.CreateRejectAssignmentCommandHandler(),
		MarkPickedUp:           c.CreateMarkPickedUpCommandHandler(),
		MarkArriving:           c.CreateMarkArrivingCommandHandler(),
		MarkDelivered:          c.CreateMarkDeliveredCommandHandler(),
		CreateDeliveryStaff:    c.CreateCreateDeliveryStaffCommandHandler(),
		SetStaffAvailability:   c.CreateSetStaffAvailabilityCommandHandler(),
		GetOrder:               c.CreateGetOrderQueryHandler(),
		GetOrders:              c.CreateGetOrdersQueryHandler(),
		GetPreparationItems:    c.CreateGetPreparationItemsQueryHandler(),
		GetAvailableStaff:      c.CreateGetAvailableStaffQueryHandler(),
		GetActiveDeliveries:    c.CreateGetActiveDeliveriesQueryHandler(),
		GetOrderAssignments:    c.CreateGetOrderAssignmentsQueryHandler(),
		GetDeliveryReport:      c.CreateGetDeliveryReportQueryHandler(),
	}, c.clock, http.AssignmentDefaults{
		AcceptTimeoutMinutes:    c.config.DefaultAcceptTimeoutMinutes,
		ExpectedDeliveryMinutes: c.config.DefaultExpectedDeliveryMinutes,
	})
}

// CreateRouter returns the echo instance serving the API.
func (c *CompositionRoot) CreateRouter() (*echo.Echo, error) {
	return http.NewRouter(c.CreateServer(), http.RouterConfig{
		JWTSecret: c.config.JWTSecret,
		Logger:    c.logger,
	})
}

// CreateJobManager returns the scheduler running the stale assignment sweep.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateExpireStaleAssignmentsCommandHandler(), c.config.ExpirySchedule, c.logger)
}

// FuncOrderUoWFactory adapts a function to commands.OrderUoWFactory.
type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

// FuncStaffUoWFactory adapts a function to commands.StaffUoWFactory.
type FuncStaffUoWFactory func() commands.StaffUoW

func (f FuncStaffUoWFactory) Create() commands.StaffUoW {
	return f()
}

// FuncPreparationUoWFactory adapts a function to commands.PreparationUoWFactory.
type FuncPreparationUoWFactory func() commands.PreparationUoW

func (f FuncPreparationUoWFactory) Create() commands.PreparationUoW {
	return f()
}

// FuncUoWFactory adapts a function to commands.UoWFactory.
type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
