package http

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"distribution/internal/adapters/out/report"
	"distribution/internal/core/application/usecases/commands"
	"distribution/internal/core/application/usecases/queries"
	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/core/domain/model/order"
	"distribution/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// Handlers bundles the use cases the HTTP interface exposes.
type Handlers struct {
	CreateOrder            commands.CreateOrderCommandHandler
	ConfirmOrder           commands.ConfirmOrderCommandHandler
	CancelOrder            commands.CancelOrderCommandHandler
	ReportUnavailableItems commands.ReportUnavailableItemsCommandHandler
	StartPreparation       commands.StartPreparationCommandHandler
	TogglePreparationItem  commands.TogglePreparationItemCommandHandler
	CompletePreparation    commands.CompletePreparationCommandHandler
	AssignDelivery         commands.AssignDeliveryCommandHandler
	AcceptAssignment       commands.AcceptAssignmentCommandHandler
	RejectAssignment       commands.RejectAssignmentCommandHandler
	MarkPickedUp           commands.MarkPickedUpCommandHandler
	MarkArriving           commands.MarkArrivingCommandHandler
	MarkDelivered          commands.MarkDeliveredCommandHandler
	CreateDeliveryStaff    commands.CreateDeliveryStaffCommandHandler
	SetStaffAvailability   commands.SetStaffAvailabilityCommandHandler

	GetOrder            queries.GetOrderQueryHandler
	GetOrders           queries.GetOrdersQueryHandler
	GetPreparationItems queries.GetPreparationItemsQueryHandler
	GetAvailableStaff   queries.GetAvailableStaffQueryHandler
	GetActiveDeliveries queries.GetActiveDeliveriesQueryHandler
	GetOrderAssignments queries.GetOrderAssignmentsQueryHandler
	GetDeliveryReport   queries.GetDeliveryReportQueryHandler
}

// AssignmentDefaults fill in the minutes an assign request leaves out.
type AssignmentDefaults struct {
	AcceptTimeoutMinutes    int
	ExpectedDeliveryMinutes int
}

// Server implements ServerInterface on top of the use cases.
type Server struct {
	h        Handlers
	clock    kernel.Clock
	defaults AssignmentDefaults
}

var _ ServerInterface = (*Server)(nil)

// NewServer creates a new HTTP server with the use case handlers it
// dispatches to. defaults fill in assignment timings the request omits.
func NewServer(h Handlers, clock kernel.Clock, defaults AssignmentDefaults) *Server {
	return &Server{h: h, clock: clock, defaults: defaults}
}

// CreateOrder handles POST /orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	if err := requireRole(ctx, RoleDistributor, RoleAdmin); err != nil {
		return err
	}

	var body NewOrder
	if err := ctx.Bind(&body); err != nil {
		return err
	}

	branchID, err := toKernel(body.BranchID)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("branchId", err)
	}

	items := make([]order.Item, 0, len(body.Items))
	for _, line := range body.Items {
		price, err := decimal.NewFromString(line.Price)
		if err != nil {
			return errs.NewValueIsInvalidErrorWithCause("price", err)
		}
		item, err := order.NewItem(line.ProductID, line.Name, line.Quantity, price)
		if err != nil {
			return err
		}
		items = append(items, item)
	}

	shipping, err := order.NewShippingInfo(body.Shipping.RecipientName, body.Shipping.Phone,
		body.Shipping.Address, body.Shipping.Notes)
	if err != nil {
		return err
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, branchID, body.CustomerID, items, shipping)
	if err != nil {
		return err
	}
	if err = s.h.CreateOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, CreatedID{ID: orderID.String()})
}

// GetOrder handles GET /orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context, orderID uuid.UUID) error {
	if err := requireRole(ctx, RoleDistributor, RoleAdmin); err != nil {
		return err
	}
	id, err := toKernel(orderID)
	if err != nil {
		return err
	}
	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return err
	}

	o, err := s.h.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toOrder(o))
}

// UpdateOrderStatus handles POST /orders/{orderId}/status: the confirmation
// gate and the two ways an order ends early.
func (s *Server) UpdateOrderStatus(ctx echo.Context, orderID uuid.UUID) error {
	if err := requireRole(ctx, RoleDistributor, RoleAdmin); err != nil {
		return err
	}
	id, err := toKernel(orderID)
	if err != nil {
		return err
	}

	var body OrderStatusChange
	if err = ctx.Bind(&body); err != nil {
		return err
	}

	rctx := ctx.Request().Context()
	switch body.Status {
	case order.Confirmed.String():
		var cmd commands.ConfirmOrderCommand
		if cmd, err = commands.NewConfirmOrderCommand(id); err == nil {
			err = s.h.ConfirmOrder.Handle(rctx, cmd)
		}
	case order.Cancelled.String():
		var cmd commands.CancelOrderCommand
		if cmd, err = commands.NewCancelOrderCommand(id, body.Reason); err == nil {
			err = s.h.CancelOrder.Handle(rctx, cmd)
		}
	case order.Rejected.String():
		var cmd commands.CancelOrderCommand
		if cmd, err = commands.NewRejectOrderCommand(id, body.Reason); err == nil {
			err = s.h.CancelOrder.Handle(rctx, cmd)
		}
	default:
		err = errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%q cannot be set directly", body.Status))
	}
	if err != nil {
		return err
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ReportUnavailableItems handles POST /orders/{orderId}/unavailable-items.
func (s *Server) ReportUnavailableItems(ctx echo.Context, orderID uuid.UUID) error {
	if err := requireRole(ctx, RoleDistributor, RoleAdmin); err != nil {
		return err
	}
	id, err := toKernel(orderID)
	if err != nil {
		return err
	}

	var body UnavailableItemsReport
	if err = ctx.Bind(&body); err != nil {
		return err
	}

	items := make([]order.UnavailableItem, 0, len(body.Items))
	for _, line := range body.Items {
		pref, err := order.ParseSubstitutionPreference(line.SubstitutionPreference)
		if err != nil {
			return err
		}
		item, err := order.NewUnavailableItem(line.ProductID, line.Name, line.Quantity, pref)
		if err != nil {
			return err
		}
		items = append(items, item)
	}

	cmd, err := commands.NewReportUnavailableItemsCommand(id, items)
	if err != nil {
		return err
	}
	if err = s.h.ReportUnavailableItems.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

// StartPreparation handles POST /distribution/start-preparation/{orderId}
// and answers with the checklist.
func (s *Server) StartPreparation(ctx echo.Context, orderID uuid.UUID) error {
	if err := requireRole(ctx, RoleDistributor, RoleAdmin); err != nil {
		return err
	}
	id, err := toKernel(orderID)
	if err != nil {
		return err
	}
	cmd, err := commands.NewStartPreparationCommand(id)
	if err != nil {
		return err
	}
	if err = s.h.StartPreparation.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return s.GetPreparationItems(ctx, orderID)
}

// GetPreparationItems handles GET /distribution/preparation-items/{orderId}.
func (s *Server) GetPreparationItems(ctx echo.Context, orderID uuid.UUID) error {
	if err := requireRole(ctx, RoleDistributor, RoleAdmin); err != nil {
		return err
	}
	id, err := toKernel(orderID)
	if err != nil {
		return err
	}
	query, err := queries.NewGetPreparationItemsQuery(id)
	if err != nil {
		return err
	}

	items, err := s.h.GetPreparationItems.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toPreparationItems(items))
}

// TogglePreparationItem handles PUT /distribution/preparation-items/{itemId}.
func (s *Server) TogglePreparationItem(ctx echo.Context, itemID uuid.UUID) error {
	if err := requireRole(ctx, RoleDistributor, RoleAdmin); err != nil {
		return err
	}
	id, err := toKernel(itemID)
	if err != nil {
		return err
	}

	var body PreparationItemToggle
	if err = ctx.Bind(&body); err != nil {
		return err
	}

	cmd, err := commands.NewTogglePreparationItemCommand(id, body.IsPrepared, body.Notes)
	if err != nil {
		return err
	}
	if err = s.h.TogglePreparationItem.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

// CompletePreparation handles POST /distribution/complete-preparation/{orderId}.
// An unfinished checklist answers 422 with the remaining item ids.
func (s *Server) CompletePreparation(ctx echo.Context, orderID uuid.UUID) error {
	if err := requireRole(ctx, RoleDistributor, RoleAdmin); err != nil {
		return err
	}
	id, err := toKernel(orderID)
	if err != nil {
		return err
	}
	cmd, err := commands.NewCompletePreparationCommand(id)
	if err != nil {
		return err
	}
	if err = s.h.CompletePreparation.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

// GetAvailableStaff handles GET /distribution/available-delivery/{branchId}.
func (s *Server) GetAvailableStaff(ctx echo.Context, branchID uuid.UUID) error {
	if err := requireRole(ctx, RoleDistributor, RoleAdmin); err != nil {
		return err
	}
	id, err := toKernel(branchID)
	if err != nil {
		return err
	}
	query, err := queries.NewGetAvailableStaffQuery(id)
	if err != nil {
		return err
	}

	staff, err := s.h.GetAvailableStaff.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]AvailableStaff, 0, len(staff))
	for _, c := range staff {
		response = append(response, AvailableStaff{
			ID:            c.ID.String(),
			Name:          c.Name,
			Phone:         c.Phone,
			CurrentOrders: c.CurrentOrders,
			MaxOrders:     c.MaxOrders,
		})
	}
	return ctx.JSON(http.StatusOK, response)
}

// AssignDelivery handles POST /distribution/assign-delivery/{orderId}.
func (s *Server) AssignDelivery(ctx echo.Context, orderID uuid.UUID) error {
	if err := requireRole(ctx, RoleDistributor, RoleAdmin); err != nil {
		return err
	}
	id, err := toKernel(orderID)
	if err != nil {
		return err
	}

	var body NewAssignment
	if err = ctx.Bind(&body); err != nil {
		return err
	}
	staffID, err := toKernel(body.StaffID)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("staffId", err)
	}

	acceptTimeout := s.defaults.AcceptTimeoutMinutes
	if body.AcceptTimeoutMinutes != nil {
		acceptTimeout = *body.AcceptTimeoutMinutes
	}
	expectedDelivery := s.defaults.ExpectedDeliveryMinutes
	if body.ExpectedDeliveryMinutes != nil {
		expectedDelivery = *body.ExpectedDeliveryMinutes
	}

	cmd, err := commands.NewAssignDeliveryCommand(id, staffID, acceptTimeout, expectedDelivery)
	if err != nil {
		return err
	}
	created, err := s.h.AssignDelivery.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, assignmentFromDomain(created))
}

// AcceptOrder handles POST /distribution/accept-order/{orderId}.
func (s *Server) AcceptOrder(ctx echo.Context, orderID uuid.UUID) error {
	id, courierID, err := courierTarget(ctx, orderID)
	if err != nil {
		return err
	}
	cmd, err := commands.NewAcceptAssignmentCommand(id, courierID)
	if err != nil {
		return err
	}
	if err = s.h.AcceptAssignment.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

// RejectOrder handles POST /distribution/reject-order/{orderId}. The body
// with a reason is optional.
func (s *Server) RejectOrder(ctx echo.Context, orderID uuid.UUID) error {
	id, courierID, err := courierTarget(ctx, orderID)
	if err != nil {
		return err
	}

	var body Reason
	if ctx.Request().ContentLength != 0 {
		if err = ctx.Bind(&body); err != nil {
			return err
		}
	}

	cmd, err := commands.NewRejectAssignmentCommand(id, courierID, body.Reason)
	if err != nil {
		return err
	}
	if err = s.h.RejectAssignment.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

// PickupOrder handles POST /distribution/pickup-order/{orderId}.
func (s *Server) PickupOrder(ctx echo.Context, orderID uuid.UUID) error {
	id, courierID, err := courierTarget(ctx, orderID)
	if err != nil {
		return err
	}
	cmd, err := commands.NewMarkPickedUpCommand(id, courierID)
	if err != nil {
		return err
	}
	if err = s.h.MarkPickedUp.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

// ArrivingOrder handles POST /distribution/arriving-order/{orderId}.
func (s *Server) ArrivingOrder(ctx echo.Context, orderID uuid.UUID) error {
	id, courierID, err := courierTarget(ctx, orderID)
	if err != nil {
		return err
	}
	cmd, err := commands.NewMarkArrivingCommand(id, courierID)
	if err != nil {
		return err
	}
	if err = s.h.MarkArriving.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

// DeliverOrder handles POST /distribution/deliver-order/{orderId}.
func (s *Server) DeliverOrder(ctx echo.Context, orderID uuid.UUID) error {
	id, courierID, err := courierTarget(ctx, orderID)
	if err != nil {
		return err
	}
	cmd, err := commands.NewMarkDeliveredCommand(id, courierID)
	if err != nil {
		return err
	}
	if err = s.h.MarkDelivered.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

// GetActiveDeliveries handles GET /distribution/active-deliveries.
func (s *Server) GetActiveDeliveries(ctx echo.Context, params GetActiveDeliveriesParams) error {
	if err := requireRole(ctx, RoleDistributor, RoleAdmin); err != nil {
		return err
	}

	var branchID *kernel.UUID
	if params.BranchID != nil {
		id, err := toKernel(*params.BranchID)
		if err != nil {
			return err
		}
		branchID = &id
	}
	query, err := queries.NewGetActiveDeliveriesQuery(branchID)
	if err != nil {
		return err
	}

	active, err := s.h.GetActiveDeliveries.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toAssignments(active))
}

// GetOrders handles GET /distribution/orders.
func (s *Server) GetOrders(ctx echo.Context, params GetOrdersParams) error {
	if err := requireRole(ctx, RoleDistributor, RoleAdmin); err != nil {
		return err
	}
	branchID, err := toKernel(params.BranchID)
	if err != nil {
		return err
	}

	var status *order.Status
	if params.Status != nil {
		parsed, err := order.ParseStatus(*params.Status)
		if err != nil {
			return err
		}
		status = &parsed
	}
	query, err := queries.NewGetOrdersQuery(branchID, status)
	if err != nil {
		return err
	}

	orders, err := s.h.GetOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]Order, 0, len(orders))
	for _, o := range orders {
		response = append(response, toOrder(o))
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetOrderAssignments handles GET /distribution/orders/{orderId}/assignments.
func (s *Server) GetOrderAssignments(ctx echo.Context, orderID uuid.UUID) error {
	if err := requireRole(ctx, RoleDistributor, RoleAdmin); err != nil {
		return err
	}
	id, err := toKernel(orderID)
	if err != nil {
		return err
	}
	query, err := queries.NewGetOrderAssignmentsQuery(id)
	if err != nil {
		return err
	}

	history, err := s.h.GetOrderAssignments.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toAssignments(history))
}

// ExportDeliveryReport handles GET /distribution/reports/deliveries.xlsx.
// Without from and to the report covers the last 24 hours.
func (s *Server) ExportDeliveryReport(ctx echo.Context, params ExportDeliveryReportParams) error {
	if err := requireRole(ctx, RoleDistributor, RoleAdmin); err != nil {
		return err
	}
	branchID, err := toKernel(params.BranchID)
	if err != nil {
		return err
	}

	to := s.clock.Now()
	if params.To != nil {
		to = *params.To
	}
	from := to.Add(-24 * time.Hour)
	if params.From != nil {
		from = *params.From
	}

	query, err := queries.NewGetDeliveryReportQuery(branchID, from, to)
	if err != nil {
		return err
	}
	rep, err := s.h.GetDeliveryReport.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err = report.WriteDeliveryReport(&buf, rep); err != nil {
		return err
	}

	ctx.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="deliveries-%s.xlsx"`, rep.From.Format("20060102")))
	return ctx.Blob(http.StatusOK, report.ContentType, buf.Bytes())
}

// CreateDeliveryStaff handles POST /delivery-staff.
func (s *Server) CreateDeliveryStaff(ctx echo.Context) error {
	if err := requireRole(ctx, RoleAdmin, RoleDistributor); err != nil {
		return err
	}

	var body NewDeliveryStaff
	if err := ctx.Bind(&body); err != nil {
		return err
	}
	branchIDs, err := toKernelAll(body.BranchIDs)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("branchIds", err)
	}

	staffID := kernel.NewUUID()
	cmd, err := commands.NewCreateDeliveryStaffCommand(staffID, body.Name, body.Phone, branchIDs, body.MaxOrders)
	if err != nil {
		return err
	}
	if err = s.h.CreateDeliveryStaff.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, CreatedID{ID: staffID.String()})
}

// SetStaffAvailability handles PUT /delivery-staff/{staffId}/availability.
func (s *Server) SetStaffAvailability(ctx echo.Context, staffID uuid.UUID) error {
	if err := requireRole(ctx, RoleAdmin, RoleDistributor); err != nil {
		return err
	}
	id, err := toKernel(staffID)
	if err != nil {
		return err
	}

	var body Availability
	if err = ctx.Bind(&body); err != nil {
		return err
	}

	cmd, err := commands.NewSetStaffAvailabilityCommand(id, body.IsAvailable)
	if err != nil {
		return err
	}
	if err = s.h.SetStaffAvailability.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func courierTarget(ctx echo.Context, orderID uuid.UUID) (kernel.UUID, *kernel.UUID, error) {
	courierID, err := actingCourier(ctx)
	if err != nil {
		return kernel.UUID{}, nil, err
	}
	id, err := toKernel(orderID)
	if err != nil {
		return kernel.UUID{}, nil, err
	}
	return id, courierID, nil
}
