package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// GetActiveDeliveriesParams defines parameters for GetActiveDeliveries.
type GetActiveDeliveriesParams struct {
	BranchID *uuid.UUID
}

// GetOrdersParams defines parameters for GetOrders.
type GetOrdersParams struct {
	BranchID uuid.UUID
	Status   *string
}

// ExportDeliveryReportParams defines parameters for ExportDeliveryReport.
type ExportDeliveryReportParams struct {
	BranchID uuid.UUID
	From     *time.Time
	To       *time.Time
}

// ServerInterface lists one method per operation of the OpenAPI document.
// Path and query parameters arrive already bound.
type ServerInterface interface {
	CreateOrder(ctx echo.Context) error
	GetOrder(ctx echo.Context, orderID uuid.UUID) error
	UpdateOrderStatus(ctx echo.Context, orderID uuid.UUID) error
	ReportUnavailableItems(ctx echo.Context, orderID uuid.UUID) error

	StartPreparation(ctx echo.Context, orderID uuid.UUID) error
	GetPreparationItems(ctx echo.Context, orderID uuid.UUID) error
	TogglePreparationItem(ctx echo.Context, itemID uuid.UUID) error
	CompletePreparation(ctx echo.Context, orderID uuid.UUID) error

	GetAvailableStaff(ctx echo.Context, branchID uuid.UUID) error
	AssignDelivery(ctx echo.Context, orderID uuid.UUID) error
	AcceptOrder(ctx echo.Context, orderID uuid.UUID) error
	RejectOrder(ctx echo.Context, orderID uuid.UUID) error
	PickupOrder(ctx echo.Context, orderID uuid.UUID) error
	ArrivingOrder(ctx echo.Context, orderID uuid.UUID) error
	DeliverOrder(ctx echo.Context, orderID uuid.UUID) error

	GetActiveDeliveries(ctx echo.Context, params GetActiveDeliveriesParams) error
	GetOrders(ctx echo.Context, params GetOrdersParams) error
	GetOrderAssignments(ctx echo.Context, orderID uuid.UUID) error
	ExportDeliveryReport(ctx echo.Context, params ExportDeliveryReportParams) error

	CreateDeliveryStaff(ctx echo.Context) error
	SetStaffAvailability(ctx echo.Context, staffID uuid.UUID) error
}

// ServerInterfaceWrapper converts echo contexts to typed parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// EchoRouter is satisfied by *echo.Echo and *echo.Group.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds every operation route to router.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	w := &ServerInterfaceWrapper{Handler: si}

	router.POST("/orders", w.Handler.CreateOrder)
	router.GET("/orders/:orderId", w.withPathID("orderId", si.GetOrder))
	router.POST("/orders/:orderId/status", w.withPathID("orderId", si.UpdateOrderStatus))
	router.POST("/orders/:orderId/unavailable-items", w.withPathID("orderId", si.ReportUnavailableItems))

	router.POST("/distribution/start-preparation/:orderId", w.withPathID("orderId", si.StartPreparation))
	router.GET("/distribution/preparation-items/:id", w.withPathID("id", si.GetPreparationItems))
	router.PUT("/distribution/preparation-items/:id", w.withPathID("id", si.TogglePreparationItem))
	router.POST("/distribution/complete-preparation/:orderId", w.withPathID("orderId", si.CompletePreparation))

	router.GET("/distribution/available-delivery/:branchId", w.withPathID("branchId", si.GetAvailableStaff))
	router.POST("/distribution/assign-delivery/:orderId", w.withPathID("orderId", si.AssignDelivery))
	router.POST("/distribution/accept-order/:orderId", w.withPathID("orderId", si.AcceptOrder))
	router.POST("/distribution/reject-order/:orderId", w.withPathID("orderId", si.RejectOrder))
	router.POST("/distribution/pickup-order/:orderId", w.withPathID("orderId", si.PickupOrder))
	router.POST("/distribution/arriving-order/:orderId", w.withPathID("orderId", si.ArrivingOrder))
	router.POST("/distribution/deliver-order/:orderId", w.withPathID("orderId", si.DeliverOrder))

	router.GET("/distribution/active-deliveries", w.GetActiveDeliveries)
	router.GET("/distribution/orders", w.GetOrders)
	router.GET("/distribution/orders/:orderId/assignments", w.withPathID("orderId", si.GetOrderAssignments))
	router.GET("/distribution/reports/deliveries.xlsx", w.ExportDeliveryReport)

	router.POST("/delivery-staff", w.Handler.CreateDeliveryStaff)
	router.PUT("/delivery-staff/:staffId/availability", w.withPathID("staffId", si.SetStaffAvailability))
}

func (w *ServerInterfaceWrapper) withPathID(
	name string,
	handle func(echo.Context, uuid.UUID) error,
) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		var id uuid.UUID
		err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &id,
			runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
		if err != nil {
			return invalidParameter(name, err)
		}
		return handle(ctx, id)
	}
}

// GetActiveDeliveries converts echo context to params.
func (w *ServerInterfaceWrapper) GetActiveDeliveries(ctx echo.Context) error {
	var params GetActiveDeliveriesParams
	if err := runtime.BindQueryParameter("form", true, false, "branchId", ctx.QueryParams(), &params.BranchID); err != nil {
		return invalidParameter("branchId", err)
	}
	return w.Handler.GetActiveDeliveries(ctx, params)
}

// GetOrders converts echo context to params.
func (w *ServerInterfaceWrapper) GetOrders(ctx echo.Context) error {
	var params GetOrdersParams
	if err := runtime.BindQueryParameter("form", true, true, "branchId", ctx.QueryParams(), &params.BranchID); err != nil {
		return invalidParameter("branchId", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "status", ctx.QueryParams(), &params.Status); err != nil {
		return invalidParameter("status", err)
	}
	return w.Handler.GetOrders(ctx, params)
}

// ExportDeliveryReport converts echo context to params.
func (w *ServerInterfaceWrapper) ExportDeliveryReport(ctx echo.Context) error {
	var params ExportDeliveryReportParams
	if err := runtime.BindQueryParameter("form", true, true, "branchId", ctx.QueryParams(), &params.BranchID); err != nil {
		return invalidParameter("branchId", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "from", ctx.QueryParams(), &params.From); err != nil {
		return invalidParameter("from", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "to", ctx.QueryParams(), &params.To); err != nil {
		return invalidParameter("to", err)
	}
	return w.Handler.ExportDeliveryReport(ctx, params)
}

func invalidParameter(name string, err error) error {
	return echo.NewHTTPError(http.StatusBadRequest,
		fmt.Sprintf("Invalid format for parameter %s: %s", name, err)).SetInternal(err)
}
