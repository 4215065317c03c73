package commands

import (
	"context"
	"log/slog"
	"time"

	"distribution/internal/core/domain/model/assignment"
	"distribution/internal/core/domain/model/order"
	"distribution/internal/core/ports"
)

// notifyCustomer and notifyCourier run after commit. A failed send is
// logged and dropped.
func notifyCustomer(ctx context.Context, notifier ports.Notifier, o *order.Order, status string, at time.Time) {
	if notifier == nil {
		return
	}
	n := ports.CustomerNotification{
		CustomerID: o.CustomerID(),
		OrderID:    o.ID(),
		BranchID:   o.BranchID(),
		Status:     status,
		Reason:     o.StatusReason(),
		OccurredAt: at,
	}
	if err := notifier.NotifyCustomer(ctx, n); err != nil {
		slog.WarnContext(ctx, "customer notification dropped",
			"orderId", o.ID().String(), "status", status, "error", err)
	}
}

func notifyCourier(ctx context.Context, notifier ports.Notifier, a *assignment.Assignment, event string, at time.Time) {
	if notifier == nil {
		return
	}
	n := ports.CourierNotification{
		Event:          event,
		StaffID:        a.StaffID(),
		OrderID:        a.OrderID(),
		AssignmentID:   a.ID(),
		AcceptDeadline: a.AcceptDeadline(),
		OccurredAt:     at,
	}
	if err := notifier.NotifyCourier(ctx, n); err != nil {
		slog.WarnContext(ctx, "courier notification dropped",
			"assignmentId", a.ID().String(), "event", event, "error", err)
	}
}
