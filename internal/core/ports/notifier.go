package ports

import (
	"context"
	"time"

	"distribution/internal/core/domain/model/kernel"
)

// Courier-facing events.
const (
	CourierAssigned          = "assignment.assigned"
	CourierAssignmentExpired = "assignment.expired"
	CourierAssignmentRevoked = "assignment.cancelled"
)

// CourierNotification tells a courier about an assignment.
type CourierNotification struct {
	Event          string
	StaffID        kernel.UUID
	OrderID        kernel.UUID
	AssignmentID   kernel.UUID
	AcceptDeadline time.Time
	OccurredAt     time.Time
}

// CustomerNotification tells a customer that their order changed status.
type CustomerNotification struct {
	CustomerID string
	OrderID    kernel.UUID
	BranchID   kernel.UUID
	Status     string
	Reason     string
	OccurredAt time.Time
}

// Notifier is the fire-and-forget sink for courier and customer messages.
// It is called only after a successful commit; an error is logged by the
// caller and never undoes the state change.
type Notifier interface {
	NotifyCourier(ctx context.Context, n CourierNotification) error
	NotifyCustomer(ctx context.Context, n CustomerNotification) error
}
