package http

import (
	"time"

	"distribution/internal/core/application/usecases/queries"
	"distribution/internal/core/domain/model/assignment"
	"distribution/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// NewOrderItem defines model for NewOrderItem.
type NewOrderItem struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Price     string `json:"price"`
}

// Shipping defines model for Shipping.
type Shipping struct {
	RecipientName string `json:"recipientName"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	Notes         string `json:"notes,omitempty"`
}

// NewOrder defines model for NewOrder.
type NewOrder struct {
	BranchID   uuid.UUID      `json:"branchId"`
	CustomerID string         `json:"customerId"`
	Items      []NewOrderItem `json:"items"`
	Shipping   Shipping       `json:"shipping"`
}

// OrderStatusChange defines model for OrderStatusChange.
type OrderStatusChange struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

// UnavailableItem defines model for UnavailableItem.
type UnavailableItem struct {
	ProductID              string `json:"productId"`
	Name                   string `json:"name"`
	Quantity               int    `json:"quantity"`
	SubstitutionPreference string `json:"substitutionPreference"`
}

// UnavailableItemsReport defines model for UnavailableItemsReport.
type UnavailableItemsReport struct {
	Items []UnavailableItem `json:"items"`
}

// PreparationItemToggle defines model for PreparationItemToggle.
type PreparationItemToggle struct {
	IsPrepared bool    `json:"isPrepared"`
	Notes      *string `json:"notes,omitempty"`
}

// NewAssignment defines model for NewAssignment.
type NewAssignment struct {
	StaffID                 uuid.UUID `json:"staffId"`
	AcceptTimeoutMinutes    *int      `json:"acceptTimeoutMinutes,omitempty"`
	ExpectedDeliveryMinutes *int      `json:"expectedDeliveryMinutes,omitempty"`
}

// Reason defines model for Reason.
type Reason struct {
	Reason string `json:"reason"`
}

// NewDeliveryStaff defines model for NewDeliveryStaff.
type NewDeliveryStaff struct {
	Name      string      `json:"name"`
	Phone     string      `json:"phone"`
	BranchIDs []uuid.UUID `json:"branchIds"`
	MaxOrders int         `json:"maxOrders"`
}

// Availability defines model for Availability.
type Availability struct {
	IsAvailable bool `json:"isAvailable"`
}

// CreatedID defines model for CreatedID.
type CreatedID struct {
	ID string `json:"id"`
}

// Order defines model for Order.
type Order struct {
	ID               string                            `json:"id"`
	BranchID         string                            `json:"branchId"`
	CustomerID       string                            `json:"customerId"`
	Status           string                            `json:"status"`
	StatusReason     string                            `json:"statusReason,omitempty"`
	Items            []queries.OrderItemResponse       `json:"items"`
	UnavailableItems []queries.UnavailableItemResponse `json:"unavailableItems"`
	Shipping         queries.ShippingResponse          `json:"shipping"`
	Total            decimal.Decimal                   `json:"total"`
	CreatedAt        time.Time                         `json:"createdAt"`
	UpdatedAt        time.Time                         `json:"updatedAt"`
}

func toOrder(o queries.OrderResponse) Order {
	return Order{
		ID:               o.ID.String(),
		BranchID:         o.BranchID.String(),
		CustomerID:       o.CustomerID,
		Status:           o.Status,
		StatusReason:     o.StatusReason,
		Items:            o.Items,
		UnavailableItems: o.UnavailableItems,
		Shipping:         o.Shipping,
		Total:            o.Total,
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
	}
}

// PreparationItem defines model for PreparationItem.
type PreparationItem struct {
	ID          string     `json:"id"`
	ProductID   string     `json:"productId"`
	ProductName string     `json:"productName"`
	Quantity    int        `json:"quantity"`
	IsPrepared  bool       `json:"isPrepared"`
	Notes       string     `json:"notes"`
	PreparedAt  *time.Time `json:"preparedAt"`
}

// PreparationItems defines model for PreparationItems.
type PreparationItems struct {
	OrderID     string            `json:"orderId"`
	OrderStatus string            `json:"orderStatus"`
	Items       []PreparationItem `json:"items"`
	Total       int               `json:"total"`
	Prepared    int               `json:"prepared"`
}

func toPreparationItems(r queries.PreparationItemsResponse) PreparationItems {
	items := make([]PreparationItem, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, PreparationItem{
			ID:          item.ID.String(),
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			IsPrepared:  item.IsPrepared,
			Notes:       item.Notes,
			PreparedAt:  item.PreparedAt,
		})
	}
	return PreparationItems{
		OrderID:     r.OrderID.String(),
		OrderStatus: r.OrderStatus,
		Items:       items,
		Total:       r.Total,
		Prepared:    r.Prepared,
	}
}

// AvailableStaff defines model for AvailableStaff.
type AvailableStaff struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	CurrentOrders int    `json:"currentOrders"`
	MaxOrders     int    `json:"maxOrders"`
}

// Assignment defines model for Assignment.
type Assignment struct {
	ID                      string     `json:"id"`
	OrderID                 string     `json:"orderId"`
	BranchID                string     `json:"branchId,omitempty"`
	StaffID                 string     `json:"staffId"`
	StaffName               string     `json:"staffName,omitempty"`
	Status                  string     `json:"status"`
	AcceptDeadline          time.Time  `json:"acceptDeadline"`
	ExpectedDeliveryMinutes int        `json:"expectedDeliveryMinutes"`
	AssignedAt              time.Time  `json:"assignedAt"`
	AcceptedAt              *time.Time `json:"acceptedAt"`
	PickedUpAt              *time.Time `json:"pickedUpAt"`
	ArrivedAt               *time.Time `json:"arrivedAt"`
	DeliveredAt             *time.Time `json:"deliveredAt"`
	RejectedAt              *time.Time `json:"rejectedAt"`
	ExpiredAt               *time.Time `json:"expiredAt"`
	CancelledAt             *time.Time `json:"cancelledAt"`
	RejectReason            string     `json:"rejectReason,omitempty"`
	DeliveryMinutes         *float64   `json:"deliveryMinutes"`
	IsLate                  *bool      `json:"isLate"`
}

func toAssignments(rows []queries.AssignmentResponse) []Assignment {
	out := make([]Assignment, 0, len(rows))
	for _, a := range rows {
		out = append(out, Assignment{
			ID:                      a.ID.String(),
			OrderID:                 a.OrderID.String(),
			BranchID:                a.BranchID.String(),
			StaffID:                 a.StaffID.String(),
			StaffName:               a.StaffName,
			Status:                  a.Status,
			AcceptDeadline:          a.AcceptDeadline,
			ExpectedDeliveryMinutes: a.ExpectedDeliveryMinutes,
			AssignedAt:              a.AssignedAt,
			AcceptedAt:              a.AcceptedAt,
			PickedUpAt:              a.PickedUpAt,
			ArrivedAt:               a.ArrivedAt,
			DeliveredAt:             a.DeliveredAt,
			RejectedAt:              a.RejectedAt,
			ExpiredAt:               a.ExpiredAt,
			CancelledAt:             a.CancelledAt,
			RejectReason:            a.RejectReason,
			DeliveryMinutes:         a.DeliveryMinutes,
			IsLate:                  a.IsLate,
		})
	}
	return out
}

// assignmentFromDomain renders a freshly created assignment, before any
// read model row exists for it.
func assignmentFromDomain(a *assignment.Assignment) Assignment {
	return Assignment{
		ID:                      a.ID().String(),
		OrderID:                 a.OrderID().String(),
		StaffID:                 a.StaffID().String(),
		Status:                  a.Status().String(),
		AcceptDeadline:          a.AcceptDeadline(),
		ExpectedDeliveryMinutes: a.ExpectedDeliveryMinutes(),
		AssignedAt:              a.AssignedAt(),
	}
}

func toKernel(id uuid.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(id[:])
}

func toKernelAll(ids []uuid.UUID) ([]kernel.UUID, error) {
	out := make([]kernel.UUID, 0, len(ids))
	for _, id := range ids {
		k, err := toKernel(id)
		if err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	return out, nil
}
