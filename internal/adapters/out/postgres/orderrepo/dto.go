// Package orderrepo maps the order aggregate to the orders table. Lines,
// shortages and shipping details are stored as JSON columns; they are only
// ever read together with the order.
package orderrepo

import (
	"encoding/json"
	"time"

	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// OrderDTO is the orders row.
type OrderDTO struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey"`
	BranchID         uuid.UUID      `gorm:"type:uuid;not null;index:idx_orders_branch_status"`
	CustomerID       string         `gorm:"type:varchar(64);not null"`
	Items            datatypes.JSON `gorm:"not null"`
	UnavailableItems datatypes.JSON
	Shipping         datatypes.JSON
	Status           int       `gorm:"not null;index:idx_orders_branch_status"`
	StatusReason     string    `gorm:"type:text"`
	CreatedAt        time.Time `gorm:"autoCreateTime:false;not null"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime:false;not null"`
	Version          int       `gorm:"not null;default:0"`
}

// TableName maps orders to "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

type itemDTO struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type unavailableItemDTO struct {
	ProductID              string `json:"productId"`
	Name                   string `json:"name"`
	Quantity               int    `json:"quantity"`
	SubstitutionPreference string `json:"substitutionPreference"`
}

type shippingDTO struct {
	RecipientName string `json:"recipientName"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	Notes         string `json:"notes,omitempty"`
}

func fromDomain(o *order.Order) (OrderDTO, error) {
	items := make([]itemDTO, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, itemDTO{
			ProductID: item.ProductID(),
			Name:      item.Name(),
			Quantity:  item.Quantity(),
			Price:     item.Price(),
		})
	}

	unavailable := make([]unavailableItemDTO, 0, len(o.UnavailableItems()))
	for _, item := range o.UnavailableItems() {
		unavailable = append(unavailable, unavailableItemDTO{
			ProductID:              item.ProductID(),
			Name:                   item.Name(),
			Quantity:               item.Quantity(),
			SubstitutionPreference: string(item.Preference()),
		})
	}

	shipping := shippingDTO{
		RecipientName: o.Shipping().RecipientName(),
		Phone:         o.Shipping().Phone(),
		Address:       o.Shipping().Address(),
		Notes:         o.Shipping().Notes(),
	}

	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return OrderDTO{}, err
	}
	unavailableJSON, err := json.Marshal(unavailable)
	if err != nil {
		return OrderDTO{}, err
	}
	shippingJSON, err := json.Marshal(shipping)
	if err != nil {
		return OrderDTO{}, err
	}

	return OrderDTO{
		ID:               o.ID().Bytes(),
		BranchID:         o.BranchID().Bytes(),
		CustomerID:       o.CustomerID(),
		Items:            itemsJSON,
		UnavailableItems: unavailableJSON,
		Shipping:         shippingJSON,
		Status:           int(o.Status()),
		StatusReason:     o.StatusReason(),
		CreatedAt:        o.CreatedAt().UTC(),
		UpdatedAt:        o.UpdatedAt().UTC(),
		Version:          o.Version(),
	}, nil
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	branchID, err := kernel.UUIDFromBytes(dto.BranchID[:])
	if err != nil {
		return nil, err
	}

	var rawItems []itemDTO
	if err = json.Unmarshal(dto.Items, &rawItems); err != nil {
		return nil, err
	}
	items := make([]order.Item, 0, len(rawItems))
	for _, raw := range rawItems {
		item, itemErr := order.NewItem(raw.ProductID, raw.Name, raw.Quantity, raw.Price)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	var rawUnavailable []unavailableItemDTO
	if len(dto.UnavailableItems) > 0 {
		if err = json.Unmarshal(dto.UnavailableItems, &rawUnavailable); err != nil {
			return nil, err
		}
	}
	unavailable := make([]order.UnavailableItem, 0, len(rawUnavailable))
	for _, raw := range rawUnavailable {
		item, itemErr := order.NewUnavailableItem(raw.ProductID, raw.Name, raw.Quantity,
			order.SubstitutionPreference(raw.SubstitutionPreference))
		if itemErr != nil {
			return nil, itemErr
		}
		unavailable = append(unavailable, item)
	}

	var rawShipping shippingDTO
	if len(dto.Shipping) > 0 {
		if err = json.Unmarshal(dto.Shipping, &rawShipping); err != nil {
			return nil, err
		}
	}
	shipping, err := order.NewShippingInfo(rawShipping.RecipientName, rawShipping.Phone,
		rawShipping.Address, rawShipping.Notes)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.Snapshot{
		ID:               id,
		BranchID:         branchID,
		CustomerID:       dto.CustomerID,
		Items:            items,
		UnavailableItems: unavailable,
		Shipping:         shipping,
		Status:           order.Status(dto.Status),
		StatusReason:     dto.StatusReason,
		CreatedAt:        dto.CreatedAt,
		UpdatedAt:        dto.UpdatedAt,
		Version:          dto.Version,
	})
}
