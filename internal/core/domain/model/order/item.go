package order

import (
	"errors"
	"fmt"
	"strings"

	"distribution/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Item is one line of an order as placed by the customer.
type Item struct {
	productID string
	name      string
	quantity  int
	price     decimal.Decimal
}

// NewItem validates a line item. Price is the unit price and may be zero
// for promotional lines.
func NewItem(productID, name string, quantity int, price decimal.Decimal) (Item, error) {
	var problems []error
	if strings.TrimSpace(productID) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("productId"))
	}
	if strings.TrimSpace(name) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("name"))
	}
	if quantity <= 0 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"quantity", fmt.Errorf("%d is not greater than 0", quantity)))
	}
	if price.IsNegative() {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"price", fmt.Errorf("%s is negative", price)))
	}
	if len(problems) > 0 {
		return Item{}, errors.Join(problems...)
	}
	return Item{productID: productID, name: name, quantity: quantity, price: price}, nil
}

// ProductID is the catalogue identifier of the line.
func (i Item) ProductID() string { return i.productID }

// Name is the product name shown to the customer.
func (i Item) Name() string { return i.name }

// Quantity is the number of units ordered.
func (i Item) Quantity() int { return i.quantity }

// Price is the unit price at checkout.
func (i Item) Price() decimal.Decimal { return i.price }

// Subtotal is quantity times unit price.
func (i Item) Subtotal() decimal.Decimal {
	return i.price.Mul(decimal.NewFromInt(int64(i.quantity)))
}

// SubstitutionPreference is what the customer wants done with a line the
// branch cannot fulfil.
type SubstitutionPreference string

const (
	SubstitutionCallMe         SubstitutionPreference = "call_me"
	SubstitutionSimilarProduct SubstitutionPreference = "similar_product"
	SubstitutionCancelItem     SubstitutionPreference = "cancel_item"
	SubstitutionContact        SubstitutionPreference = "contact"
	SubstitutionNone           SubstitutionPreference = "none"
)

// ParseSubstitutionPreference accepts the wire names of the preferences.
func ParseSubstitutionPreference(s string) (SubstitutionPreference, error) {
	switch p := SubstitutionPreference(s); p {
	case SubstitutionCallMe, SubstitutionSimilarProduct, SubstitutionCancelItem, SubstitutionContact, SubstitutionNone:
		return p, nil
	case "":
		return SubstitutionNone, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause(
			"substitutionPreference", fmt.Errorf("%q is not a valid preference", s))
	}
}

// UnavailableItem records a shortage without touching the original line.
type UnavailableItem struct {
	productID  string
	name       string
	quantity   int
	preference SubstitutionPreference
}

// NewUnavailableItem records that quantity units of productID are missing.
func NewUnavailableItem(productID, name string, quantity int, preference SubstitutionPreference) (UnavailableItem, error) {
	if strings.TrimSpace(productID) == "" {
		return UnavailableItem{}, errs.NewValueIsRequiredError("productId")
	}
	if quantity <= 0 {
		return UnavailableItem{}, errs.NewValueIsInvalidErrorWithCause(
			"quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	if _, err := ParseSubstitutionPreference(string(preference)); err != nil {
		return UnavailableItem{}, err
	}
	if preference == "" {
		preference = SubstitutionNone
	}
	return UnavailableItem{productID: productID, name: name, quantity: quantity, preference: preference}, nil
}

// ProductID is the order line that is short.
func (u UnavailableItem) ProductID() string { return u.productID }

// Name is the product name of the missing line.
func (u UnavailableItem) Name() string { return u.name }

// Quantity is the number of missing units.
func (u UnavailableItem) Quantity() int { return u.quantity }

// Preference is what the customer wants done about the shortage.
func (u UnavailableItem) Preference() SubstitutionPreference { return u.preference }

// ShippingInfo is where and to whom the order goes.
type ShippingInfo struct {
	recipientName string
	phone         string
	address       string
	notes         string
}

// NewShippingInfo requires a recipient, a phone and an address.
func NewShippingInfo(recipientName, phone, address, notes string) (ShippingInfo, error) {
	if strings.TrimSpace(address) == "" {
		return ShippingInfo{}, errs.NewValueIsRequiredError("address")
	}
	return ShippingInfo{recipientName: recipientName, phone: phone, address: address, notes: notes}, nil
}

// RecipientName is who receives the order.
func (s ShippingInfo) RecipientName() string { return s.recipientName }

// Phone is the contact number of the recipient.
func (s ShippingInfo) Phone() string { return s.phone }

// Address is the delivery address.
func (s ShippingInfo) Address() string { return s.address }

// Notes are free-text delivery instructions.
func (s ShippingInfo) Notes() string { return s.notes }
