// Package order provides the Order aggregate of the distribution domain.
//
// The package includes:
//   - Order: aggregate root holding branch, line items, shipping details and status
//   - Status: closed enumeration with a single transition table
//   - Item, UnavailableItem, ShippingInfo: value objects carried by the order
//
// Key business rules:
//   - Status only moves forward: pending -> confirmed -> preparing -> ready ->
//     out_for_delivery -> delivered
//   - cancelled and rejected are terminal and reachable from every non-terminal status
//   - Line items are fixed at creation; shortages are recorded as unavailable
//     items with the customer's substitution preference
//   - An order needs at least one line item
package order
