// Package services holds domain logic that spans several aggregates.
//
// DeliveryDispatcher pairs every assignment transition with its effect on
// the order and on the courier's load, so that a courier slot is taken once
// when an assignment opens and given back once when it ends.
package services
