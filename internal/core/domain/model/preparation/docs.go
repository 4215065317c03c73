// Package preparation turns an order's lines into a pick/pack checklist.
//
// One Item is created per order line when preparation starts; items are
// toggled individually while the order is preparing, and a Checklist decides
// whether the order may move to ready. A checklist with no items is never
// complete: an order always has lines, so an empty checklist means
// preparation was not started.
package preparation
