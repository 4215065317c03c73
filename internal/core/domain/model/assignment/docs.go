// Package assignment models one delivery attempt of an order by one courier.
//
//	assigned -> accepted -> picked_up -> arriving -> delivered
//	assigned -> expired | rejected
//	any active status -> cancelled (the order was cancelled or rejected)
//
// Rows are never deleted. A rejected or expired assignment stays as history
// and the order gets a fresh assignment on reassignment, so an order has at
// most one active assignment and any number of finished ones.
package assignment
