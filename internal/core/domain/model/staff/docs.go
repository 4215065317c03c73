// Package staff models the couriers that deliver orders.
//
// A DeliveryStaff record carries the branches the courier serves, an
// availability flag and a load counter. The counter is raised once when an
// assignment is created and lowered once when that assignment ends, so that
// the number of open assignments never exceeds the courier's capacity.
package staff
