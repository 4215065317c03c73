// Package queries contains the read side of the distribution service. Query
// handlers read straight from the database with SQL and return read models
// shaped for the distributor console and the courier app; they never go
// through the aggregates.
//
// Handlers that show assignment status first run the stale assignment
// expiry, so an assignment past its accept deadline is never reported as
// waiting.
package queries
