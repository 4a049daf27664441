// Package state provides the thread-safe snapshot store shared by the
// poller and the booking manager UI.
//
// # Overview
//
// The background poller writes a fresh snapshot of the club's data
// (balance, aircraft, bookings) after every refresh; the UI reads the
// latest one whenever it renders. The Store mediates between those two
// goroutines with an RWMutex and defensive copies, so neither side ever
// observes a partially written snapshot or mutates the other's data.
//
// # Update Semantics
//
// A successful Update replaces the payload, clears LastError, and resets
// ConsecutiveFailures. A failed Update keeps the previous payload — the
// UI keeps showing the most recent good data — and records the error and
// the failure count. IsOffline reports two or more consecutive failures,
// which is what the UI's offline indicator keys on.
//
// The zero Store is ready to use.
package state
