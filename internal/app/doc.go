// Package app is the composition root for the boka booking manager.
//
// # Overview
//
// Run wires the pieces together in order: load the shared configuration
// and validate it, load the user's preferences, build the myweblog
// client, populate the state store with an initial refresh (which also
// performs the lazy app-token exchange), start the background poller,
// and hand over to the UI until the context is cancelled.
//
// # Polling Behavior
//
// Refresh fetches one snapshot's worth of data per round: the account
// balance, the object list, and a month of bookings. The poller repeats
// it at the configured cadence (60 seconds by default). When the API
// keeps failing the cadence backs off exponentially per consecutive
// failure, capped at five minutes, and snaps back to the base interval
// on the first success. Poll failures are logged and recorded in the
// store; the UI keeps rendering the previous good snapshot and shows an
// offline indicator instead of dying.
//
// # Error Handling
//
// Only startup problems are fatal: an unreadable or invalid config, or a
// client that cannot be constructed. Everything after that is a
// recoverable poll failure.
package app
