// Package myweblog provides an HTTP client for the MyWebLog mobile API.
//
// # Overview
//
// MyWebLog (myweblog.se) is the booking, scheduling, and logbook service
// used by Scandinavian aviation clubs. This package wraps its mobile API:
// a single PHP endpoint that multiplexes every operation over one URL with
// a qtype discriminator parameter and answers with JSON.
//
// # Architecture
//
// The package is split into five files:
//
//   - client.go: session state, the transport adapter, and authentication
//   - bookings.go: object and booking operations
//   - logbook.go: balance, transaction, and flight log operations
//   - types.go: data structures mirroring the wire schema
//   - errors.go: the error taxonomy
//
// # Client Usage
//
// Create a client with the account credentials, then either seed a
// previously issued app token or configure the pre-shared app secret and
// let the client exchange it lazily:
//
//	client, err := myweblog.New("user", "pass",
//		myweblog.WithAppSecret(secret))
//	if err != nil {
//		log.Fatalf("failed to create client: %v", err)
//	}
//	defer client.Close()
//
//	objects, err := client.FetchObjects(ctx, myweblog.ObjectsQuery{})
//	if err != nil {
//		log.Printf("object fetch failed: %v", err)
//	}
//
//	bookings, err := client.FetchBookings(ctx, myweblog.BookingsQuery{
//		OnlyMine: true,
//	})
//	if err != nil {
//		log.Printf("booking fetch failed: %v", err)
//	}
//
// # Wire Protocol
//
// Every operation is a form-encoded POST to the configured base URL
// (https://api.myweblog.se/api_mobile.php?version=2.0.3 by default). The
// client merges the session constants into each request: qtype, mwl_u,
// mwl_p, returnType=json, charset=UTF-8, app_token, and language. The
// response echoes the served qType and the APIVersion; both echoes are
// validated against the request, and a mismatch is a *ProtocolError.
//
// Supported qtypes:
//
//   - getAppToken: exchange the app secret for a bearer token
//   - getObjects: list the club's bookable objects (aircraft)
//   - getBookings: list bookings, optionally with sun data
//   - getBalance: the user's account balance and full name
//   - getTransactions: account ledger rows
//   - getFlightLog / getFlightLogReversed: journal rows
//   - createBooking / cutBooking / deleteBooking: mutations
//
// # Error Handling
//
// The client distinguishes four error types:
//
//   - *RequestError: the request never produced a usable response
//     (connection refused, timeout, cancelled context)
//   - *AuthError: rejected credentials, a rejected token exchange, or an
//     operation attempted without a token or secret
//   - *ProtocolError: unexpected HTTP status, malformed JSON, or a qType
//     or APIVersion echo that does not match the request
//   - *RemoteError: the service's own errorMessage for a rejected
//     mutation, passed through verbatim
//
// The client never retries and never interprets business errors beyond
// mapping them to *RemoteError; retry policy belongs to the caller.
//
// # Type System
//
// The backend is PHP and is loose about JSON scalar types: the same field
// arrives as 42 in one deployment and "42" in another, and timestamps
// arrive as unix seconds, RFC 3339, or "2006-01-02 15:04:05" depending on
// the API version. FlexInt and FlexFloat absorb the number forms, and
// Booking.StartTime/EndTime try each timestamp layout in turn. Field
// names for transactions and flight log rows have shifted between API
// versions; unknown fields are ignored rather than rejected.
//
// # Thread Safety
//
// Once a token is held the client is safe for concurrent calls; the
// underlying http.Client pools connections. (Re)authentication overwrites
// the stored token without internal locking, so callers that re-exchange
// tokens while other calls are in flight must coordinate externally.
//
// # Design Rationale
//
// The package is intentionally minimal:
//
//   - No caching (consumers poll and keep their own snapshots)
//   - No retries (the app layer decides retry policy)
//   - No local joins (booking to aircraft resolution is the service's job)
//
// This mirrors what the remote API actually offers and keeps the client
// a thin, predictable pass-through.
package myweblog
