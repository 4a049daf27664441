// Package mockapi imitates the MyWebLog mobile API for tests and local
// development.
//
// # Overview
//
// The real service multiplexes every operation over one PHP endpoint with
// a qtype form parameter, so the mock does the same: a gorilla/mux router
// with a single POST /api_mobile.php route plus GET /healthz. Responses
// echo the qType and APIVersion envelope fields and stringify numeric
// scalars the way the PHP backend does, so clients exercise their real
// decoding path against it.
//
// # Fixtures
//
// A Server is seeded from a Fixtures value: one club member's credentials
// and app secret, the club's aircraft, bookings, ledger rows, and flight
// log. DefaultFixtures returns a small Swedish club suitable for demos.
// Bookings are the only mutable state; they are guarded by the server's
// mutex and change through createBooking, cutBooking, and deleteBooking.
//
// # Behavior
//
// Every request is checked in order: credentials (403 with errorMessage on
// mismatch), then the app token for every qtype except getAppToken, then
// the qtype dispatch. Business rejections (unknown object, overlapping
// slot, foreign booking) come back as 200 responses carrying only an
// errorMessage, which is how the real service reports them.
package mockapi
