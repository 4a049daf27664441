// Package ui implements the Bubble Tea front end for the booking manager.
//
// The model follows the Elm architecture: a single Model value, messages
// for every asynchronous event and pure view functions. Three screens
// exist: the aircraft list, the per-aircraft booking schedule and the
// create booking form. Destructive actions (cancel, end now) go through a
// y/n confirmation step before the API call is issued.
//
// Data flows one way. A background poller owned by the app layer keeps a
// state.Store fresh; the UI only ever reads snapshots from the store on a
// tick and sends mutations through the myweblog.API interface. Mutations
// trigger an immediate refresh so the schedule reflects the change without
// waiting for the next poll.
package ui
