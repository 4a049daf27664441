package ui

import (
	"errors"
	"testing"
	"time"

	myweblog "github.com/faluke/go-myweblog"
	"github.com/faluke/go-myweblog/internal/state"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"short passes through", "abc", 10, "abc"},
		{"exact passes through", "abcde", 5, "abcde"},
		{"long gets ellipsis", "abcdefghij", 8, "abcde..."},
		{"tiny max hard cuts", "abcdef", 2, "ab"},
		{"zero max", "abc", 0, ""},
		{"multibyte runes", "åäöåäöåäö", 6, "åäö..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncate(tt.in, tt.max); got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
			}
		})
	}
}

func TestMutationText(t *testing.T) {
	result := &myweblog.MutationResult{InfoMessageTitle: "Bokning skapad"}
	if got := mutationSuccessText("create", result); got != "Bokning skapad" {
		t.Fatalf("success text = %q, want service title", got)
	}
	if got := mutationSuccessText("cancel", &myweblog.MutationResult{Result: "OK"}); got != "Booking cancelled" {
		t.Fatalf("success text = %q, want fallback", got)
	}

	remote := &myweblog.RemoteError{Op: "createBooking", Message: "Objektet är redan bokat under den tiden"}
	if got := mutationFailureText("create", remote); got != remote.Message {
		t.Fatalf("failure text = %q, want verbatim service message", got)
	}
	if got := mutationFailureText("end", errors.New("boom")); got != "Could not end booking: boom" {
		t.Fatalf("failure text = %q", got)
	}
}

func TestFormatSlot(t *testing.T) {
	sameDay := myweblog.Booking{
		Start: "2026-06-01T10:00+02:00",
		End:   "2026-06-01T12:00+02:00",
	}
	got := formatSlot(sameDay)
	if got != "Mon 01 Jun 10:00 - 12:00" {
		t.Fatalf("same-day slot = %q", got)
	}

	overnight := myweblog.Booking{
		Start: "2026-06-01T22:00+02:00",
		End:   "2026-06-02T08:00+02:00",
	}
	got = formatSlot(overnight)
	if got != "01 Jun 22:00 - 02 Jun 08:00" {
		t.Fatalf("overnight slot = %q", got)
	}

	broken := myweblog.Booking{Start: "garbage", End: "worse"}
	if got := formatSlot(broken); got != "garbage - worse" {
		t.Fatalf("broken slot = %q", got)
	}
}

func TestBookableAircraft_FiltersAndSorts(t *testing.T) {
	m := Model{snapshot: state.Snapshot{
		Aircraft: []myweblog.Object{
			{ID: 2, Registration: "SE-ZZZ", Model: "PA28"},
			{ID: 3, Registration: "SIM-1", Model: "xSimulator"},
			{ID: 1, Registration: "SE-ABC", Model: "C172"},
			{ID: 4, Registration: "", Model: "C152"},
		},
	}}

	out := m.bookableAircraft()
	if len(out) != 2 {
		t.Fatalf("bookableAircraft returned %d aircraft, want 2", len(out))
	}
	if out[0].Registration != "SE-ABC" || out[1].Registration != "SE-ZZZ" {
		t.Fatalf("aircraft not sorted by registration: %v, %v", out[0].Registration, out[1].Registration)
	}
}

func TestOwnBooking_KeyedOnFullname(t *testing.T) {
	m := Model{snapshot: state.Snapshot{
		HasBalance: true,
		Balance:    myweblog.BalanceResponse{Fullname: "Sven Pilot"},
	}}

	if !m.ownBooking(myweblog.Booking{Fullname: "Sven Pilot"}) {
		t.Fatal("own booking not recognized")
	}
	if m.ownBooking(myweblog.Booking{Fullname: "Other Member"}) {
		t.Fatal("foreign booking treated as own")
	}
	if m.ownBooking(myweblog.Booking{}) {
		t.Fatal("nameless booking treated as own")
	}
}

func TestCurrentBookings_FiltersPastAndForeignAircraft(t *testing.T) {
	now := time.Now()
	layout := "2006-01-02T15:04-07:00"

	m := Model{snapshot: state.Snapshot{
		Aircraft: []myweblog.Object{{ID: 7, Registration: "SE-ABC", Model: "C172"}},
		Bookings: []myweblog.Booking{
			{ID: 1, AircraftID: 7, Start: now.Add(2 * time.Hour).Format(layout), End: now.Add(4 * time.Hour).Format(layout)},
			{ID: 2, AircraftID: 7, Start: now.Add(-4 * time.Hour).Format(layout), End: now.Add(-2 * time.Hour).Format(layout)},
			{ID: 3, AircraftID: 8, Start: now.Add(2 * time.Hour).Format(layout), End: now.Add(4 * time.Hour).Format(layout)},
			{ID: 4, AircraftID: 7, Start: now.Add(-time.Hour).Format(layout), End: now.Add(time.Hour).Format(layout)},
		},
	}}

	out := m.currentBookings()
	if len(out) != 2 {
		t.Fatalf("currentBookings returned %d bookings, want 2", len(out))
	}
	// Sorted by start: the in-progress slot precedes the future one.
	if int64(out[0].ID) != 4 || int64(out[1].ID) != 1 {
		t.Fatalf("booking order = %d, %d, want 4, 1", int64(out[0].ID), int64(out[1].ID))
	}
}
