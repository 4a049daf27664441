package state

import (
	"errors"
	"reflect"
	"testing"
	"time"

	myweblog "github.com/faluke/go-myweblog"
)

func TestStore_UpdateAndSnapshotClone(t *testing.T) {
	var s Store

	balance := &myweblog.BalanceResponse{Fullname: "Sven Pilot", Balance: 1250.50, Currency: "SEK"}
	aircraft := []myweblog.Object{{ID: 7, Registration: "SE-ABC"}, {ID: 8, Registration: "SE-DEF"}}
	bookings := []myweblog.Booking{{ID: 500}, {ID: 501}}

	before := time.Now()
	s.Update(balance, aircraft, bookings, nil)

	snap := s.Snapshot()
	if !snap.HasBalance || snap.Balance.Fullname != "Sven Pilot" {
		t.Fatalf("snapshot balance = %#v, want Sven Pilot HasBalance=true", snap.Balance)
	}
	if len(snap.Aircraft) != 2 || snap.Aircraft[0].ID != 7 {
		t.Fatalf("snapshot aircraft = %#v, want 2 items", snap.Aircraft)
	}
	if len(snap.Bookings) != 2 || snap.Bookings[0].ID != 500 {
		t.Fatalf("snapshot bookings = %#v, want 2 items", snap.Bookings)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}
	if snap.LastError != nil {
		t.Fatalf("LastError = %v, want nil", snap.LastError)
	}

	// Returned snapshot should be independent of the stored one.
	snap.Bookings[0].ID = 999
	snap2 := s.Snapshot()
	if snap2.Bookings[0].ID != 500 {
		t.Fatalf("Snapshot should clone bookings; got id %d want 500", snap2.Bookings[0].ID)
	}
}

func TestStore_UpdateErrorKeepsPreviousData(t *testing.T) {
	var s Store

	s.Update(&myweblog.BalanceResponse{Fullname: "Sven Pilot"},
		[]myweblog.Object{{ID: 7}}, []myweblog.Booking{{ID: 500}}, nil)
	prev := s.Snapshot()

	before := time.Now()
	origErr := errors.New("boom")
	s.Update(nil, nil, nil, origErr)

	snap := s.Snapshot()
	if snap.HasBalance != prev.HasBalance || snap.Balance.Fullname != prev.Balance.Fullname {
		t.Fatalf("balance changed on error: got %#v want %#v", snap.Balance, prev.Balance)
	}
	if len(snap.Aircraft) != 1 || len(snap.Bookings) != 1 {
		t.Fatalf("data changed on error: %#v / %#v", snap.Aircraft, snap.Bookings)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}
	if snap.LastError == nil || snap.LastError.Error() != "boom" {
		t.Fatalf("LastError = %v, want boom", snap.LastError)
	}
	if reflect.ValueOf(snap.LastError).Pointer() == reflect.ValueOf(origErr).Pointer() {
		t.Fatalf("Snapshot should clone error instance")
	}
}

func TestStore_ConsecutiveFailuresAndOffline(t *testing.T) {
	var s Store

	snap := s.Snapshot()
	if snap.ConsecutiveFailures != 0 || snap.IsOffline() {
		t.Fatalf("fresh store = %d failures offline=%v, want 0/false", snap.ConsecutiveFailures, snap.IsOffline())
	}

	s.Update(nil, nil, nil, errors.New("fail 1"))
	if snap = s.Snapshot(); snap.ConsecutiveFailures != 1 || snap.IsOffline() {
		t.Fatalf("after 1 failure = %d offline=%v, want 1/false", snap.ConsecutiveFailures, snap.IsOffline())
	}

	s.Update(nil, nil, nil, errors.New("fail 2"))
	if snap = s.Snapshot(); snap.ConsecutiveFailures != 2 || !snap.IsOffline() {
		t.Fatalf("after 2 failures = %d offline=%v, want 2/true", snap.ConsecutiveFailures, snap.IsOffline())
	}

	s.Update(&myweblog.BalanceResponse{}, nil, nil, nil)
	if snap = s.Snapshot(); snap.ConsecutiveFailures != 0 || snap.IsOffline() {
		t.Fatalf("after success = %d offline=%v, want 0/false", snap.ConsecutiveFailures, snap.IsOffline())
	}
}
