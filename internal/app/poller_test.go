package app

import (
	"context"
	"errors"
	"testing"
	"time"

	myweblog "github.com/faluke/go-myweblog"
	"github.com/faluke/go-myweblog/internal/state"
)

func TestCalculateBackoff(t *testing.T) {
	baseInterval := 2 * time.Second

	tests := []struct {
		name     string
		failures int
		want     time.Duration
	}{
		{"zero failures", 0, 2 * time.Second},
		{"negative failures", -1, 2 * time.Second},
		{"one failure", 1, 4 * time.Second},
		{"two failures", 2, 8 * time.Second},
		{"three failures", 3, 16 * time.Second},
		{"seven failures", 7, 256 * time.Second},
		{"eight failures capped", 8, maxBackoff}, // would be 512s
		{"many failures capped", 30, maxBackoff},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculateBackoff(tt.failures, baseInterval)
			if got != tt.want {
				t.Errorf("calculateBackoff(%d, %v) = %v, want %v", tt.failures, baseInterval, got, tt.want)
			}
		})
	}
}

func TestCalculateBackoff_MaxCap(t *testing.T) {
	// Backoff must never exceed maxBackoff regardless of input.
	for _, base := range []time.Duration{time.Second, time.Minute, 10 * time.Minute} {
		for failures := 0; failures <= 64; failures++ {
			got := calculateBackoff(failures, base)
			if got > maxBackoff && got != base {
				t.Errorf("calculateBackoff(%d, %v) = %v, exceeds maxBackoff %v", failures, base, got, maxBackoff)
			}
		}
	}
}

// fakeAPI satisfies myweblog.API; only the three refresh operations matter.
type fakeAPI struct {
	balanceErr  error
	objectsErr  error
	bookingsErr error

	bookingsQuery myweblog.BookingsQuery
}

func (f *fakeAPI) ObtainAppToken(context.Context, string) (string, error) { return "tok", nil }

func (f *fakeAPI) FetchBalance(context.Context) (*myweblog.BalanceResponse, error) {
	if f.balanceErr != nil {
		return nil, f.balanceErr
	}
	return &myweblog.BalanceResponse{Fullname: "Sven Pilot", Balance: 100}, nil
}

func (f *fakeAPI) FetchObjects(context.Context, myweblog.ObjectsQuery) (*myweblog.ObjectsResponse, error) {
	if f.objectsErr != nil {
		return nil, f.objectsErr
	}
	return &myweblog.ObjectsResponse{Objects: []myweblog.Object{{ID: 7, Registration: "SE-ABC"}}}, nil
}

func (f *fakeAPI) FetchBookings(_ context.Context, q myweblog.BookingsQuery) (*myweblog.BookingsResponse, error) {
	f.bookingsQuery = q
	if f.bookingsErr != nil {
		return nil, f.bookingsErr
	}
	return &myweblog.BookingsResponse{Bookings: []myweblog.Booking{{ID: 500}}}, nil
}

func (f *fakeAPI) FetchTransactions(context.Context, myweblog.TransactionsQuery) (*myweblog.TransactionsResponse, error) {
	return &myweblog.TransactionsResponse{}, nil
}

func (f *fakeAPI) FetchFlightLog(context.Context, myweblog.FlightLogQuery) (*myweblog.FlightLogResponse, error) {
	return &myweblog.FlightLogResponse{}, nil
}

func (f *fakeAPI) FetchFlightLogReversed(context.Context, myweblog.FlightLogQuery) (*myweblog.FlightLogResponse, error) {
	return &myweblog.FlightLogResponse{}, nil
}

func (f *fakeAPI) CreateBooking(context.Context, myweblog.NewBooking) (*myweblog.MutationResult, error) {
	return &myweblog.MutationResult{Result: "OK"}, nil
}

func (f *fakeAPI) CutBooking(context.Context, int64) (*myweblog.MutationResult, error) {
	return &myweblog.MutationResult{Result: "OK"}, nil
}

func (f *fakeAPI) DeleteBooking(context.Context, int64) (*myweblog.MutationResult, error) {
	return &myweblog.MutationResult{Result: "OK"}, nil
}

func TestRefresh_PopulatesSnapshot(t *testing.T) {
	store := &state.Store{}
	api := &fakeAPI{}

	Refresh(context.Background(), store, api)

	snap := store.Snapshot()
	if !snap.HasBalance || snap.Balance.Fullname != "Sven Pilot" {
		t.Fatalf("snapshot balance = %#v, want populated", snap.Balance)
	}
	if len(snap.Aircraft) != 1 || len(snap.Bookings) != 1 {
		t.Fatalf("snapshot payload = %d aircraft %d bookings, want 1/1", len(snap.Aircraft), len(snap.Bookings))
	}
	if snap.LastError != nil || snap.ConsecutiveFailures != 0 {
		t.Fatalf("snapshot error state = %v/%d, want clean", snap.LastError, snap.ConsecutiveFailures)
	}

	// The refresh asks for a month of bookings.
	wantTo := time.Now().AddDate(0, 1, 0)
	if api.bookingsQuery.To.Before(wantTo.Add(-time.Minute)) {
		t.Fatalf("bookings query To = %v, want about %v", api.bookingsQuery.To, wantTo)
	}
}

func TestRefresh_FailureKeepsPreviousPayload(t *testing.T) {
	store := &state.Store{}
	api := &fakeAPI{}

	Refresh(context.Background(), store, api)

	api.objectsErr = errors.New("boom")
	Refresh(context.Background(), store, api)

	snap := store.Snapshot()
	if len(snap.Aircraft) != 1 {
		t.Fatalf("aircraft lost on failed refresh: %#v", snap.Aircraft)
	}
	if snap.LastError == nil || snap.ConsecutiveFailures != 1 {
		t.Fatalf("error state = %v/%d, want recorded failure", snap.LastError, snap.ConsecutiveFailures)
	}
}

func TestStartPoller_StopsOnContextCancel(t *testing.T) {
	store := &state.Store{}
	api := &fakeAPI{}

	ctx, cancel := context.WithCancel(context.Background())
	StartPoller(ctx, store, api, 10*time.Millisecond)

	deadline := time.Now().Add(2 * time.Second)
	for store.Snapshot().LastUpdated.IsZero() {
		if time.Now().After(deadline) {
			t.Fatalf("poller never refreshed the store")
		}
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
}
