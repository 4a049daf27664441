package state

import (
	"fmt"
	"sync"
	"time"

	myweblog "github.com/faluke/go-myweblog"
)

// Snapshot represents the latest club data available to the UI.
type Snapshot struct {
	Balance             myweblog.BalanceResponse
	HasBalance          bool
	Aircraft            []myweblog.Object
	Bookings            []myweblog.Booking
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive poll failures
}

// IsOffline returns true when the API has been unreachable for multiple polls.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update replaces the stored snapshot. When err is non-nil the previous data is
// kept but the error is recorded for visibility.
func (s *Store) Update(balance *myweblog.BalanceResponse, aircraft []myweblog.Object, bookings []myweblog.Booking, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.LastUpdated = time.Now()
		s.snapshot.ConsecutiveFailures++
		return
	}

	s.snapshot.Aircraft = cloneSlice(aircraft)
	s.snapshot.Bookings = cloneSlice(bookings)
	if balance != nil {
		s.snapshot.Balance = *balance
		s.snapshot.HasBalance = true
	} else {
		s.snapshot.HasBalance = false
	}
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Aircraft = cloneSlice(s.snapshot.Aircraft)
	snap.Bookings = cloneSlice(s.snapshot.Bookings)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneSlice[T any](items []T) []T {
	if len(items) == 0 {
		return nil
	}
	dup := make([]T, len(items))
	copy(dup, items)
	return dup
}
