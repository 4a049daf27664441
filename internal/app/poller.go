package app

import (
	"context"
	"log"
	"time"

	myweblog "github.com/faluke/go-myweblog"
	"github.com/faluke/go-myweblog/internal/state"
)

const (
	defaultPollInterval = 60 * time.Second
	maxBackoff          = 5 * time.Minute
)

// StartPoller launches a background goroutine that refreshes the store.
// While the API keeps failing the cadence backs off exponentially, capped
// at maxBackoff; a successful refresh returns to the base interval. It
// returns immediately.
func StartPoller(ctx context.Context, store *state.Store, client myweblog.API, interval time.Duration) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	go func() {
		for {
			delay := calculateBackoff(store.Snapshot().ConsecutiveFailures, interval)
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}
			Refresh(ctx, store, client)
		}
	}()
}

// Refresh fetches one snapshot's worth of data: the account balance, the
// object list, and a month of bookings. The first failure aborts the
// round so the store keeps its previous payload.
func Refresh(ctx context.Context, store *state.Store, client myweblog.API) {
	balance, err := client.FetchBalance(ctx)
	if err != nil {
		store.Update(nil, nil, nil, err)
		log.Printf("balance poll failed: %v", err)
		return
	}
	objects, err := client.FetchObjects(ctx, myweblog.ObjectsQuery{})
	if err != nil {
		store.Update(nil, nil, nil, err)
		log.Printf("object poll failed: %v", err)
		return
	}
	bookings, err := client.FetchBookings(ctx, myweblog.BookingsQuery{
		From: time.Now(),
		To:   time.Now().AddDate(0, 1, 0),
	})
	if err != nil {
		store.Update(nil, nil, nil, err)
		log.Printf("booking poll failed: %v", err)
		return
	}
	store.Update(balance, objects.Objects, bookings.Bookings, nil)
}

// calculateBackoff doubles the base interval per consecutive failure.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	if failures > 20 {
		failures = 20
	}
	backoff := base << uint(failures)
	if backoff > maxBackoff || backoff <= 0 {
		return maxBackoff
	}
	return backoff
}
