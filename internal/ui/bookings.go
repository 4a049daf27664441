package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	myweblog "github.com/faluke/go-myweblog"
)

// renderBookings renders the booking schedule for the selected aircraft.
func (m Model) renderBookings() string {
	styles := m.theme.Styles()
	aircraft := m.currentAircraft()
	if aircraft == nil {
		return styles.MutedText.Render("  No aircraft selected.")
	}

	bookings := m.currentBookings()

	var b strings.Builder
	b.WriteString(styles.AccentText.Render(fmt.Sprintf("  %s", aircraft.Registration)))
	b.WriteString(styles.MutedText.Render(fmt.Sprintf("  %s", aircraft.Model)))
	b.WriteString("\n\n")

	if len(bookings) == 0 {
		b.WriteString(styles.MutedText.Render("  No upcoming bookings. Press n to book a slot."))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(styles.MutedText.Render(fmt.Sprintf("  %-26s %-20s %s", "SLOT", "MEMBER", "COMMENT")))
	b.WriteString("\n")

	now := time.Now()
	for i, bk := range bookings {
		row := fmt.Sprintf("  %-26s %-20s %s",
			formatSlot(bk),
			truncate(bk.Fullname, 20),
			truncate(bk.Comment, 28),
		)

		if i == m.selectedBooking {
			b.WriteString(styles.Selected.Render(row))
		} else {
			b.WriteString(styles.BookingStyle(m.bookingKind(bk, now)).Render(row))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// bookingKind classifies a booking row for coloring.
func (m Model) bookingKind(b myweblog.Booking, now time.Time) string {
	if b.ActiveAt(now) {
		return "active"
	}
	if m.ownBooking(b) {
		return "own"
	}
	return "foreign"
}

// formatSlot renders a booking's time span. Same-day slots repeat only the
// clock time on the right side.
func formatSlot(b myweblog.Booking) string {
	start, end := b.StartTime(), b.EndTime()
	if start.IsZero() || end.IsZero() {
		return b.Start + " - " + b.End
	}
	if start.Year() == end.Year() && start.YearDay() == end.YearDay() {
		return start.Format("Mon 02 Jan 15:04") + " - " + end.Format("15:04")
	}
	return start.Format("02 Jan 15:04") + " - " + end.Format("02 Jan 15:04")
}

// handleBookingsKey processes keys on the booking schedule.
func (m Model) handleBookingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	bookings := m.currentBookings()

	switch {
	case key.Matches(msg, m.keys.Down):
		if m.selectedBooking < len(bookings)-1 {
			m.selectedBooking++
		}
	case key.Matches(msg, m.keys.Up):
		if m.selectedBooking > 0 {
			m.selectedBooking--
		}
	case key.Matches(msg, m.keys.Top):
		m.selectedBooking = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selectedBooking = max(0, len(bookings)-1)

	case key.Matches(msg, m.keys.NewBooking):
		if aircraft := m.currentAircraft(); aircraft != nil && !m.busy {
			m.form = newBookingForm(*aircraft, m.snapshot.Balance.Fullname)
			m.currentView = viewForm
			return m, m.form.Init()
		}

	case key.Matches(msg, m.keys.DeleteBooking):
		if b, ok := m.selectedOwnBooking(bookings); ok {
			m.confirm = confirmDelete
			m.confirmBooking = b
		}

	case key.Matches(msg, m.keys.CutBooking):
		if b, ok := m.selectedOwnBooking(bookings); ok && b.ActiveAt(time.Now()) {
			m.confirm = confirmCut
			m.confirmBooking = b
		}
	}

	return m, nil
}

// selectedOwnBooking returns the highlighted booking when it belongs to the
// authenticated member. Foreign bookings cannot be mutated.
func (m Model) selectedOwnBooking(bookings []myweblog.Booking) (myweblog.Booking, bool) {
	if m.busy || m.selectedBooking >= len(bookings) {
		return myweblog.Booking{}, false
	}
	b := bookings[m.selectedBooking]
	if !m.ownBooking(b) {
		return myweblog.Booking{}, false
	}
	return b, true
}

// renderConfirm renders the y/n prompt for a pending destructive action.
func (m Model) renderConfirm() string {
	styles := m.theme.Styles()

	verb := "cancel"
	if m.confirm == confirmCut {
		verb = "end"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(styles.WarningText.Bold(true).Render(
		fmt.Sprintf("  Really %s the booking of %s, %s?", verb, m.confirmBooking.Registration, formatSlot(m.confirmBooking))))
	b.WriteString("\n\n")
	b.WriteString(styles.MutedText.Render("  y: yes    n: no"))
	b.WriteString("\n")
	return b.String()
}

// handleConfirmKey resolves a pending confirmation.
func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		action := m.confirm
		booking := m.confirmBooking
		m.confirm = confirmNone
		m.confirmBooking = myweblog.Booking{}
		m.busy = true

		id := int64(booking.ID)
		switch action {
		case confirmCut:
			return m, tea.Batch(m.spin.Tick, mutateCmd(m.ctx, "end", func(ctx context.Context) (*myweblog.MutationResult, error) {
				return m.client.CutBooking(ctx, id)
			}))
		default:
			return m, tea.Batch(m.spin.Tick, mutateCmd(m.ctx, "cancel", func(ctx context.Context) (*myweblog.MutationResult, error) {
				return m.client.DeleteBooking(ctx, id)
			}))
		}

	case key.Matches(msg, m.keys.Cancel), key.Matches(msg, m.keys.Quit):
		m.confirm = confirmNone
		m.confirmBooking = myweblog.Booking{}
	}

	return m, nil
}

// mutateCmd runs one mutation against the API and reports the outcome.
func mutateCmd(ctx context.Context, verb string, fn func(context.Context) (*myweblog.MutationResult, error)) tea.Cmd {
	return func() tea.Msg {
		result, err := fn(ctx)
		return mutationMsg{verb: verb, result: result, err: err}
	}
}
