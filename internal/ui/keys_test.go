package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	myweblog "github.com/faluke/go-myweblog"
	"github.com/faluke/go-myweblog/internal/state"
)

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func navModel() Model {
	m := New(Options{})
	m.ready = true
	m.snapshot = state.Snapshot{
		Aircraft: []myweblog.Object{
			{ID: 7, Registration: "SE-ABC", Model: "PA-28-161"},
			{ID: 8, Registration: "SE-DEF", Model: "C172S"},
		},
	}
	return m
}

func press(t *testing.T, m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.handleKey(msg)
	out, ok := next.(Model)
	if !ok {
		t.Fatalf("handleKey returned %T, want Model", next)
	}
	return out, cmd
}

func TestKeymap_AircraftNavigation(t *testing.T) {
	m := navModel()

	m, _ = press(t, m, keyPress('j'))
	if m.selectedAircraft != 1 {
		t.Fatalf("after j: selectedAircraft = %d, want 1", m.selectedAircraft)
	}
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if m.selectedAircraft != 1 {
		t.Fatalf("down past the last row moved selection to %d", m.selectedAircraft)
	}
	m, _ = press(t, m, keyPress('k'))
	if m.selectedAircraft != 0 {
		t.Fatalf("after k: selectedAircraft = %d, want 0", m.selectedAircraft)
	}
	m, _ = press(t, m, keyPress('G'))
	if m.selectedAircraft != 1 {
		t.Fatalf("after G: selectedAircraft = %d, want 1", m.selectedAircraft)
	}
	m, _ = press(t, m, keyPress('g'))
	if m.selectedAircraft != 0 {
		t.Fatalf("after g: selectedAircraft = %d, want 0", m.selectedAircraft)
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.currentView != viewBookings {
		t.Fatalf("enter did not open the bookings view")
	}
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.currentView != viewAircraft {
		t.Fatalf("esc did not return to the aircraft list")
	}
}

func TestKeymap_QuitAndHelp(t *testing.T) {
	m := navModel()

	_, cmd := press(t, m, keyPress('q'))
	if cmd == nil {
		t.Fatalf("q produced no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("q produced %T, want tea.QuitMsg", cmd())
	}

	m, _ = press(t, m, keyPress('?'))
	if !m.showHelp {
		t.Fatalf("? did not open help")
	}
	m, _ = press(t, m, keyPress('j'))
	if m.showHelp {
		t.Fatalf("a key press did not close help")
	}
}

func TestKeymap_BookingActions(t *testing.T) {
	layout := "2006-01-02T15:04-07:00"
	now := time.Now()

	m := navModel()
	m.snapshot.HasBalance = true
	m.snapshot.Balance = myweblog.BalanceResponse{Fullname: "Sven Pilot"}
	m.snapshot.Bookings = []myweblog.Booking{
		{ID: 500, AircraftID: 7, Fullname: "Sven Pilot",
			Start: now.Add(-time.Hour).Format(layout), End: now.Add(time.Hour).Format(layout)},
		{ID: 501, AircraftID: 7, Fullname: "Anna Annan",
			Start: now.Add(2 * time.Hour).Format(layout), End: now.Add(4 * time.Hour).Format(layout)},
	}
	m.currentView = viewBookings

	m, _ = press(t, m, keyPress('x'))
	if m.confirm != confirmCut || int64(m.confirmBooking.ID) != 500 {
		t.Fatalf("x on an own in-progress booking: confirm = %d, booking %d", m.confirm, int64(m.confirmBooking.ID))
	}
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.confirm != confirmNone {
		t.Fatalf("esc did not dismiss the confirmation")
	}

	m, _ = press(t, m, keyPress('d'))
	if m.confirm != confirmDelete {
		t.Fatalf("d on an own booking: confirm = %d, want delete", m.confirm)
	}
	m, _ = press(t, m, keyPress('n'))
	if m.confirm != confirmNone {
		t.Fatalf("n did not dismiss the confirmation")
	}

	// Foreign bookings cannot be mutated.
	m.selectedBooking = 1
	m, _ = press(t, m, keyPress('d'))
	if m.confirm != confirmNone {
		t.Fatalf("d on a foreign booking raised a confirmation")
	}

	m.selectedBooking = 0
	m, _ = press(t, m, keyPress('n'))
	if m.currentView != viewForm {
		t.Fatalf("n did not open the booking form")
	}
}

func TestKeymap_FormFieldCycle(t *testing.T) {
	m := navModel()
	m.form = newBookingForm(m.snapshot.Aircraft[0], "Sven Pilot")
	m.currentView = viewForm

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.form.focus != fieldStart {
		t.Fatalf("tab: focus = %d, want %d", m.form.focus, fieldStart)
	}
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.form.focus != fieldDate {
		t.Fatalf("shift+tab: focus = %d, want %d", m.form.focus, fieldDate)
	}

	// Plain letters belong to the focused text input, not the keymap.
	m.form.next(fieldComment - m.form.focus)
	before := m.form.inputs[fieldComment].Value()
	m, _ = press(t, m, keyPress('q'))
	if m.currentView != viewForm {
		t.Fatalf("typing q left the form view")
	}
	if got := m.form.inputs[fieldComment].Value(); got != before+"q" {
		t.Fatalf("comment = %q, want %q", got, before+"q")
	}
}

func TestRenderHelp_CoversKeymap(t *testing.T) {
	m := navModel()
	out := m.renderHelp()

	for _, group := range m.keys.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			if !strings.Contains(out, h.Key) {
				t.Errorf("help screen is missing the %q binding", h.Key)
			}
			if !strings.Contains(out, h.Desc) {
				t.Errorf("help screen is missing the description %q", h.Desc)
			}
		}
	}
}
