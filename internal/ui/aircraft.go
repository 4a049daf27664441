package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// renderAircraft renders the aircraft selection list.
func (m Model) renderAircraft() string {
	styles := m.theme.Styles()
	aircraft := m.bookableAircraft()

	if len(aircraft) == 0 {
		if m.snapshot.LastUpdated.IsZero() {
			return styles.MutedText.Render("  Waiting for the first refresh...")
		}
		return styles.MutedText.Render("  No bookable aircraft in the club roster.")
	}

	var b strings.Builder
	b.WriteString(styles.MutedText.Render(fmt.Sprintf("  %-10s %-24s %s", "REG", "MODEL", "CLUB")))
	b.WriteString("\n")

	for i, o := range aircraft {
		row := fmt.Sprintf("  %-10s %-24s %s",
			o.Registration,
			truncate(o.Model, 24),
			truncate(o.ClubName, 30),
		)
		if i == m.selectedAircraft {
			b.WriteString(styles.Selected.Render(row))
		} else {
			b.WriteString(styles.Text.Render(row))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// handleAircraftKey processes keys on the aircraft list.
func (m Model) handleAircraftKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	aircraft := m.bookableAircraft()

	switch {
	case key.Matches(msg, m.keys.Down):
		if m.selectedAircraft < len(aircraft)-1 {
			m.selectedAircraft++
		}
	case key.Matches(msg, m.keys.Up):
		if m.selectedAircraft > 0 {
			m.selectedAircraft--
		}
	case key.Matches(msg, m.keys.Top):
		m.selectedAircraft = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selectedAircraft = max(0, len(aircraft)-1)
	case key.Matches(msg, m.keys.Select):
		if len(aircraft) > 0 {
			m.currentView = viewBookings
			m.selectedBooking = 0
		}
	}

	return m, nil
}
