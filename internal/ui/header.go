package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the status bar: app name, connection state, the
// member's name and balance, and the last refresh time.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	sep := bg.Spaces(2)

	var parts []string
	parts = append(parts, bg.Render("boka", styles.Logo))
	if club := m.clubName(); club != "" {
		parts = append(parts, bg.Render(club, styles.AccentText))
	}

	if m.snapshot.IsOffline() {
		parts = append(parts, bg.Render("● OFFLINE", styles.DangerText))
	} else if m.snapshot.LastUpdated.IsZero() {
		parts = append(parts, bg.Render("Connecting...", styles.WarningText.Bold(true)))
	} else {
		parts = append(parts, bg.Render("● ON", styles.SuccessText))
	}

	if m.snapshot.HasBalance {
		parts = append(parts, bg.Render(m.snapshot.Balance.Fullname, styles.Text))
		parts = append(parts,
			bg.Render("Balance:", styles.MutedText)+bg.Space()+
				bg.Render(formatBalance(float64(m.snapshot.Balance.Balance), m.snapshot.Balance.Currency), balanceStyle(float64(m.snapshot.Balance.Balance), styles)),
		)
	}

	parts = append(parts,
		bg.Render("Aircraft:", styles.MutedText)+bg.Space()+
			bg.Render(fmt.Sprintf("%d", len(m.bookableAircraft())), styles.Text),
	)

	if timeStr := m.formatTimestamp(); timeStr != "" {
		parts = append(parts, bg.Render(timeStr, styles.MutedText))
	}

	if m.snapshot.LastError != nil {
		errText := truncate(fmt.Sprintf("%v", m.snapshot.LastError), 60)
		parts = append(parts,
			bg.Render("ERROR", styles.DangerText.Bold(true))+bg.Space()+
				bg.Render(errText, styles.DangerText),
		)
	}

	if m.flash != "" {
		flashStyle := styles.SuccessText
		if m.flashError {
			flashStyle = styles.DangerText
		}
		parts = append(parts, bg.Render(m.flash, flashStyle))
	}

	if m.busy {
		parts = append(parts, bg.Render(m.spin.View(), styles.AccentText))
	}

	header := styles.Header.Width(m.width).Render(bg.Join(parts, sep))
	return header + "\n" + m.renderCommandBar()
}

// renderCommandBar renders the per-view command hints.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch m.currentView {
	case viewForm:
		commands = []cmd{
			{"Tab", "Next field"},
			{"Enter", "Submit"},
			{"Esc", "Cancel"},
		}
	case viewBookings:
		if m.confirm != confirmNone {
			commands = []cmd{
				{"y", "Confirm"},
				{"n", "Cancel"},
			}
		} else {
			commands = []cmd{
				{"j/k", "Navigate"},
				{"n", "New"},
				{"d", "Cancel booking"},
				{"x", "End now"},
				{"Esc", "Aircraft"},
				{"?", "More"},
			}
		}
	default:
		commands = []cmd{
			{"j/k", "Navigate"},
			{"Enter", "Bookings"},
			{"r", "Refresh"},
			{"?", "More"},
		}
	}

	colon := bg.Sep(":")
	sep := bg.Spaces(2)

	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}
	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(strings.Join(segments, sep))
}

// clubName returns the club the snapshot's objects belong to. The payload
// repeats it per object; any row will do.
func (m Model) clubName() string {
	for _, o := range m.snapshot.Aircraft {
		if o.ClubName != "" {
			return o.ClubName
		}
	}
	return ""
}

// formatTimestamp formats the last update time with relative indicator.
func (m Model) formatTimestamp() string {
	if m.lastUpdated.IsZero() {
		return ""
	}

	timeSince := time.Since(m.lastUpdated)
	timeStr := m.lastUpdated.Format("15:04:05")

	if timeSince < time.Minute {
		timeStr += " (now)"
	} else if timeSince < time.Hour {
		timeStr += fmt.Sprintf(" (%dm ago)", int(timeSince.Minutes()))
	} else if timeSince < 24*time.Hour {
		timeStr += fmt.Sprintf(" (%dh ago)", int(timeSince.Hours()))
	}

	return timeStr
}

// formatBalance renders an account balance with its currency code.
func formatBalance(amount float64, currency string) string {
	if currency == "" {
		return fmt.Sprintf("%.2f", amount)
	}
	return fmt.Sprintf("%.2f %s", amount, currency)
}

func balanceStyle(amount float64, styles Styles) lipgloss.Style {
	if amount < 0 {
		return styles.DangerText
	}
	return styles.Text
}
