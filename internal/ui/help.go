package ui

import (
	"fmt"
	"strings"
)

// helpSectionTitles labels the binding groups from keyMap.FullHelp, in
// the same order.
var helpSectionTitles = []string{"Navigation", "Bookings", "General"}

// renderHelp renders the full-screen key reference from the keymap.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render("  boka key reference"))
	b.WriteString("\n\n")

	for i, group := range m.keys.FullHelp() {
		title := ""
		if i < len(helpSectionTitles) {
			title = helpSectionTitles[i]
		}
		b.WriteString(styles.WarningText.Render("  " + title))
		b.WriteString("\n")
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(styles.AccentText.Render(fmt.Sprintf("  %8s", h.Key)))
			b.WriteString(styles.MutedText.Render("  " + h.Desc))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(styles.FaintText.Render("  Press any key to close."))
	return b.String()
}

// renderFooter renders the bottom status bar.
func (m Model) renderFooter() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	parts := make([]string, 0, 3)
	for _, binding := range m.keys.ShortHelp() {
		h := binding.Help()
		parts = append(parts, bg.Render(h.Key, styles.AccentText)+bg.Sep(":")+bg.Render(h.Desc, styles.MutedText))
	}

	if m.snapshot.IsOffline() {
		parts = append(parts, bg.Render("offline, retrying with backoff", styles.WarningText))
	}

	return styles.Footer.Width(m.width).Render(bg.Join(parts, "  "))
}
