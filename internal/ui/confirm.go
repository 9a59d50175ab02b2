package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/lostfound/internal/catalogue"
)

// confirmDelete asks before removing a catalogue entry. Declining issues no
// request.
type confirmDelete struct {
	entry catalogue.Entry
}

func (c confirmDelete) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil, false
	}
	switch {
	case key.Matches(keyMsg, keys.Confirm):
		entry := c.entry
		return c, func() tea.Msg { return deleteConfirmedMsg{entry: entry} }, true
	case key.Matches(keyMsg, keys.Deny):
		return c, nil, true
	}
	return c, nil, false
}

func (c confirmDelete) View(theme Theme, width, height int) string {
	styles := theme.Styles()

	var b strings.Builder
	b.WriteString(styles.DangerText.Render(fmt.Sprintf("Delete entry #%d?", c.entry.ID)))
	b.WriteString("\n\n")
	b.WriteString(styles.Text.Render(truncateMiddle(c.entry.Filename, 40)))
	b.WriteString("\n")
	if desc := c.entry.Description(); desc != "" {
		b.WriteString(styles.MutedText.Render(truncate(desc, 40)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.WarningText.Render("y"))
	b.WriteString(styles.MutedText.Render(" delete   "))
	b.WriteString(styles.WarningText.Render("n/esc"))
	b.WriteString(styles.MutedText.Render(" keep"))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Danger)).
		Padding(1, 2).
		Width(48)

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		box.Render(b.String()),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)),
	)
}
