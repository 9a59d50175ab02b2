package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the status bar: logo, service address and activity.
func (m Model) renderHeader() string {
	// Header uses Surface background
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	sep := bg.Spaces(2)

	parts := []string{
		styles.Logo.Render("lostfound"),
		bg.Pair("api", styles.MutedText, m.config.APIBase, styles.Text),
	}

	switch {
	case m.snapshot.IsOffline():
		parts = append(parts, bg.Render("offline", styles.DangerText))
	case m.snapshot.Loaded:
		parts = append(parts, bg.Render(fmt.Sprintf("%d catalogued", len(m.snapshot.Entries)), styles.MutedText))
	}

	if activity := m.activity(); activity != "" {
		parts = append(parts, bg.Pair(m.spinner.View(), styles.AccentText, activity, styles.AccentText))
	}

	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Foreground(lipgloss.Color(m.theme.Text)).
		Width(m.width).
		Render(strings.Join(parts, sep))
}

// activity describes what is in flight, busiest page first.
func (m Model) activity() string {
	for _, p := range m.pages {
		if p.busy {
			return p.submitLabel
		}
	}
	switch {
	case m.deleting != nil:
		return fmt.Sprintf("Deleting #%d", m.deleting.ID)
	case m.listLoading:
		return "Loading catalogue"
	}
	return ""
}

// renderTabs renders the page switcher.
func (m Model) renderTabs() string {
	styles := m.theme.Styles()
	tabs := make([]string, 0, 2)
	for _, id := range []pageID{pageSearch, pageAdmin} {
		label := fmt.Sprintf(" %d %s ", int(id)+1, id)
		if id == m.current {
			tabs = append(tabs, styles.Selected.Bold(true).Render(label))
		} else {
			tabs = append(tabs, styles.MutedText.Render(label))
		}
	}
	return strings.Join(tabs, " ")
}

// renderBanner renders the current page's transient notice, if any.
func (m Model) renderBanner() string {
	styles := m.theme.Styles()
	b := m.pages[m.current].banner
	switch b.kind {
	case bannerError:
		return styles.DangerText.Render("✗ " + b.text)
	case bannerSuccess:
		return styles.SuccessText.Render("✓ " + b.text)
	}
	return ""
}

// renderFooter renders the key hint bar.
func (m Model) renderFooter() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	bindings := m.keys.ShortHelp()
	if m.pages[m.current].zone.ChooserOpen() {
		bindings = nil
	}
	hints := make([]string, 0, len(bindings)+1)
	if bindings == nil {
		hints = append(hints,
			bg.Pair("enter", styles.WarningText, "choose", styles.MutedText),
			bg.Pair("esc", styles.WarningText, "close", styles.MutedText),
		)
	}
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, bg.Pair(h.Key, styles.WarningText, h.Desc, styles.MutedText))
	}

	return styles.Footer.Width(m.width).Render(strings.Join(hints, bg.Spaces(3)))
}
