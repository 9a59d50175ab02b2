package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Tab        key.Binding
	ShiftTab   key.Binding

	// Page switching
	ViewSearch key.Binding
	ViewAdmin  key.Binding

	// Workflow actions
	Browse    key.Binding
	Submit    key.Binding
	Cancel    key.Binding
	FocusInfo key.Binding

	// Catalogue actions
	Up      key.Binding
	Down    key.Binding
	Top     key.Binding
	Bottom  key.Binding
	Refresh key.Binding
	Delete  key.Binding

	// Confirm dialog
	Confirm key.Binding
	Deny    key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		// Global
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Next page"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "Previous page"),
		),

		// Page switching
		ViewSearch: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "Search page"),
		),
		ViewAdmin: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "Admin page"),
		),

		// Workflow actions
		Browse: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "Choose file"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter", "s"),
			key.WithHelp("enter/s", "Search or upload"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc", "x"),
			key.WithHelp("esc/x", "Cancel"),
		),
		FocusInfo: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "Edit description"),
		),

		// Catalogue actions
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Reload catalogue"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "Delete entry"),
		),

		// Confirm dialog
		Confirm: key.NewBinding(
			key.WithKeys("y", "enter"),
			key.WithHelp("y", "Confirm"),
		),
		Deny: key.NewBinding(
			key.WithKeys("n", "esc"),
			key.WithHelp("n/esc", "Keep"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Browse, k.Submit, k.Cancel, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		// Pages
		{k.Tab, k.ViewSearch, k.ViewAdmin},
		// Workflow
		{k.Browse, k.Submit, k.Cancel, k.FocusInfo},
		// Catalogue
		{k.Up, k.Down, k.Top, k.Bottom, k.Refresh, k.Delete},
		// General
		{k.CycleTheme, k.Help, k.Quit},
	}
}
