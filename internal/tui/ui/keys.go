package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyMap contains all key bindings for the TUI
type KeyMap struct {
	// Navigation
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding

	// Tab navigation
	NextTab key.Binding
	PrevTab key.Binding
	Tab1    key.Binding
	Tab2    key.Binding
	Tab3    key.Binding

	// Actions
	Select  key.Binding
	Back    key.Binding
	Quit    key.Binding
	Help    key.Binding
	Refresh key.Binding

	// Entries
	Search   key.Binding
	NextType key.Binding
	Raw      key.Binding

	// Compose
	Submit key.Binding

	// Date range shortcuts
	AllTime   key.Binding
	Today     key.Binding
	Yesterday key.Binding
	ThisWeek  key.Binding
	PrevWeek  key.Binding
	ThisMonth key.Binding
	PrevMonth key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Navigation (vim + arrows)
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("pgdn", "page down"),
		),

		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next view"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev view"),
		),
		Tab1: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "entries"),
		),
		Tab2: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "compose"),
		),
		Tab3: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "config"),
		),

		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),

		Search: key.NewBinding(
			key.WithKeys("/", "s"),
			key.WithHelp("/", "search"),
		),
		NextType: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "next type"),
		),
		Raw: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "raw input"),
		),

		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save entry"),
		),

		AllTime: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "all"),
		),
		Today: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "today"),
		),
		Yesterday: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "yesterday"),
		),
		ThisWeek: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "this week"),
		),
		PrevWeek: key.NewBinding(
			key.WithKeys("W"),
			key.WithHelp("W", "last week"),
		),
		ThisMonth: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "this month"),
		),
		PrevMonth: key.NewBinding(
			key.WithKeys("M"),
			key.WithHelp("M", "last month"),
		),
	}
}

// RangeExpr returns the date range expression bound to a range shortcut.
// The empty expression selects every entry. ok is false for other keys.
func (k KeyMap) RangeExpr(msg tea.KeyMsg) (expr string, ok bool) {
	switch {
	case key.Matches(msg, k.AllTime):
		return "", true
	case key.Matches(msg, k.Today):
		return "today", true
	case key.Matches(msg, k.Yesterday):
		return "yesterday", true
	case key.Matches(msg, k.ThisWeek):
		return "this-week", true
	case key.Matches(msg, k.PrevWeek):
		return "last-week", true
	case key.Matches(msg, k.ThisMonth):
		return "this-month", true
	case key.Matches(msg, k.PrevMonth):
		return "last-month", true
	}
	return "", false
}
