package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the dashboard key bindings.
type KeyMap struct {
	Up   key.Binding
	Down key.Binding

	TabOverview  key.Binding
	TabAnalytics key.Binding
	TabMap       key.Binding
	NextTab      key.Binding

	Refresh key.Binding
	Quit    key.Binding
}

// DefaultKeyMap is the built-in binding set: vim-style movement next to
// arrow keys, number keys for direct tab access.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	TabOverview: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "overview"),
	),
	TabAnalytics: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "analytics"),
	),
	TabMap: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "map"),
	),
	NextTab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("Tab", "next tab"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
