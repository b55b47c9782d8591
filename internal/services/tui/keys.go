package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for the campaign browser.
type KeyMap struct {
	// List navigation.
	Up   key.Binding
	Down key.Binding

	// List actions.
	New         key.Binding
	Edit        key.Binding
	Delete      key.Binding
	GenerateArt key.Binding
	Refresh     key.Binding

	// Delete confirmation.
	Confirm key.Binding
	Deny    key.Binding

	// Wizard.
	Submit    key.Binding // Basics: next step. Review: save.
	NextField key.Binding
	Cancel    key.Binding // Review: back. Basics: close. List: dismiss prompt.

	Quit      key.Binding
	ForceQuit key.Binding
}

// DefaultKeyMap is the built-in key binding set.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	New: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	GenerateArt: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "generate art"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "confirm"),
	),
	Deny: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "keep"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "continue"),
	),
	NextField: key.NewBinding(
		key.WithKeys("tab", "shift+tab"),
		key.WithHelp("tab", "switch field"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "quit"),
	),
	ForceQuit: key.NewBinding(
		key.WithKeys("ctrl+c"),
	),
}
