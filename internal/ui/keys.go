package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Escape     key.Binding

	// Knob
	VolumeUp   key.Binding
	VolumeDown key.Binding
	CoarseUp   key.Binding
	CoarseDown key.Binding
	MutePress  key.Binding
	MuteTap    key.Binding

	// Settings
	CycleStep   key.Binding
	EditAddress key.Binding

	// Input
	Confirm key.Binding
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
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Cancel"),
		),

		// Knob: one detent per press, coarse variants spin five
		VolumeUp: key.NewBinding(
			key.WithKeys("up", "right", "+", "="),
			key.WithHelp("↑/→", "Volume up"),
		),
		VolumeDown: key.NewBinding(
			key.WithKeys("down", "left", "-"),
			key.WithHelp("↓/←", "Volume down"),
		),
		CoarseUp: key.NewBinding(
			key.WithKeys("shift+up", "pgup"),
			key.WithHelp("shift+↑", "Volume up x5"),
		),
		CoarseDown: key.NewBinding(
			key.WithKeys("shift+down", "pgdown"),
			key.WithHelp("shift+↓", "Volume down x5"),
		),
		MutePress: key.NewBinding(
			key.WithKeys("m", " "),
			key.WithHelp("m/space", "Toggle mute"),
		),
		MuteTap: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Toggle mute"),
		),

		// Settings
		CycleStep: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Cycle step size"),
		),
		EditAddress: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Edit speaker address"),
		),

		// Input
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Confirm"),
		),
	}
}
