package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the key bindings for the watch session. The dashboard
// is a single read-only screen, so quitting is the only interaction.
type keyMap struct {
	Quit key.Binding
}

// keys holds the default key bindings used by the watch session.
var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "Q", "c", "C", "ctrl+c"),
		key.WithHelp("q/c", "quit"),
	),
}
