package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the key bindings of the preview.
type KeyMap struct {
	Show      key.Binding
	NextStyle key.Binding
	PrevStyle key.Binding
	Location  key.Binding
	Duration  key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// ShortHelp returns a short help message.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Show, k.NextStyle, k.Help, k.Quit}
}

// FullHelp returns a full help message.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Show, k.NextStyle, k.PrevStyle},
		{k.Location, k.Duration},
		{k.Help, k.Quit},
	}
}

// DefaultKeyMap returns the default key bindings. Letters are left to
// the message input.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Show: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "show toast"),
		),
		NextStyle: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next style"),
		),
		PrevStyle: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous style"),
		),
		Location: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "top/bottom"),
		),
		Duration: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "cycle duration"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
	}
}
