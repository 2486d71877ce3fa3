package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the workbook path prompt.
type KeyMap struct {
	Complete key.Binding
	Submit   key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the default key bindings. Quit has no printable key
// so every letter can be typed into a path.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Complete: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "complete"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "load"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// HelpText returns the one-line help shown under the prompt.
func (k KeyMap) HelpText() string {
	return k.Complete.Help().Key + " " + k.Complete.Help().Desc + " • " +
		k.Submit.Help().Key + " " + k.Submit.Help().Desc + " • " +
		k.Quit.Help().Key + " " + k.Quit.Help().Desc
}
