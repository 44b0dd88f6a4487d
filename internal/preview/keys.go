package preview

import "github.com/charmbracelet/bubbles/key"

// keyMap implements help.KeyMap for the footer.
type keyMap struct {
	Quit   key.Binding
	Pause  key.Binding
	Series key.Binding
	Help   key.Binding
}

// ShortHelp returns the bindings shown in the collapsed footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Pause, k.Quit}
}

// FullHelp returns the bindings shown when help is expanded.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Pause, k.Series},
		{k.Help, k.Quit},
	}
}

var keys = keyMap{
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Pause:  key.NewBinding(key.WithKeys("p", " "), key.WithHelp("p", "pause")),
	Series: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "toggle series")),
	Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
}
