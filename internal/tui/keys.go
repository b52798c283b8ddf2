package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Inc    key.Binding
	Dec    key.Binding
	Toggle key.Binding
	Save   key.Binding
	Clear  key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Inc:    key.NewBinding(key.WithKeys("right", "l", "+"), key.WithHelp("→/+", "increase")),
	Dec:    key.NewBinding(key.WithKeys("left", "h", "-"), key.WithHelp("←/-", "decrease")),
	Toggle: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "toggle action")),
	Save:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save plant")),
	Clear:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear plants")),
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

func (k keyMap) bindings() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Inc, k.Dec, k.Toggle, k.Save, k.Clear, k.Quit}
}
