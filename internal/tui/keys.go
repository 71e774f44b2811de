package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up, Down, Left, Right key.Binding
	Toggle                key.Binding
	Add, Remove           key.Binding
	Complete, Uncomplete  key.Binding
	Help, Quit            key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:       key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev item")),
		Right:      key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next item")),
		Toggle:     key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "toggle")),
		Add:        key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add item")),
		Remove:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "remove item")),
		Complete:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "check column")),
		Uncomplete: key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "clear column")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:       key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Add, k.Remove, k.Complete, k.Uncomplete, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Toggle, k.Complete, k.Uncomplete},
		{k.Add, k.Remove},
		{k.Help, k.Quit},
	}
}
