package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Back  key.Binding
	Quit  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:    key.NewBinding(key.WithKeys("w", "up"), key.WithHelp("w/↑", "up")),
		Down:  key.NewBinding(key.WithKeys("s", "down"), key.WithHelp("s/↓", "down")),
		Left:  key.NewBinding(key.WithKeys("a", "left"), key.WithHelp("a/←", "left")),
		Right: key.NewBinding(key.WithKeys("d", "right"), key.WithHelp("d/→", "right")),
		Back:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "menu")),
		Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q/ctrl+c", "quit")),
	}
}

func (k keyMap) helpLines() []string {
	var lines []string
	for _, b := range []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Back, k.Quit} {
		h := b.Help()
		lines = append(lines, h.Key+": "+h.Desc)
	}
	return lines
}
