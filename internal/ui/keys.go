package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Toggle    key.Binding
	Left      key.Binding
	Right     key.Binding
	Up        key.Binding
	Down      key.Binding
	Preset    key.Binding
	Reverse   key.Binding
	Bob       key.Binding
	Orbit     key.Binding
	Crosshair key.Binding
	Faster    key.Binding
	Slower    key.Binding
	Renderer  key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Toggle:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "pause")),
		Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "push left")),
		Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "push right")),
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "push up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "push down")),
		Preset:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "preset")),
		Reverse:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reverse")),
		Bob:       key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "bob")),
		Orbit:     key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "orbit")),
		Crosshair: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "crosshair")),
		Faster:    key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "fps")),
		Slower:    key.NewBinding(key.WithKeys("-", "_")),
		Renderer:  key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "renderer")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Left, k.Preset, k.Renderer, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Left, k.Right, k.Up, k.Down},
		{k.Preset, k.Reverse, k.Bob, k.Orbit, k.Crosshair},
		{k.Faster, k.Renderer, k.Help, k.Quit},
	}
}
