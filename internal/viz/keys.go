package viz

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Start  key.Binding
	Pause  key.Binding
	Back   key.Binding
	Step   key.Binding
	Replay key.Binding
	Reset  key.Binding
	Theme  key.Binding
	Help   key.Binding
	Menu   key.Binding
	Quit   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Start: key.NewBinding(
			key.WithKeys("s", "enter"),
			key.WithHelp("s", "start"),
		),
		Pause: key.NewBinding(
			key.WithKeys(" ", "p"),
			key.WithHelp("space", "pause/resume"),
		),
		Back: key.NewBinding(
			key.WithKeys("b", "left", "h"),
			key.WithHelp("←/b", "back"),
		),
		Step: key.NewBinding(
			key.WithKeys("n", "right", "l"),
			key.WithHelp("→/n", "step"),
		),
		Replay: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "replay"),
		),
		Reset: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "reset"),
		),
		Theme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "theme"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Menu: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "menu"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) controls() []key.Binding {
	return []key.Binding{k.Start, k.Pause, k.Back, k.Step, k.Replay, k.Reset}
}

func (k keyMap) all() []key.Binding {
	return append(k.controls(), k.Theme, k.Help, k.Menu, k.Quit)
}
