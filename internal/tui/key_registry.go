package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Toggle   key.Binding
	Reset    key.Binding
	Preset   key.Binding
	Goal     key.Binding
	GoalUp   key.Binding
	GoalDown key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Toggle:   key.NewBinding(key.WithKeys(" ", "s"), key.WithHelp("space", "start/pause")),
		Reset:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Preset:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "next preset")),
		Goal:     key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "set goal")),
		GoalUp:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "goal +1")),
		GoalDown: key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "goal -1")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Reset, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Reset},
		{k.Preset, k.Goal, k.GoalUp, k.GoalDown},
		{k.Help, k.Quit},
	}
}
