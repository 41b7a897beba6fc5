package tui

import (
	"sort"

	"github.com/akyairhashvil/pomo/internal/config"
	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	Name     string
	Base     lipgloss.Style
	Border   lipgloss.Color
	Header   lipgloss.Style
	Work     lipgloss.Style
	Break    lipgloss.Style
	Clock    lipgloss.Style
	Session  lipgloss.Style
	Locked   lipgloss.Style
	Notice   lipgloss.Style
	Input    lipgloss.Style
	Dim      lipgloss.Style
	Gradient [2]string
}

var Themes = map[string]Theme{
	"default": {
		Name:     "Default",
		Base:     lipgloss.NewStyle().Margin(1, 2),
		Border:   lipgloss.Color("63"),
		Header:   lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
		Work:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Break:    lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true),
		Clock:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Bold(true).Padding(0, 1),
		Session:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Locked:   lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Notice:   lipgloss.NewStyle().Foreground(lipgloss.Color("81")).Bold(true),
		Input:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("205")).Padding(0, 1).Width(20),
		Dim:      lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Gradient: [2]string{"#FF7CCB", "#FDFF8C"},
	},
	"dracula": {
		Name:     "Dracula",
		Base:     lipgloss.NewStyle().Margin(1, 2),
		Border:   lipgloss.Color("62"),                                           // Purple
		Header:   lipgloss.NewStyle().Foreground(lipgloss.Color("50")).Bold(true), // Cyan
		Work:     lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true), // Red
		Break:    lipgloss.NewStyle().Foreground(lipgloss.Color("215")).Bold(true), // Orange
		Clock:    lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true).Padding(0, 1),
		Session:  lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		Locked:   lipgloss.NewStyle().Foreground(lipgloss.Color("228")), // Yellow
		Notice:   lipgloss.NewStyle().Foreground(lipgloss.Color("120")).Bold(true), // Green
		Input:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("50")).Padding(0, 1).Width(20),
		Dim:      lipgloss.NewStyle().Foreground(lipgloss.Color("60")),
		Gradient: [2]string{"#BD93F9", "#FF79C6"},
	},
}

// ThemeByName returns the named theme, or the default one.
func ThemeByName(name string) Theme {
	if t, ok := Themes[name]; ok {
		return t
	}
	return Themes["default"]
}

// ThemeNames lists the available theme names.
func ThemeNames() []string {
	names := make([]string, 0, len(Themes))
	for name := range Themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (t Theme) phaseStyle(label string) lipgloss.Style {
	if label == config.LabelBreak {
		return t.Break
	}
	return t.Work
}
