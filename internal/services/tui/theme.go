package tui

import "github.com/charmbracelet/lipgloss"

// Theme defines the colors used by the campaign browser. Colors are ANSI
// 256-color codes.
type Theme struct {
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	HeaderForeground lipgloss.Color
	ErrorForeground  lipgloss.Color
	BusyForeground   lipgloss.Color
	BorderColor      lipgloss.Color
}

// DefaultTheme is the built-in dark-terminal color scheme.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	HeaderForeground: lipgloss.Color("255"),
	ErrorForeground:  lipgloss.Color("196"), // red
	BusyForeground:   lipgloss.Color("220"), // amber
	BorderColor:      lipgloss.Color("240"),
}

type styles struct {
	header   lipgloss.Style
	item     lipgloss.Style
	selected lipgloss.Style
	faint    lipgloss.Style
	err      lipgloss.Style
	busy     lipgloss.Style
	panel    lipgloss.Style
	label    lipgloss.Style
}

func (theme Theme) styles() styles {
	return styles{
		header:   lipgloss.NewStyle().Bold(true).Foreground(theme.HeaderForeground).MarginBottom(1),
		item:     lipgloss.NewStyle().Foreground(theme.NormalText),
		selected: lipgloss.NewStyle().Foreground(theme.SelectedForeground).Background(theme.SelectedBackground).Bold(true),
		faint:    lipgloss.NewStyle().Foreground(theme.FaintText),
		err:      lipgloss.NewStyle().Foreground(theme.ErrorForeground),
		busy:     lipgloss.NewStyle().Foreground(theme.BusyForeground),
		panel:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(theme.BorderColor).Padding(0, 1),
		label:    lipgloss.NewStyle().Foreground(theme.FaintText).Width(14),
	}
}
