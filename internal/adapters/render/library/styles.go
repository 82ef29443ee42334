package library

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title   lipgloss.Style
	header  lipgloss.Style
	record  lipgloss.Style
	detail  lipgloss.Style
	warning lipgloss.Style
	section lipgloss.Style
	empty   lipgloss.Style
	index   lipgloss.Style
	latest  lipgloss.Style
	meta    lipgloss.Style
	primary lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:   lipgloss.NewStyle().Bold(true),
		header:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		record:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		detail:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		warning: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		section: lipgloss.NewStyle().MarginTop(1),
		empty:   lipgloss.NewStyle().Faint(true),
		index:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		latest:  lipgloss.NewStyle().Foreground(lipgloss.Color("159")),
		meta:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		primary: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
	}
}
