package history

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title   lipgloss.Style
	footer  lipgloss.Style
	item    lipgloss.Style
	index   lipgloss.Style
	link    lipgloss.Style
	meta    lipgloss.Style
	id      lipgloss.Style
	section lipgloss.Style
	empty   lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:   lipgloss.NewStyle().Bold(true),
		footer:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1),
		item:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		index:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		link:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		meta:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		id:      lipgloss.NewStyle().Faint(true),
		section: lipgloss.NewStyle().MarginTop(1),
		empty:   lipgloss.NewStyle().Faint(true),
	}
}
