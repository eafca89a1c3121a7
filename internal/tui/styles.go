package tui

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title     lipgloss.Style
	row       lipgloss.Style
	selected  lipgloss.Style
	completed lipgloss.Style
	muted     lipgloss.Style
	err       lipgloss.Style
	toastOK   lipgloss.Style
	toastErr  lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62")).MarginBottom(1),
		row:       lipgloss.NewStyle().PaddingLeft(2),
		selected:  lipgloss.NewStyle().Foreground(lipgloss.Color("170")),
		completed: lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("243")),
		muted:     lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
		err:       lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		toastOK: lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("28")).
			Padding(0, 1),
		toastErr: lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("160")).
			Padding(0, 1),
	}
}
