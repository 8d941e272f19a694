package tui

import "github.com/charmbracelet/lipgloss"

const (
	colorAccent = lipgloss.Color("12")
	colorError  = lipgloss.Color("9")
)

var (
	appStyle        = lipgloss.NewStyle().Padding(1, 2)
	titleStyle      = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	selectedStyle   = lipgloss.NewStyle().Bold(true).Reverse(true)
	helpStyle       = lipgloss.NewStyle().Faint(true)
	errorStyle      = lipgloss.NewStyle().Bold(true).Foreground(colorError)
	overlayBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorAccent).Padding(1, 2)
)
