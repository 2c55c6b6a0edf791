package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent = lipgloss.Color("#7C3AED")
	colorMuted  = lipgloss.Color("#9CA3AF")
	colorOK     = lipgloss.Color("#10B981")
	colorError  = lipgloss.Color("#EF4444")

	brandStyle     = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	tabStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(colorMuted)
	activeTabStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true).Underline(true)
	walletStyle    = lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(colorAccent)
	titleStyle     = lipgloss.NewStyle().Bold(true).Underline(true)
	heroStyle      = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	mutedStyle     = lipgloss.NewStyle().Foreground(colorMuted)
	okStyle        = lipgloss.NewStyle().Foreground(colorOK)
	errorStyle     = lipgloss.NewStyle().Foreground(colorError)
	helpKeyStyle   = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
)
