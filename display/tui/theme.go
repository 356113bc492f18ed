package tui

import "github.com/charmbracelet/lipgloss"

// Color palette for the monitoring dashboard theme.
const (
	colorPrimary   = lipgloss.Color("#7C3AED") // Purple
	colorSecondary = lipgloss.Color("#06B6D4") // Cyan
	colorMuted     = lipgloss.Color("#6B7280") // Gray
)

// Styles used throughout the dashboard.
var (
	styleHeader lipgloss.Style
	styleTitle  lipgloss.Style
	styleLabel  lipgloss.Style
	styleBlock  lipgloss.Style
	styleFooter lipgloss.Style
)

func init() {
	styleHeader = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorPrimary).
		Padding(0, 2)

	styleTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(colorSecondary)

	styleLabel = lipgloss.NewStyle().
		Foreground(colorMuted)

	styleBlock = lipgloss.NewStyle().
		Padding(0, 1).
		MarginTop(1)

	styleFooter = lipgloss.NewStyle().
		Foreground(colorMuted).
		MarginTop(1)
}
