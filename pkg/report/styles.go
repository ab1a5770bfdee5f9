package report

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/marcus/tailor/internal/models"
)

var (
	// Base colors
	primaryColor = lipgloss.Color("212")
	mutedColor   = lipgloss.Color("241")
	successColor = lipgloss.Color("42")
	infoColor    = lipgloss.Color("45")
	warningColor = lipgloss.Color("214")
	errorColor   = lipgloss.Color("196")

	// Header
	appTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Background(lipgloss.Color("237")).
			Foreground(lipgloss.Color("255")).
			Padding(0, 1)

	searchPromptStyle = lipgloss.NewStyle().Foreground(primaryColor).Bold(true)

	// Cards
	cardTitleStyle    = lipgloss.NewStyle().Bold(true)
	cardSelectedStyle = lipgloss.NewStyle().Foreground(primaryColor).Bold(true)
	cardPressedStyle  = lipgloss.NewStyle().Foreground(warningColor).Bold(true)
	cardBarStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	// Text styles
	subtleStyle = lipgloss.NewStyle().Foreground(mutedColor)
	helpStyle   = lipgloss.NewStyle().Foreground(mutedColor)
	errorStyle  = lipgloss.NewStyle().Foreground(errorColor)
	okStyle     = lipgloss.NewStyle().Foreground(successColor)

	// Modals
	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(0, 1)

	dangerModalStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(errorColor).
				Padding(0, 1)

	modalTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255"))

	selectedRowStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("237")).
				Foreground(lipgloss.Color("255"))

	disabledRowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238")).Strikethrough(true)

	buttonStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Background(lipgloss.Color("238")).
			Foreground(lipgloss.Color("255"))

	buttonFocusedStyle = lipgloss.NewStyle().
				Padding(0, 2).
				Background(errorColor).
				Foreground(lipgloss.Color("255")).
				Bold(true)

	// Status tag styles by severity
	severityStyles = map[models.Severity]lipgloss.Style{
		models.SeveritySuccess: lipgloss.NewStyle().Foreground(successColor),
		models.SeverityInfo:    lipgloss.NewStyle().Foreground(infoColor),
		models.SeverityWarning: lipgloss.NewStyle().Foreground(warningColor),
		models.SeverityDanger:  lipgloss.NewStyle().Foreground(errorColor),
	}
)

// formatStatusTag renders a status name with its severity color
func formatStatusTag(name string) string {
	if name == "" {
		name = "Unknown"
	}
	style, ok := severityStyles[models.StatusSeverity(name)]
	if !ok {
		return subtleStyle.Render(name)
	}
	return style.Render(name)
}
