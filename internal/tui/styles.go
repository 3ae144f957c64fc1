package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/primecalc/primecalc/internal/ui"
)

// Style variables for the TUI dashboard.
// Initialized from the ui theme system via initTUIStyles().
var (
	panelStyle       lipgloss.Style
	headerStyle      lipgloss.Style
	versionStyle     lipgloss.Style
	promptStyle      lipgloss.Style
	jobRunningStyle  lipgloss.Style
	jobSuccessStyle  lipgloss.Style
	jobErrorStyle    lipgloss.Style
	metricLabelStyle lipgloss.Style
	metricValueStyle lipgloss.Style
	footerKeyStyle   lipgloss.Style
	footerDescStyle  lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles rebuilds all TUI styles from the current ui theme.
// Called at package init and again from Run() after InitTheme has been invoked.
func initTUIStyles() {
	t := ui.GetCurrentTUITheme()

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Background(t.Bg).
		Foreground(t.Text)

	headerStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent).
		Background(t.Bg).
		Padding(0, 1)

	versionStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	promptStyle = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	jobRunningStyle = lipgloss.NewStyle().
		Foreground(t.Warning)

	jobSuccessStyle = lipgloss.NewStyle().
		Foreground(t.Success)

	jobErrorStyle = lipgloss.NewStyle().
		Foreground(t.Error)

	metricLabelStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	metricValueStyle = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	footerKeyStyle = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	footerDescStyle = lipgloss.NewStyle().
		Foreground(t.Dim)
}
