package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/parsum/internal/ui"
)

// Style variables of the form and result views.
// Initialized from the ui theme system via initTUIStyles().
var (
	panelStyle       lipgloss.Style
	headerStyle      lipgloss.Style
	titleStyle       lipgloss.Style
	versionStyle     lipgloss.Style
	elapsedStyle     lipgloss.Style
	labelStyle       lipgloss.Style
	focusedStyle     lipgloss.Style
	blurredStyle     lipgloss.Style
	errorStyle       lipgloss.Style
	successStyle     lipgloss.Style
	warningStyle     lipgloss.Style
	dimStyle         lipgloss.Style
	barFilledStyle   lipgloss.Style
	barEmptyStyle    lipgloss.Style
	tableBorderStyle lipgloss.Style
	tableHeaderStyle lipgloss.Style
	tableCellStyle   lipgloss.Style
	cpuSparkStyle    lipgloss.Style
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
		Foreground(t.Text).
		Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent).
		Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent)

	versionStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	elapsedStyle = lipgloss.NewStyle().
		Foreground(t.Accent)

	labelStyle = lipgloss.NewStyle().
		Foreground(t.Text).
		Width(14)

	focusedStyle = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	blurredStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	errorStyle = lipgloss.NewStyle().
		Foreground(t.Error)

	successStyle = lipgloss.NewStyle().
		Foreground(t.Success)

	warningStyle = lipgloss.NewStyle().
		Foreground(t.Warning)

	dimStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	barFilledStyle = lipgloss.NewStyle().
		Foreground(t.Accent)

	barEmptyStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	tableBorderStyle = lipgloss.NewStyle().
		Foreground(t.Border)

	tableHeaderStyle = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true).
		Padding(0, 1)

	tableCellStyle = lipgloss.NewStyle().
		Foreground(t.Text).
		Padding(0, 1)

	cpuSparkStyle = lipgloss.NewStyle().
		Foreground(t.Accent)
}
