package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	apperrors "github.com/agbru/parsum/internal/errors"
	"github.com/agbru/parsum/internal/format"
	"github.com/agbru/parsum/internal/orchestration"
)

var resultHeaders = []string{"Task", "Workers", "Result", "Mean", "StdDev", "Speedup", "Status"}

// Result table columns referenced by the style function.
const (
	colSpeedup = 5
	colStatus  = 6
)

// resultRow formats one benchmark result as table cells.
func resultRow(r orchestration.BenchmarkResult) []string {
	workers, speedup := "-", "1.00x"
	if !r.IsBaseline() {
		workers = fmt.Sprintf("%d", r.Workers)
		speedup = format.FormatSpeedup(r.Speedup)
	}
	result, mean, stddev, status := "-", "-", "-", "OK"
	if r.Err != nil {
		status = "FAIL"
	} else {
		result = r.Value.Format(r.Operation)
	}
	if len(r.Durations) > 0 {
		mean = format.FormatExecutionDuration(r.Stats.Mean)
		stddev = format.FormatExecutionDuration(r.Stats.StdDev)
	}
	return []string{r.Name, workers, result, mean, stddev, speedup, status}
}

// renderResultTable renders the comparison table of a run.
func renderResultTable(results []orchestration.BenchmarkResult) string {
	rows := make([][]string, len(results))
	for i, r := range results {
		rows[i] = resultRow(r)
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(tableBorderStyle).
		Headers(resultHeaders...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			r := results[row]
			switch {
			case col == colStatus && r.Err != nil:
				return errorStyle.Padding(0, 1)
			case col == colStatus:
				return successStyle.Padding(0, 1)
			case col == colSpeedup && !r.IsBaseline() && r.Speedup > 0 && r.Speedup < 1:
				return warningStyle.Padding(0, 1)
			}
			return tableCellStyle
		}).
		Render()
}

// statusLine summarizes a finished run from its exit code. partial marks a
// successful run in which some tasks failed.
func statusLine(exitCode int, partial bool) string {
	switch {
	case exitCode == apperrors.ExitSuccess && partial:
		return warningStyle.Render("Some tasks failed; all completed results are consistent.")
	case exitCode == apperrors.ExitSuccess:
		return successStyle.Render("✓ All parallel results match their sequential baselines.")
	case exitCode == apperrors.ExitErrorMismatch:
		return errorStyle.Render("✗ A parallel result disagrees with its sequential baseline.")
	case exitCode == apperrors.ExitErrorTimeout:
		return errorStyle.Render("✗ The time limit was exceeded.")
	case exitCode == apperrors.ExitErrorCanceled:
		return warningStyle.Render("Run canceled.")
	default:
		return errorStyle.Render("✗ No task could complete.")
	}
}

// failureLines lists the error of every failed task.
func failureLines(results []orchestration.BenchmarkResult) string {
	var b strings.Builder
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(&b, "%s: %v\n", r.Name, r.Err)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderProgressBar renders a progress bar of exactly width cells.
func renderProgressBar(progress float64, width int) string {
	if width <= 0 {
		return ""
	}
	filled := int(progress * float64(width))
	filled = min(max(filled, 0), width)
	return barFilledStyle.Render(strings.Repeat("█", filled)) +
		barEmptyStyle.Render(strings.Repeat("░", width-filled))
}
