package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/parsum/internal/format"
)

// HeaderModel renders the top bar: title, version, elapsed time of the
// current run and a CPU usage sparkline.
type HeaderModel struct {
	startTime time.Time
	endTime   time.Time
	version   string
	width     int
	cpu       cpuHistory
}

// NewHeaderModel creates a new header.
func NewHeaderModel(version string) HeaderModel {
	return HeaderModel{
		version: version,
		cpu:     newCPUHistory(20),
	}
}

// Start restarts the elapsed timer.
func (h *HeaderModel) Start() {
	h.startTime = time.Now()
	h.endTime = time.Time{}
}

// SetDone freezes the elapsed timer at the current time.
func (h *HeaderModel) SetDone() {
	h.endTime = time.Now()
}

// SetWidth updates the available width.
func (h *HeaderModel) SetWidth(w int) {
	h.width = w
}

// AddCPUSample records a CPU usage percentage.
func (h *HeaderModel) AddCPUSample(percent float64) {
	h.cpu = h.cpu.Push(percent)
}

// Elapsed returns the duration of the current or last run, zero before the
// first run.
func (h HeaderModel) Elapsed() time.Duration {
	switch {
	case h.startTime.IsZero():
		return 0
	case !h.endTime.IsZero():
		return h.endTime.Sub(h.startTime)
	default:
		return time.Since(h.startTime)
	}
}

// View renders the header.
func (h HeaderModel) View() string {
	titleText := "parsum"
	if h.version != "" && h.version != "dev" {
		titleText += " " + h.version
	}
	left := titleStyle.Render(titleText) + versionStyle.Render(" | ") +
		elapsedStyle.Render(fmt.Sprintf("Elapsed: %s", format.FormatExecutionDuration(h.Elapsed())))

	var right string
	if h.cpu.Len() > 0 {
		right = dimStyle.Render(fmt.Sprintf("CPU %5.1f%% ", h.cpu.Last())) +
			cpuSparkStyle.Render(RenderSparkline(h.cpu.samples))
	}

	gap := h.width - 2 - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return headerStyle.Render(left + strings.Repeat(" ", gap) + right)
}
