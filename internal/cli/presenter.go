package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	apperrors "github.com/agbru/parsum/internal/errors"
	"github.com/agbru/parsum/internal/format"
	"github.com/agbru/parsum/internal/orchestration"
	"github.com/agbru/parsum/internal/ui"
)

// CLIProgressReporter implements orchestration.ProgressReporter with a
// spinner and progress bar.
type CLIProgressReporter struct{}

var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress delegates to the package-level DisplayProgress.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, numTasks int, out io.Writer) {
	DisplayProgress(wg, progressChan, numTasks, out)
}

// CLIResultPresenter implements orchestration.ResultPresenter for terminal
// output. In quiet mode the table is suppressed and PresentResult prints
// machine-readable lines only.
type CLIResultPresenter struct {
	Quiet bool
}

var (
	_ orchestration.ResultPresenter   = CLIResultPresenter{}
	_ orchestration.DurationFormatter = CLIResultPresenter{}
	_ orchestration.ErrorHandler      = CLIResultPresenter{}
)

var tableHeaders = []string{"Task", "Workers", "Result", "Mean", "StdDev", "Min", "Speedup", "Status"}

// PresentComparisonTable prints one row per task. Columns are padded by
// hand because ANSI codes defeat width computations of text/tabwriter.
func (p CLIResultPresenter) PresentComparisonTable(results []orchestration.BenchmarkResult, out io.Writer) {
	if p.Quiet {
		return
	}
	fmt.Fprintf(out, "\n--- Benchmark Summary ---\n")

	rows := make([][]string, len(results))
	widths := make([]int, len(tableHeaders)-1)
	for i, h := range tableHeaders[:len(widths)] {
		widths[i] = len(h)
	}
	for i, res := range results {
		rows[i] = tableRow(res)
		for c := range widths {
			if n := len([]rune(rows[i][c])); n > widths[c] {
				widths[c] = n
			}
		}
	}

	var header strings.Builder
	for c, h := range tableHeaders {
		header.WriteString(ui.ColorUnderline() + h + ui.ColorReset())
		if c < len(widths) {
			header.WriteString(padRight("", widths[c]-len(h)) + "   ")
		}
	}
	fmt.Fprintln(out, header.String())

	for i, res := range results {
		var line strings.Builder
		for c, cell := range rows[i] {
			line.WriteString(ui.Paint(cellColor(c, res), cell))
			line.WriteString(padRight("", widths[c]-len([]rune(cell))) + "   ")
		}
		line.WriteString(statusCell(res))
		fmt.Fprintln(out, line.String())
	}
}

func tableRow(res orchestration.BenchmarkResult) []string {
	workers, speedup := "-", "1.00x"
	if !res.IsBaseline() {
		workers = fmt.Sprintf("%d", res.Workers)
		speedup = format.FormatSpeedup(res.Speedup)
	}
	result := "-"
	if res.Err == nil {
		result = res.Value.Format(res.Operation)
	}
	return []string{
		res.Name,
		workers,
		result,
		durationCell(res.Stats.Mean, len(res.Durations)),
		durationCell(res.Stats.StdDev, len(res.Durations)),
		durationCell(res.Stats.Min, len(res.Durations)),
		speedup,
	}
}

func durationCell(d time.Duration, runs int) string {
	if runs == 0 {
		return "-"
	}
	if d == 0 {
		return "< 1µs"
	}
	return format.FormatExecutionDuration(d)
}

func cellColor(column int, res orchestration.BenchmarkResult) string {
	switch column {
	case 0:
		return ui.ColorBlue()
	case 3:
		return ui.ColorYellow()
	case 6:
		if !res.IsBaseline() && res.Speedup > 0 && res.Speedup < 1 {
			return ui.ColorRed()
		}
		return ui.ColorGreen()
	}
	return ""
}

func statusCell(res orchestration.BenchmarkResult) string {
	if res.Err != nil {
		return fmt.Sprintf("%s❌ Failure (%v)%s", ui.ColorRed(), res.Err, ui.ColorReset())
	}
	return fmt.Sprintf("%s✅ Success%s", ui.ColorGreen(), ui.ColorReset())
}

// padRight returns s followed by length spaces.
func padRight(s string, length int) string {
	if length <= 0 {
		return s
	}
	return s + strings.Repeat(" ", length)
}

// PresentResult prints the agreed result of each operation and, when
// requested, the per-partition breakdown of every successful parallel task.
func (p CLIResultPresenter) PresentResult(results []orchestration.BenchmarkResult, opts orchestration.PresentationOptions, out io.Writer) {
	if p.Quiet || opts.Quiet {
		DisplayQuietResult(out, results)
		return
	}
	DisplayResult(results, opts, out)
}

// FormatDuration formats a duration for display.
func (CLIResultPresenter) FormatDuration(d time.Duration) string {
	return format.FormatExecutionDuration(d)
}

// HandleError prints err and returns the exit code of its class.
func (CLIResultPresenter) HandleError(err error, out io.Writer) int {
	return apperrors.HandleBenchmarkError(err, out, CLIColorProvider{})
}

// CLIColorProvider implements apperrors.ColorProvider with the active theme.
type CLIColorProvider struct{}

func (CLIColorProvider) Red() string    { return ui.ColorRed() }
func (CLIColorProvider) Yellow() string { return ui.ColorYellow() }
func (CLIColorProvider) Reset() string  { return ui.ColorReset() }

// DisplayMemoryStats shows the memory cost of generating the sequence.
func DisplayMemoryStats(allocated uint64, heapAlloc uint64, numGC uint32, out io.Writer) {
	fmt.Fprintf(out, "\nMemory Stats:\n")
	fmt.Fprintf(out, "  Sequence allocation: %s\n", format.FormatBytes(allocated))
	fmt.Fprintf(out, "  Heap in use:         %s\n", format.FormatBytes(heapAlloc))
	fmt.Fprintf(out, "  GC cycles:           %d\n", numGC)
}
