//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks

package orchestration

import (
	"io"
	"sync"
	"time"
)

// PresentationOptions configures how results are presented to the user.
type PresentationOptions struct {
	Size    int
	Key     int
	Seed    uint64
	Verbose bool
	Details bool
	Quiet   bool
}

// ProgressReporter displays benchmark progress.
//
// DisplayProgress is started on its own goroutine before the first task runs
// and must keep draining progressChan until it is closed, then call wg.Done.
type ProgressReporter interface {
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numTasks int, out io.Writer)
}

// ProgressReporterFunc is a function adapter that implements ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numTasks int, out io.Writer)

// DisplayProgress calls the underlying function.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numTasks int, out io.Writer) {
	f(wg, progressChan, numTasks, out)
}

// NullProgressReporter drains the progress channel without output.
// It is used in quiet mode and in tests.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	DrainChannel(progressChan)
}

// ResultPresenter renders benchmark results.
type ResultPresenter interface {
	// PresentComparisonTable displays one row per task.
	PresentComparisonTable(results []BenchmarkResult, out io.Writer)

	// PresentResult displays the agreed values and, with Details set, the
	// per-partition breakdown of the parallel runs.
	PresentResult(results []BenchmarkResult, opts PresentationOptions, out io.Writer)
}

// DurationFormatter formats durations for display.
type DurationFormatter interface {
	FormatDuration(d time.Duration) string
}

// ErrorHandler reports a benchmark error and returns the matching exit code.
type ErrorHandler interface {
	HandleError(err error, out io.Writer) int
}
