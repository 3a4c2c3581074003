//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/parsum/internal/format"
	"github.com/agbru/parsum/internal/orchestration"
)

const (
	// ProgressRefreshRate defines the refresh frequency of the progress bar.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth defines the width in characters of the progress bar.
	ProgressBarWidth = 40
)

// Spinner abstracts a terminal spinner so that DisplayProgress can be tested
// without a terminal.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }
func (rs *realSpinner) Stop()  { rs.s.Stop() }

// UpdateSuffix takes the spinner's lock so that the suffix is never read
// half-written by the animation goroutine.
func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// DisplayProgress shows a spinner followed by a progress bar and an ETA while
// the benchmark runs. It returns, and calls wg.Done, once progressChan is
// closed. With numTasks <= 0 it only drains the channel.
//
// Parameters:
//   - wg: The WaitGroup signaled on return.
//   - progressChan: Updates sent by orchestration.ExecuteBenchmarks.
//   - numTasks: The number of tasks being executed.
//   - out: The writer the spinner renders to.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, numTasks int, out io.Writer) {
	defer wg.Done()
	agg := orchestration.NewProgressAggregator(numTasks)
	if agg == nil {
		orchestration.DrainChannel(progressChan)
		return
	}

	s := newSpinner(spinner.WithWriter(out))
	s.UpdateSuffix(progressSuffix(0, 0))
	s.Start()
	defer func() {
		s.Stop()
		fmt.Fprintf(out, "%s\n", strings.TrimPrefix(progressSuffix(1, 0), " "))
	}()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()
	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				return
			}
			ap := agg.Update(update)
			s.UpdateSuffix(progressSuffix(ap.AverageProgress, ap.ETA))
		case <-ticker.C:
			s.UpdateSuffix(progressSuffix(agg.CalculateAverage(), agg.GetETA()))
		}
	}
}

func progressSuffix(progress float64, eta time.Duration) string {
	suffix := fmt.Sprintf(" Benchmarking %s %5.1f%%", progressBar(progress, ProgressBarWidth), progress*100)
	if eta > 0 {
		suffix += " ETA " + format.FormatExecutionDuration(eta)
	}
	return suffix
}

// progressBar renders progress (clamped to [0, 1]) as a bar of length cells.
func progressBar(progress float64, length int) string {
	if progress > 1.0 {
		progress = 1.0
	}
	if progress < 0.0 {
		progress = 0.0
	}
	count := int(progress * float64(length))
	var builder strings.Builder
	builder.Grow(length * 3)
	for i := 0; i < length; i++ {
		if i < count {
			builder.WriteRune('█')
		} else {
			builder.WriteRune('░')
		}
	}
	return builder.String()
}
