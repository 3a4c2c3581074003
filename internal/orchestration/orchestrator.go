package orchestration

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/agbru/parsum/internal/errors"
	"github.com/agbru/parsum/internal/logging"
	"github.com/agbru/parsum/internal/metrics"
)

const tracerName = "github.com/agbru/parsum/internal/orchestration"

// ProgressBufferMultiplier defines the buffer size multiplier for the progress
// channel. Updates are sent without blocking, so a slow reporter may miss
// intermediate values but never stalls a measurement.
const ProgressBufferMultiplier = 5

// BenchmarkResult is the outcome of all repetitions of one task.
type BenchmarkResult struct {
	Name      string
	Operation string
	// Workers is 0 for the sequential baseline.
	Workers int
	// Value is the result of the last successful repetition.
	Value     Value
	Durations []time.Duration
	Stats     Stats
	// Speedup is baseline mean / own mean; 1 for the baseline itself and 0
	// when no baseline of the same operation succeeded.
	Speedup float64
	Err     error
}

// IsBaseline reports whether the result belongs to a sequential task.
func (r BenchmarkResult) IsBaseline() bool { return r.Workers == 0 }

type execOptions struct {
	logger   logging.Logger
	recorder *metrics.Recorder
	tracer   trace.Tracer
}

// ExecOption customizes ExecuteBenchmarks.
type ExecOption func(*execOptions)

// WithLogger sets the logger receiving per-task debug entries.
func WithLogger(l logging.Logger) ExecOption {
	return func(o *execOptions) { o.logger = l }
}

// WithRecorder records every task in r.
func WithRecorder(r *metrics.Recorder) ExecOption {
	return func(o *execOptions) { o.recorder = r }
}

// WithTracer overrides the tracer obtained from the global provider.
func WithTracer(t trace.Tracer) ExecOption {
	return func(o *execOptions) { o.tracer = t }
}

// ExecuteBenchmarks runs every task repeat times over seq and returns one
// result per task, in task order.
//
// Tasks run strictly one after another so that a parallel task never competes
// with another measurement for CPUs. Cancellation of ctx is checked between
// repetitions: the running repetition always completes, the remaining ones
// are skipped and the affected results carry ctx's error. Values already
// recorded are never altered.
//
// Parameters:
//   - ctx: The context for cancellation and deadlines.
//   - tasks: The tasks to run, typically from BuildTasks.
//   - seq: The shared read-only sequence.
//   - repeat: Timed runs per task; values below 1 are treated as 1.
//   - reporter: The progress reporter (NullProgressReporter for quiet mode).
//   - out: The writer handed to the reporter.
//
// Returns:
//   - []BenchmarkResult: One result per task, with Stats and Speedup set.
func ExecuteBenchmarks(ctx context.Context, tasks []Task, seq []int, repeat int, reporter ProgressReporter, out io.Writer, opts ...ExecOption) []BenchmarkResult {
	o := execOptions{logger: logging.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.tracer == nil {
		o.tracer = otel.Tracer(tracerName)
	}
	if repeat < 1 {
		repeat = 1
	}

	results := make([]BenchmarkResult, len(tasks))
	progressChan := make(chan ProgressUpdate, len(tasks)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go reporter.DisplayProgress(&displayWg, progressChan, len(tasks), out)

	if o.recorder != nil {
		o.recorder.SetSequenceLength(len(seq))
	}

	for i, task := range tasks {
		results[i] = runTask(ctx, o, i, task, seq, repeat, progressChan)
		o.logger.Debug("task finished",
			logging.String("task", task.Name()),
			logging.Int("workers", task.Workers()),
			logging.Int("runs", len(results[i].Durations)),
			logging.Duration("mean", results[i].Stats.Mean),
			logging.Err(results[i].Err),
		)
		if o.recorder != nil {
			o.recorder.Observe(metrics.Sample{
				Task:      task.Name(),
				Operation: task.Operation(),
				Workers:   task.Workers(),
				Durations: results[i].Durations,
				Err:       results[i].Err,
			})
		}
	}

	close(progressChan)
	displayWg.Wait()

	applySpeedups(results)
	return results
}

func runTask(ctx context.Context, o execOptions, idx int, task Task, seq []int, repeat int, progressChan chan<- ProgressUpdate) BenchmarkResult {
	res := BenchmarkResult{
		Name:      task.Name(),
		Operation: task.Operation(),
		Workers:   task.Workers(),
		Durations: make([]time.Duration, 0, repeat),
	}

	_, span := o.tracer.Start(ctx, "benchmark "+task.Name(), trace.WithAttributes(
		attribute.String("parsum.operation", task.Operation()),
		attribute.Int("parsum.workers", task.Workers()),
		attribute.Int("parsum.length", len(seq)),
		attribute.Int("parsum.repeat", repeat),
	))
	defer span.End()

	for r := 0; r < repeat; r++ {
		if err := ctx.Err(); err != nil {
			res.Err = apperrors.BenchmarkError{Task: task.Name(), Cause: err}
			break
		}
		start := time.Now()
		v, err := task.Run(seq)
		elapsed := time.Since(start)
		if err != nil {
			res.Err = apperrors.BenchmarkError{Task: task.Name(), Cause: err}
			break
		}
		if r > 0 && !v.Equal(res.Value) {
			res.Err = apperrors.BenchmarkError{
				Task:  task.Name(),
				Cause: fmt.Errorf("run %d returned %s, run 1 returned %s", r+1, v.Format(task.Operation()), res.Value.Format(task.Operation())),
			}
			break
		}
		res.Value = v
		res.Durations = append(res.Durations, elapsed)

		select {
		case progressChan <- ProgressUpdate{TaskIndex: idx, Value: float64(r+1) / float64(repeat)}:
		default:
		}
	}

	res.Stats = ComputeStats(res.Durations)
	if res.Err != nil {
		span.RecordError(res.Err)
		span.SetStatus(codes.Error, res.Err.Error())
	} else {
		span.SetAttributes(attribute.String("parsum.result", res.Value.Format(task.Operation())))
	}
	return res
}

// AnalyzeResults presents the results and derives the exit code.
//
// Every successful parallel result is compared with the successful sequential
// baseline of the same operation. Any disagreement is a critical error and
// yields ExitErrorMismatch. If no task succeeded, the first error is handed to
// handler. Otherwise the run is a success, even when some tasks failed.
//
// Parameters:
//   - results: The results returned by ExecuteBenchmarks.
//   - opts: The presentation options.
//   - presenter: The result presenter for display formatting.
//   - handler: The error handler used when every task failed.
//   - out: The io.Writer for the summary report.
//
// Returns:
//   - int: An exit code indicating success (0) or the type of failure.
func AnalyzeResults(results []BenchmarkResult, opts PresentationOptions, presenter ResultPresenter, handler ErrorHandler, out io.Writer) int {
	var firstError error
	successCount := 0
	baselines := make(map[string]Value)
	for _, r := range results {
		if r.Err != nil {
			if firstError == nil {
				firstError = r.Err
			}
			continue
		}
		successCount++
		if r.IsBaseline() {
			baselines[r.Operation] = r.Value
		}
	}

	presenter.PresentComparisonTable(results, out)

	if successCount == 0 {
		if !opts.Quiet {
			fmt.Fprintf(out, "\nGlobal Status: Failure. No task could complete.\n")
		}
		return handler.HandleError(firstError, out)
	}

	if mismatch := FindMismatch(results, baselines); mismatch != nil {
		fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! %s returned %s but the sequential baseline returned %s.\n",
			mismatch.Name, mismatch.Value.Format(mismatch.Operation), baselines[mismatch.Operation].Format(mismatch.Operation))
		return apperrors.ExitErrorMismatch
	}

	if !opts.Quiet {
		if firstError != nil {
			fmt.Fprintf(out, "\nGlobal Status: Partial. Some tasks failed; all completed results are consistent.\n")
		} else {
			fmt.Fprintf(out, "\nGlobal Status: Success. All parallel results match their sequential baselines.\n")
		}
	}
	presenter.PresentResult(results, opts, out)
	return apperrors.ExitSuccess
}

// FindMismatch returns the first successful parallel result whose value
// differs from the baseline of its operation, or nil.
func FindMismatch(results []BenchmarkResult, baselines map[string]Value) *BenchmarkResult {
	for i := range results {
		r := &results[i]
		if r.Err != nil || r.IsBaseline() {
			continue
		}
		base, ok := baselines[r.Operation]
		if ok && !r.Value.Equal(base) {
			return r
		}
	}
	return nil
}
