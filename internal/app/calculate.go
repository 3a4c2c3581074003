package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/agbru/parsum/internal/cli"
	apperrors "github.com/agbru/parsum/internal/errors"
	"github.com/agbru/parsum/internal/generator"
	"github.com/agbru/parsum/internal/logging"
	"github.com/agbru/parsum/internal/metrics"
	"github.com/agbru/parsum/internal/orchestration"
	"github.com/agbru/parsum/internal/sysmon"
	"github.com/agbru/parsum/internal/ui"
)

// runBenchmark generates the sequence, runs every selected task and reports
// the comparison.
func (a *Application) runBenchmark(ctx context.Context, out io.Writer) int {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()

	cfg := a.Config
	seed := cfg.Seed
	if seed == 0 {
		seed = generator.ClockSeed()
	}

	mem := metrics.NewMemoryCollector()
	before := mem.Snapshot()
	seq, err := generator.New(seed, cfg.MaxValue).Ints(cfg.Size)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", apperrors.WrapError(err, "generating %d values", cfg.Size))
		return apperrors.ExitErrorConfig
	}
	after := mem.Snapshot()
	a.Logger.Info("sequence generated",
		logging.Int("size", len(seq)),
		logging.Uint64("seed", seed),
		logging.Int("max", cfg.MaxValue),
	)

	tasks := orchestration.BuildTasks(cfg)

	// Skip verbose output in quiet mode
	if !cfg.Quiet {
		cli.PrintExecutionConfig(cfg, seed, sysmon.Describe(), out)
		if cfg.Verbose {
			cli.DisplayMemoryStats(metrics.AllocatedSince(before, after), after.HeapAlloc, after.NumGC, out)
		}
		cli.PrintExecutionPlan(tasks, out)
	}

	var reporter orchestration.ProgressReporter = cli.CLIProgressReporter{}
	progressOut := out
	if cfg.Quiet {
		reporter = orchestration.NullProgressReporter{}
		progressOut = io.Discard
	}

	recorder := metrics.NewRecorder(cfg.Metrics)
	results := orchestration.ExecuteBenchmarks(ctx, tasks, seq, cfg.Repeat, reporter, progressOut,
		orchestration.WithLogger(a.Logger),
		orchestration.WithRecorder(recorder),
	)

	presenter := cli.CLIResultPresenter{Quiet: cfg.Quiet}
	handler := deadlineHandler{ErrorHandler: presenter, limit: cfg.Timeout}
	opts := orchestration.PresentationOptions{
		Size:    cfg.Size,
		Key:     cfg.Key,
		Seed:    seed,
		Verbose: cfg.Verbose,
		Details: cfg.Details,
		Quiet:   cfg.Quiet,
	}
	exitCode := orchestration.AnalyzeResults(results, opts, presenter, handler, out)

	// Tasks cut short by the deadline or a signal turn a partial success into
	// the matching failure.
	if exitCode == apperrors.ExitSuccess && ctx.Err() != nil && anyFailed(results) {
		exitCode = handler.HandleError(ctx.Err(), out)
	}

	header := cli.ReportHeader{
		Size:     cfg.Size,
		Key:      cfg.Key,
		Seed:     seed,
		MaxValue: cfg.MaxValue,
		Repeat:   cfg.Repeat,
	}
	if err := cli.WriteReportToFile(cfg.OutputFile, header, results); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", apperrors.WrapError(err, "saving report"))
		if exitCode == apperrors.ExitSuccess {
			exitCode = apperrors.ExitErrorGeneric
		}
	} else if cfg.OutputFile != "" && !cfg.Quiet {
		fmt.Fprintf(out, "\n%s✓ Report saved to: %s%s%s\n",
			ui.ColorGreen(), ui.ColorCyan(), cfg.OutputFile, ui.ColorReset())
	}

	if cfg.Metrics {
		fmt.Fprintln(out)
		if err := recorder.WriteText(out); err != nil {
			a.Logger.Error("metrics dump failed", err)
		}
	}

	a.Logger.Debug("benchmark finished", logging.Int("exit_code", exitCode))
	return exitCode
}

// deadlineHandler reports an expired deadline as an apperrors.TimeoutError
// carrying the configured limit.
type deadlineHandler struct {
	orchestration.ErrorHandler
	limit time.Duration
}

func (h deadlineHandler) HandleError(err error, out io.Writer) int {
	var timeout apperrors.TimeoutError
	if errors.Is(err, context.DeadlineExceeded) && !errors.As(err, &timeout) {
		err = apperrors.TimeoutError{Operation: "benchmark", Limit: h.limit}
	}
	return h.ErrorHandler.HandleError(err, out)
}

func anyFailed(results []orchestration.BenchmarkResult) bool {
	for _, r := range results {
		if r.Err != nil {
			return true
		}
	}
	return false
}
