package tui

import (
	"time"

	"github.com/agbru/parsum/internal/orchestration"
)

// ProgressMsg carries an aggregated progress update from the orchestrator.
type ProgressMsg struct {
	TaskIndex       int
	Value           float64
	AverageProgress float64
	ETA             time.Duration
}

// ProgressDoneMsg signals that the progress channel was closed.
type ProgressDoneMsg struct{}

// ComparisonResultsMsg carries the results as soon as every task has run.
type ComparisonResultsMsg struct {
	Results []orchestration.BenchmarkResult
}

// ErrorMsg reports a run in which no task completed.
type ErrorMsg struct {
	Err error
}

// BenchmarkDoneMsg ends a run started by startBenchmarkCmd.
type BenchmarkDoneMsg struct {
	Results  []orchestration.BenchmarkResult
	ExitCode int
	Seed     uint64
	Err      error
	// Generation identifies the run; messages of superseded runs are dropped.
	Generation uint64
}

// TickMsg drives the elapsed timer and the CPU sparkline.
type TickMsg time.Time

// SysStatsMsg carries a system-wide CPU and memory sample.
type SysStatsMsg struct {
	CPUPercent float64
	MemPercent float64
}

// ContextCancelledMsg reports the cancellation of the session context, for
// example by SIGINT.
type ContextCancelledMsg struct {
	Err error
}
