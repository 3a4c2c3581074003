package orchestration

import (
	"time"
)

// ProgressUpdate reports how far a task has come through its repetitions.
type ProgressUpdate struct {
	// TaskIndex is the position of the task in the executed slice.
	TaskIndex int
	// Value is the completed fraction of the task's repetitions, 0.0 to 1.0.
	Value float64
}

// ProgressAggregator folds per-task updates into an overall completion
// fraction and a linear ETA. Both the CLI and the TUI consume it.
type ProgressAggregator struct {
	values  []float64
	started time.Time
	now     func() time.Time
	lastETA time.Duration
}

// NewProgressAggregator creates an aggregator for numTasks tasks.
// Returns nil if numTasks <= 0.
func NewProgressAggregator(numTasks int) *ProgressAggregator {
	if numTasks <= 0 {
		return nil
	}
	return &ProgressAggregator{
		values:  make([]float64, numTasks),
		started: time.Now(),
		now:     time.Now,
	}
}

// AggregatedProgress holds the result of processing a single progress update.
type AggregatedProgress struct {
	TaskIndex int
	// Value is the raw progress of the updated task.
	Value float64
	// AverageProgress is the mean progress across all tasks.
	AverageProgress float64
	// ETA is the estimated time remaining, zero until some progress exists.
	ETA time.Duration
}

// Update records an update and returns the aggregated view. Updates with an
// out-of-range index are ignored for aggregation.
func (a *ProgressAggregator) Update(update ProgressUpdate) AggregatedProgress {
	if update.TaskIndex >= 0 && update.TaskIndex < len(a.values) {
		a.values[update.TaskIndex] = clamp01(update.Value)
	}
	avg := a.CalculateAverage()
	a.lastETA = a.estimate(avg)
	return AggregatedProgress{
		TaskIndex:       update.TaskIndex,
		Value:           update.Value,
		AverageProgress: avg,
		ETA:             a.lastETA,
	}
}

// CalculateAverage returns the current mean progress without updating.
func (a *ProgressAggregator) CalculateAverage() float64 {
	var total float64
	for _, v := range a.values {
		total += v
	}
	return total / float64(len(a.values))
}

// GetETA returns the last ETA estimate.
func (a *ProgressAggregator) GetETA() time.Duration {
	return a.lastETA
}

// NumTasks returns the number of tracked tasks.
func (a *ProgressAggregator) NumTasks() int {
	return len(a.values)
}

// IsMultiTask returns true if tracking more than one task.
func (a *ProgressAggregator) IsMultiTask() bool {
	return len(a.values) > 1
}

func (a *ProgressAggregator) estimate(avg float64) time.Duration {
	if avg <= 0 || avg >= 1 {
		return 0
	}
	elapsed := a.now().Sub(a.started)
	return time.Duration(float64(elapsed) * (1 - avg) / avg)
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

// DrainChannel reads all updates from the channel without processing.
func DrainChannel(progressChan <-chan ProgressUpdate) {
	for range progressChan {
	}
}
