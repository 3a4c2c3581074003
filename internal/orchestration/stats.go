package orchestration

import (
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stats summarizes the repetitions of one task.
type Stats struct {
	Mean   time.Duration
	StdDev time.Duration
	Min    time.Duration
	Max    time.Duration
}

// ComputeStats derives Stats from the recorded durations. The standard
// deviation is the unbiased sample estimate and is zero below two samples.
func ComputeStats(durations []time.Duration) Stats {
	if len(durations) == 0 {
		return Stats{}
	}
	xs := make([]float64, len(durations))
	for i, d := range durations {
		xs[i] = float64(d)
	}
	s := Stats{
		Min: time.Duration(floats.Min(xs)),
		Max: time.Duration(floats.Max(xs)),
	}
	if len(xs) < 2 {
		s.Mean = durations[0]
		return s
	}
	mean, std := stat.MeanStdDev(xs, nil)
	s.Mean = time.Duration(mean)
	s.StdDev = time.Duration(std)
	return s
}

// applySpeedups sets Speedup on every successful result to the ratio of the
// mean duration of its operation's sequential baseline to its own mean.
// Baselines get 1. Results without a usable baseline keep 0.
func applySpeedups(results []BenchmarkResult) {
	baselines := make(map[string]time.Duration)
	for _, r := range results {
		if r.Workers == 0 && r.Err == nil && r.Stats.Mean > 0 {
			baselines[r.Operation] = r.Stats.Mean
		}
	}
	for i := range results {
		r := &results[i]
		base, ok := baselines[r.Operation]
		if !ok || r.Err != nil || r.Stats.Mean <= 0 {
			continue
		}
		r.Speedup = float64(base) / float64(r.Stats.Mean)
	}
}
