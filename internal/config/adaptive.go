package config

import "runtime"

// Worker count resolution chain (highest priority first):
//   1. CLI flags (-t, --threads)
//   2. Environment variable PARSUM_THREADS
//   3. Hardware estimation (this file)

// ApplyAdaptiveDefaults fills in the worker list from the hardware when the
// user did not provide one. An explicit list is left untouched.
func ApplyAdaptiveDefaults(cfg AppConfig) AppConfig {
	if len(cfg.Workers) == 0 {
		cfg.Workers = []int{EstimateWorkerCount()}
	}
	return cfg
}

// EstimateWorkerCount returns one worker per usable logical processor.
// Oversubscription is not worth it for a memory-bound scan, so the estimate
// never exceeds GOMAXPROCS.
func EstimateWorkerCount() int {
	n := runtime.GOMAXPROCS(0)
	if cpus := runtime.NumCPU(); cpus < n {
		n = cpus
	}
	if n < 1 {
		return 1
	}
	return n
}
