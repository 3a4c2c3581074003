// Package metrics collects benchmark measurements.
//
// Recorder exposes the run as Prometheus metrics on a private registry and can
// dump them in the text exposition format (--metrics). MemoryCollector takes
// runtime memory snapshots around the sequence allocation.
package metrics
