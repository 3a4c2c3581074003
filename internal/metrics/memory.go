package metrics

import "runtime"

// MemorySnapshot holds a point-in-time memory reading.
type MemorySnapshot struct {
	HeapAlloc   uint64 // bytes in use by application
	HeapSys     uint64 // bytes obtained from OS for heap
	Sys         uint64 // total bytes obtained from OS
	NumGC       uint32 // number of completed GC cycles
	TotalAlloc  uint64 // cumulative bytes allocated
	HeapObjects uint64 // number of allocated heap objects
}

// MemoryCollector reads runtime memory statistics.
type MemoryCollector struct{}

// NewMemoryCollector creates a new memory collector.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{}
}

// Snapshot reads current memory statistics.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:   m.HeapAlloc,
		HeapSys:     m.HeapSys,
		Sys:         m.Sys,
		NumGC:       m.NumGC,
		TotalAlloc:  m.TotalAlloc,
		HeapObjects: m.HeapObjects,
	}
}

// AllocatedSince returns the bytes allocated between before and after.
// TotalAlloc is monotonic, so the result is never negative.
func AllocatedSince(before, after MemorySnapshot) uint64 {
	if after.TotalAlloc < before.TotalAlloc {
		return 0
	}
	return after.TotalAlloc - before.TotalAlloc
}
