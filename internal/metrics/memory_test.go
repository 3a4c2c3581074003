package metrics

import "testing"

func TestMemoryCollector_Snapshot(t *testing.T) {
	t.Parallel()

	mc := NewMemoryCollector()
	snap := mc.Snapshot()

	if snap.HeapAlloc == 0 {
		t.Error("HeapAlloc should be > 0")
	}
	if snap.Sys == 0 {
		t.Error("Sys should be > 0")
	}
}

var sink []int

func TestMemoryCollector_AllocatedSince(t *testing.T) {
	t.Parallel()

	mc := NewMemoryCollector()
	before := mc.Snapshot()

	sink = make([]int, 1<<17) // 1 MiB on 64-bit platforms

	after := mc.Snapshot()
	if got := AllocatedSince(before, after); got < 1<<17 {
		t.Errorf("AllocatedSince = %d, want at least %d", got, 1<<17)
	}
	if got := AllocatedSince(after, before); got != 0 {
		t.Errorf("reversed snapshots should yield 0, got %d", got)
	}
}
