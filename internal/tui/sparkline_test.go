package tui

import (
	"testing"
	"unicode/utf8"
)

func TestCPUHistory_PushAndLimit(t *testing.T) {
	h := newCPUHistory(3)
	for _, v := range []float64{10, 20, 30, 40} {
		h = h.Push(v)
	}
	if h.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", h.Len())
	}
	want := []float64{20, 30, 40}
	for i, v := range want {
		if h.samples[i] != v {
			t.Errorf("samples[%d] = %v, want %v", i, h.samples[i], v)
		}
	}
	if h.Last() != 40 {
		t.Errorf("Last() = %v, want 40", h.Last())
	}
}

func TestCPUHistory_CopiesDoNotShare(t *testing.T) {
	a := newCPUHistory(4).Push(1)
	b := a.Push(2)
	c := a.Push(3)
	if b.Last() != 2 || c.Last() != 3 {
		t.Errorf("copies share storage: b=%v c=%v", b.samples, c.samples)
	}
}

func TestCPUHistory_Empty(t *testing.T) {
	h := newCPUHistory(0)
	if h.Last() != 0 || h.Len() != 0 {
		t.Error("empty history must report zero")
	}
	h = h.Push(5).Push(6)
	if h.Len() != 1 || h.Last() != 6 {
		t.Errorf("limit 0 is clamped to 1: %v", h.samples)
	}
}

func TestRenderSparkline(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   string
	}{
		{"empty", nil, ""},
		{"all zero", []float64{0, 0}, "▁▁"},
		{"all max", []float64{100, 100}, "██"},
		{"clamped", []float64{-50, 150}, "▁█"},
		{"gradient", []float64{0, 50, 100}, "▁▄█"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RenderSparkline(tt.values)
			if got != tt.want {
				t.Errorf("RenderSparkline(%v) = %q, want %q", tt.values, got, tt.want)
			}
			if utf8.RuneCountInString(got) != len(tt.values) {
				t.Errorf("one rune per value expected")
			}
		})
	}
}
