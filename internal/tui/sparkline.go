package tui

// sparklineChars maps levels 0..7 to Unicode block elements ▁▂▃▄▅▆▇█.
var sparklineChars = [8]rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// cpuHistory keeps the most recent CPU usage samples, oldest first.
type cpuHistory struct {
	samples []float64
	limit   int
}

func newCPUHistory(limit int) cpuHistory {
	if limit <= 0 {
		limit = 1
	}
	return cpuHistory{limit: limit}
}

// Push appends a sample, dropping the oldest once the limit is reached.
// The backing slice is copied so that model copies never share it.
func (h cpuHistory) Push(v float64) cpuHistory {
	next := make([]float64, 0, h.limit)
	start := 0
	if len(h.samples) >= h.limit {
		start = len(h.samples) - h.limit + 1
	}
	next = append(next, h.samples[start:]...)
	h.samples = append(next, v)
	return h
}

// Last returns the most recent sample, or 0 if empty.
func (h cpuHistory) Last() float64 {
	if len(h.samples) == 0 {
		return 0
	}
	return h.samples[len(h.samples)-1]
}

// Len returns the number of samples held.
func (h cpuHistory) Len() int { return len(h.samples) }

// RenderSparkline converts values (0..100) into a sparkline string.
func RenderSparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	runes := make([]rune, len(values))
	for i, v := range values {
		v = min(max(v, 0), 100)
		runes[i] = sparklineChars[min(int(v/100.0*7.0), 7)]
	}
	return string(runes)
}
