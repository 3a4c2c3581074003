package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	apperrors "github.com/agbru/parsum/internal/errors"
	"github.com/agbru/parsum/internal/orchestration"
)

func TestResultRow(t *testing.T) {
	baseline := orchestration.BenchmarkResult{
		Name: "sequential-sum", Operation: orchestration.OpSum,
		Value:     orchestration.Value{Sum: 99},
		Durations: []time.Duration{2 * time.Millisecond},
		Stats:     orchestration.Stats{Mean: 2 * time.Millisecond},
	}
	got := resultRow(baseline)
	want := []string{"sequential-sum", "-", "99", "2.00ms", "0ns", "1.00x", "OK"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("cell %d = %q, want %q", i, got[i], want[i])
		}
	}

	failed := orchestration.BenchmarkResult{Name: "parallel-search/4", Operation: orchestration.OpSearch, Workers: 4, Err: errors.New("x")}
	got = resultRow(failed)
	if got[1] != "4" || got[2] != "-" || got[3] != "-" || got[5] != "-" || got[6] != "FAIL" {
		t.Errorf("failed row = %v", got)
	}
}

func TestRenderResultTable(t *testing.T) {
	results := []orchestration.BenchmarkResult{
		{Name: "sequential-search", Operation: orchestration.OpSearch, Value: orchestration.Value{Found: true}},
		{Name: "parallel-search/2", Operation: orchestration.OpSearch, Workers: 2, Value: orchestration.Value{Found: true}, Speedup: 0.5},
	}
	out := renderResultTable(results)
	for _, want := range []string{"Task", "Status", "sequential-search", "parallel-search/2", "true", "0.50x"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestStatusLine(t *testing.T) {
	tests := []struct {
		code    int
		partial bool
		want    string
	}{
		{apperrors.ExitSuccess, false, "match"},
		{apperrors.ExitSuccess, true, "Some tasks failed"},
		{apperrors.ExitErrorMismatch, false, "disagrees"},
		{apperrors.ExitErrorTimeout, false, "time limit"},
		{apperrors.ExitErrorCanceled, false, "canceled"},
		{apperrors.ExitErrorGeneric, false, "No task"},
	}
	for _, tt := range tests {
		if got := statusLine(tt.code, tt.partial); !strings.Contains(got, tt.want) {
			t.Errorf("statusLine(%d, %t) = %q, want it to contain %q", tt.code, tt.partial, got, tt.want)
		}
	}
}

func TestRenderProgressBar(t *testing.T) {
	tests := []struct {
		progress float64
		width    int
		filled   int
	}{
		{0, 10, 0},
		{0.5, 10, 5},
		{1, 10, 10},
		{1.5, 10, 10},
		{-1, 10, 0},
	}
	for _, tt := range tests {
		bar := renderProgressBar(tt.progress, tt.width)
		if n := strings.Count(bar, "█"); n != tt.filled {
			t.Errorf("renderProgressBar(%v, %d) has %d filled cells, want %d", tt.progress, tt.width, n, tt.filled)
		}
		if n := strings.Count(bar, "█") + strings.Count(bar, "░"); n != tt.width {
			t.Errorf("renderProgressBar(%v, %d) has %d cells", tt.progress, tt.width, n)
		}
	}
	if renderProgressBar(0.5, 0) != "" {
		t.Error("zero width must render nothing")
	}
}
