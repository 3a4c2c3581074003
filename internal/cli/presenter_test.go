package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	apperrors "github.com/agbru/parsum/internal/errors"
	"github.com/agbru/parsum/internal/orchestration"
	"github.com/agbru/parsum/internal/ui"
)

func TestPresentComparisonTable(t *testing.T) {
	ui.SetCurrentTheme(ui.NoColorTheme)
	defer ui.SetCurrentTheme(ui.DarkTheme)

	results := sampleResults()
	results = append(results, orchestration.BenchmarkResult{
		Name: "parallel-sum/8", Operation: orchestration.OpSum, Workers: 8, Err: errors.New("boom"),
	})

	var buf bytes.Buffer
	CLIResultPresenter{}.PresentComparisonTable(results, &buf)
	output := buf.String()

	for _, want := range []string{"Benchmark Summary", "Task", "Speedup", "parallel-sum/3", "4.00x", "✅ Success", "❌ Failure (boom)"} {
		if !strings.Contains(output, want) {
			t.Errorf("table missing %q:\n%s", want, output)
		}
	}

	lines := strings.Split(strings.TrimSpace(output), "\n")
	header := lines[1]
	row := lines[3]
	col := strings.Index(header, "Workers")
	if col < 0 || len(row) <= col || row[col] != '3' {
		t.Errorf("columns are not aligned:\n%s\n%s", header, row)
	}
}

func TestPresentComparisonTable_Quiet(t *testing.T) {
	var buf bytes.Buffer
	CLIResultPresenter{Quiet: true}.PresentComparisonTable(sampleResults(), &buf)
	if buf.Len() != 0 {
		t.Errorf("quiet presenter printed a table: %q", buf.String())
	}
}

func TestPresentResult_Quiet(t *testing.T) {
	var buf bytes.Buffer
	CLIResultPresenter{Quiet: true}.PresentResult(sampleResults(), orchestration.PresentationOptions{}, &buf)
	if got := buf.String(); got != "sum=26 found=true\n" {
		t.Errorf("quiet output = %q", got)
	}
}

func TestHandleError(t *testing.T) {
	ui.SetCurrentTheme(ui.NoColorTheme)
	defer ui.SetCurrentTheme(ui.DarkTheme)

	tests := []struct {
		err  error
		code int
	}{
		{context.DeadlineExceeded, apperrors.ExitErrorTimeout},
		{context.Canceled, apperrors.ExitErrorCanceled},
		{apperrors.NewInvalidArgument("workers", 0, "must be at least 1"), apperrors.ExitErrorConfig},
		{errors.New("other"), apperrors.ExitErrorGeneric},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		if got := (CLIResultPresenter{}).HandleError(tt.err, &buf); got != tt.code {
			t.Errorf("HandleError(%v) = %d, want %d", tt.err, got, tt.code)
		}
		if !strings.Contains(buf.String(), "Status:") {
			t.Errorf("HandleError(%v) printed %q", tt.err, buf.String())
		}
	}
}

func TestDisplayMemoryStats(t *testing.T) {
	var buf bytes.Buffer
	DisplayMemoryStats(8<<20, 9<<20, 3, &buf)
	if !strings.Contains(buf.String(), "8.0 MiB") || !strings.Contains(buf.String(), "GC cycles:           3") {
		t.Errorf("unexpected memory stats:\n%s", buf.String())
	}
}
