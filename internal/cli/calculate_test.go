package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/agbru/parsum/internal/config"
	"github.com/agbru/parsum/internal/orchestration"
	"github.com/agbru/parsum/internal/sysmon"
	"github.com/agbru/parsum/internal/ui"
)

func TestPrintExecutionConfig(t *testing.T) {
	ui.SetCurrentTheme(ui.NoColorTheme)
	defer ui.SetCurrentTheme(ui.DarkTheme)

	var buf bytes.Buffer
	cfg := config.AppConfig{
		Size:     1_000_000,
		Key:      42,
		MaxValue: 100,
		Repeat:   5,
		Timeout:  time.Minute,
	}
	host := sysmon.HostInfo{LogicalCPUs: 8, GOMAXPROCS: 8, Arch: "amd64", Features: []string{"avx2"}}

	PrintExecutionConfig(cfg, 1234, host, &buf)

	output := buf.String()
	for _, want := range []string{"1,000,000", "seed 1234", "key 42", "8 logical processors", "CPU features: avx2"} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}

	buf.Reset()
	host.Features = nil
	PrintExecutionConfig(cfg, 1, host, &buf)
	if !strings.Contains(buf.String(), "none detected") {
		t.Errorf("expected placeholder for empty features:\n%s", buf.String())
	}
}

func TestPrintExecutionPlan(t *testing.T) {
	ui.SetCurrentTheme(ui.NoColorTheme)
	defer ui.SetCurrentTheme(ui.DarkTheme)

	var buf bytes.Buffer
	tasks := orchestration.BuildTasks(config.AppConfig{Operation: config.OpAll, Workers: []int{2, 4}})
	PrintExecutionPlan(tasks, &buf)

	output := buf.String()
	if !strings.Contains(output, "2 sequential baseline(s), 4 parallel task(s)") {
		t.Errorf("unexpected plan summary:\n%s", output)
	}
	if !strings.Contains(output, "parallel-search/4") {
		t.Errorf("plan should list every task:\n%s", output)
	}
}
