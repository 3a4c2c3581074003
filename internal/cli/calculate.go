package cli

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/agbru/parsum/internal/config"
	"github.com/agbru/parsum/internal/format"
	"github.com/agbru/parsum/internal/orchestration"
	"github.com/agbru/parsum/internal/sysmon"
	"github.com/agbru/parsum/internal/ui"
)

// PrintExecutionConfig displays the run parameters and the host description.
//
// Parameters:
//   - cfg: The application configuration.
//   - seed: The generator seed actually used (derived when cfg.Seed is 0).
//   - host: The host description from sysmon.Describe.
//   - out: The writer for standard output.
func PrintExecutionConfig(cfg config.AppConfig, seed uint64, host sysmon.HostInfo, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Sequence of %s%s%s values in [0, %d), seed %s%d%s, key %s%d%s.\n",
		ui.ColorCyan(), format.FormatNumber(cfg.Size), ui.ColorReset(), cfg.MaxValue,
		ui.ColorCyan(), seed, ui.ColorReset(),
		ui.ColorCyan(), cfg.Key, ui.ColorReset())
	fmt.Fprintf(out, "Timeout %s%s%s, %d timed runs per task.\n",
		ui.ColorYellow(), cfg.Timeout, ui.ColorReset(), cfg.Repeat)
	features := "none detected"
	if len(host.Features) > 0 {
		features = strings.Join(host.Features, " ")
	}
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, GOMAXPROCS=%d, %s, Go %s.\n",
		ui.ColorCyan(), host.LogicalCPUs, ui.ColorReset(), host.GOMAXPROCS, host.Arch, runtime.Version())
	fmt.Fprintf(out, "CPU features: %s.\n", features)
}

// PrintExecutionPlan lists the tasks about to run.
func PrintExecutionPlan(tasks []orchestration.Task, out io.Writer) {
	parallel := 0
	for _, t := range tasks {
		if t.Workers() > 0 {
			parallel++
		}
	}
	fmt.Fprintf(out, "Execution plan: %d sequential baseline(s), %d parallel task(s).\n", len(tasks)-parallel, parallel)
	for _, t := range tasks {
		fmt.Fprintf(out, "  - %s%s%s\n", ui.ColorBlue(), t.Name(), ui.ColorReset())
	}
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
