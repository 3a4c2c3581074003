// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     Examples: [DisplayResult], [DisplayQuietResult], [DisplayProgress].
//
//   - Format* functions return a formatted string without performing I/O.
//     Examples: [FormatQuietResult].
//
//   - Write* functions write data to files on the filesystem.
//     Examples: [WriteReportToFile].

package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/agbru/parsum/internal/format"
	"github.com/agbru/parsum/internal/orchestration"
	"github.com/agbru/parsum/internal/ui"
)

// ReportHeader describes the run at the top of a written report.
type ReportHeader struct {
	Size     int
	Key      int
	Seed     uint64
	MaxValue int
	Repeat   int
}

// agreedValues returns the baseline value of each operation, falling back to
// the first successful parallel value when the baseline failed.
func agreedValues(results []orchestration.BenchmarkResult) map[string]orchestration.Value {
	values := make(map[string]orchestration.Value)
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		if _, seen := values[r.Operation]; !seen || r.IsBaseline() {
			values[r.Operation] = r.Value
		}
	}
	return values
}

// FormatQuietResult formats the results for scripts: "sum=<v>" and/or
// "found=<bool>" separated by a space, in that order.
func FormatQuietResult(results []orchestration.BenchmarkResult) string {
	values := agreedValues(results)
	var parts []string
	if v, ok := values[orchestration.OpSum]; ok {
		parts = append(parts, "sum="+v.Format(orchestration.OpSum))
	}
	if v, ok := values[orchestration.OpSearch]; ok {
		parts = append(parts, "found="+v.Format(orchestration.OpSearch))
	}
	return strings.Join(parts, " ")
}

// DisplayQuietResult writes FormatQuietResult followed by a newline.
func DisplayQuietResult(out io.Writer, results []orchestration.BenchmarkResult) {
	fmt.Fprintln(out, FormatQuietResult(results))
}

// DisplayResult prints the agreed value of each operation and, with
// opts.Details, the per-partition breakdown of the parallel tasks.
func DisplayResult(results []orchestration.BenchmarkResult, opts orchestration.PresentationOptions, out io.Writer) {
	values := agreedValues(results)
	fmt.Fprintf(out, "\n--- Results ---\n")
	if v, ok := values[orchestration.OpSum]; ok {
		fmt.Fprintf(out, "Sum: %s%s%s\n", ui.ColorBold(), format.FormatNumber(v.Sum), ui.ColorReset())
	}
	if v, ok := values[orchestration.OpSearch]; ok {
		if v.Found {
			fmt.Fprintf(out, "Key %d: %sfound%s in the sequence.\n", opts.Key, ui.ColorGreen(), ui.ColorReset())
		} else {
			fmt.Fprintf(out, "Key %d: %snot found%s in the sequence.\n", opts.Key, ui.ColorYellow(), ui.ColorReset())
		}
	}
	if opts.Details {
		for _, r := range results {
			if r.Err == nil && !r.IsBaseline() {
				DisplayPartitions(r, out)
			}
		}
	}
}

// DisplayPartitions prints one line per partition of a parallel result. A
// short-circuit search does not claim a miss for a worker that may have
// stopped before the end of its range.
func DisplayPartitions(r orchestration.BenchmarkResult, out io.Writer) {
	fmt.Fprintf(out, "\n%s%s%s partitions:\n", ui.ColorBold(), r.Name, ui.ColorReset())
	for i, rg := range r.Value.Ranges {
		var local string
		switch {
		case i < len(r.Value.Partials):
			local = "sum=" + format.FormatNumber(r.Value.Partials[i])
		case i < len(r.Value.Hits) && !r.Value.Hits[i] && r.Value.StoppedEarly:
			local = "no hit (may have stopped early)"
		case i < len(r.Value.Hits):
			local = fmt.Sprintf("found=%t", r.Value.Hits[i])
		}
		fmt.Fprintf(out, "  worker %-3d %-22s %8s elements   %s\n", i, rg.String(), format.FormatNumber(rg.Len()), local)
	}
}

// WriteReportToFile writes a plain-text report of the run to path, creating
// parent directories as needed.
//
// Parameters:
//   - path: The destination file. An empty path is a no-op.
//   - header: The run parameters.
//   - results: The benchmark results.
//
// Returns:
//   - error: An error if the file cannot be written.
func WriteReportToFile(path string, header ReportHeader, results []orchestration.BenchmarkResult) error {
	if path == "" {
		return nil
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	fmt.Fprintf(file, "# Parallel Reduction Benchmark Report\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Size: %d\n", header.Size)
	fmt.Fprintf(file, "# Values: [0, %d)\n", header.MaxValue)
	fmt.Fprintf(file, "# Seed: %d\n", header.Seed)
	fmt.Fprintf(file, "# Key: %d\n", header.Key)
	fmt.Fprintf(file, "# Repeat: %d\n", header.Repeat)
	fmt.Fprintf(file, "\n")
	fmt.Fprintf(file, "task\tworkers\tresult\tmean_seconds\tstddev_seconds\tmin_seconds\tspeedup\terror\n")
	for _, r := range results {
		result, errText := "", ""
		if r.Err != nil {
			errText = r.Err.Error()
		} else {
			result = r.Value.Format(r.Operation)
		}
		fmt.Fprintf(file, "%s\t%d\t%s\t%.9f\t%.9f\t%.9f\t%.3f\t%s\n",
			r.Name, r.Workers, result, r.Stats.Mean.Seconds(), r.Stats.StdDev.Seconds(), r.Stats.Min.Seconds(), r.Speedup, errText)
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
