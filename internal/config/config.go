// Package config defines the application configuration, its command-line
// flags, environment overrides and validation.
package config

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/agbru/parsum/internal/errors"
)

// EnvPrefix is prepended to every environment variable read by the
// configuration layer (e.g. PARSUM_SIZE).
const EnvPrefix = "PARSUM_"

// Operation selectors accepted by --op.
const (
	OpAll    = "all"
	OpSum    = "sum"
	OpSearch = "search"
)

// Defaults applied when neither a flag nor an environment variable is set.
const (
	DefaultSize     = 1_000_000
	DefaultKey      = 42
	DefaultMaxValue = 100
	DefaultRepeat   = 5
	DefaultTimeout  = 1 * time.Minute
)

// AppConfig aggregates the application's configuration parameters.
type AppConfig struct {
	// Size is the length of the generated sequence.
	Size int
	// Threads is the raw worker list as given on the command line or in the
	// environment, e.g. "4" or "1,2,4,8". Parsed into Workers.
	Threads string
	// Workers holds the worker counts to benchmark. Several values run a
	// scaling sweep. Empty until ApplyAdaptiveDefaults when Threads is unset.
	Workers []int
	// Key is the value searched for.
	Key int
	// Seed seeds the sequence generator. Zero means derive one from the clock.
	Seed uint64
	// MaxValue is the exclusive upper bound of generated values.
	MaxValue int
	// Repeat is the number of timed runs per benchmark task.
	Repeat int
	// Operation selects the benchmarked operations: "all", "sum" or "search".
	Operation string
	// ShortCircuit lets parallel search workers stop once the key is found.
	ShortCircuit bool
	// Timeout bounds the whole benchmark run.
	Timeout time.Duration
	// Quiet prints only machine-readable results.
	Quiet bool
	// Verbose prints the run configuration and memory statistics.
	Verbose bool
	// Details prints the per-partition breakdown of each parallel task.
	Details bool
	// Interactive starts the line-oriented REPL.
	Interactive bool
	// TUI starts the interactive terminal form.
	TUI bool
	// NoColor disables ANSI colors.
	NoColor bool
	// Metrics dumps the Prometheus exposition of the run at the end.
	Metrics bool
	// LogLevel sets the zerolog level for diagnostics on stderr.
	LogLevel string
	// Completion, when set, prints a shell completion script and exits.
	Completion string
	// OutputFile, when set, receives a plain-text report of the run.
	OutputFile string
}

// ParseConfig parses command-line arguments into an AppConfig, applying
// environment overrides for flags not set explicitly, then validates it.
//
// Parameters:
//   - programName: The program name used in usage output.
//   - args: The arguments, without the program name.
//   - errWriter: The writer receiving usage and error output.
//
// Returns:
//   - AppConfig: The parsed configuration.
//   - error: flag.ErrHelp when help was requested, or a parsing or
//     validation error.
func ParseConfig(programName string, args []string, errWriter io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	config := AppConfig{}
	fs.IntVar(&config.Size, "n", DefaultSize, "Length of the generated sequence.")
	fs.IntVar(&config.Size, "size", DefaultSize, "Length of the generated sequence (alias for -n).")
	fs.StringVar(&config.Threads, "t", "", "Worker count, or a comma-separated list for a sweep (default: number of CPUs).")
	fs.StringVar(&config.Threads, "threads", "", "Worker count or list (alias for -t).")
	fs.IntVar(&config.Key, "k", DefaultKey, "Key searched for.")
	fs.IntVar(&config.Key, "key", DefaultKey, "Key searched for (alias for -k).")
	fs.Uint64Var(&config.Seed, "seed", 0, "Generator seed (0 derives one from the clock).")
	fs.IntVar(&config.MaxValue, "max", DefaultMaxValue, "Exclusive upper bound of generated values.")
	fs.IntVar(&config.Repeat, "repeat", DefaultRepeat, "Timed runs per task.")
	fs.StringVar(&config.Operation, "op", OpAll, "Operations to benchmark: all, sum or search.")
	fs.BoolVar(&config.ShortCircuit, "short-circuit", false, "Stop parallel search workers once the key is found.")
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum duration of the whole run.")
	fs.BoolVar(&config.Quiet, "q", false, "Quiet mode: print only results.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Quiet mode (alias for -q).")
	fs.BoolVar(&config.Verbose, "v", false, "Verbose output.")
	fs.BoolVar(&config.Verbose, "verbose", false, "Verbose output (alias for -v).")
	fs.BoolVar(&config.Details, "d", false, "Show per-partition details.")
	fs.BoolVar(&config.Details, "details", false, "Show per-partition details (alias for -d).")
	fs.BoolVar(&config.Interactive, "i", false, "Start the interactive prompt.")
	fs.BoolVar(&config.Interactive, "interactive", false, "Start the interactive prompt (alias for -i).")
	fs.BoolVar(&config.TUI, "tui", false, "Start the terminal form.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output.")
	fs.BoolVar(&config.Metrics, "metrics", false, "Print Prometheus metrics of the run.")
	fs.StringVar(&config.LogLevel, "log-level", "warn", "Diagnostic log level: debug, info, warn, error, disabled.")
	fs.StringVar(&config.OutputFile, "o", "", "Write a report of the run to this file.")
	fs.StringVar(&config.OutputFile, "output", "", "Write a report of the run to this file (alias for -o).")
	fs.StringVar(&config.Completion, "completion", "", "Print a completion script: bash, zsh, fish or powershell.")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	applyEnvOverrides(&config, fs)

	if config.Threads != "" {
		workers, err := ParseWorkerList(config.Threads)
		if err != nil {
			fmt.Fprintf(errWriter, "Error: %v\n", err)
			return AppConfig{}, err
		}
		config.Workers = workers
	}

	if err := config.Validate(); err != nil {
		fmt.Fprintf(errWriter, "Error: %v\n", err)
		return AppConfig{}, apperrors.AsConfigError(err)
	}
	return config, nil
}

// ParseWorkerList parses "4" or "1,2,4,8" into worker counts. Every count
// must be at least 1; duplicates are kept in order.
func ParseWorkerList(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	workers := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		w, err := strconv.Atoi(p)
		if err != nil {
			return nil, apperrors.NewConfigError("invalid worker count %q in %q", p, s)
		}
		if w < 1 {
			return nil, apperrors.NewConfigError("worker count must be at least 1, got %d", w)
		}
		workers = append(workers, w)
	}
	return workers, nil
}

// Validate checks the semantic consistency of the configuration and returns
// an apperrors.ValidationError naming the first offending field.
func (c AppConfig) Validate() error {
	if c.Size < 0 {
		return invalidField("size", "sequence size must be non-negative, got %d", c.Size)
	}
	for _, w := range c.Workers {
		if w < 1 {
			return invalidField("threads", "worker count must be at least 1, got %d", w)
		}
	}
	if c.Repeat < 1 {
		return invalidField("repeat", "repeat must be at least 1, got %d", c.Repeat)
	}
	if c.MaxValue < 1 {
		return invalidField("max", "max value must be at least 1, got %d", c.MaxValue)
	}
	if c.Timeout <= 0 {
		return invalidField("timeout", "timeout must be positive, got %s", c.Timeout)
	}
	switch c.Operation {
	case OpAll, OpSum, OpSearch:
	default:
		return invalidField("op", "unknown operation %q (accepted values: all, sum, search)", c.Operation)
	}
	if c.Interactive && c.TUI {
		return invalidField("interactive", "--interactive and --tui are mutually exclusive")
	}
	return nil
}

func invalidField(field, format string, a ...any) error {
	return apperrors.ValidationError{Field: field, Message: fmt.Sprintf(format, a...)}
}

// IncludesSum reports whether the sum benchmarks are selected.
func (c AppConfig) IncludesSum() bool { return c.Operation == OpAll || c.Operation == OpSum }

// IncludesSearch reports whether the search benchmarks are selected.
func (c AppConfig) IncludesSearch() bool { return c.Operation == OpAll || c.Operation == OpSearch }
