// Package cli holds the terminal presentation of parsum: execution banners,
// the progress spinner, the result table, shell completion scripts and the
// line-oriented interactive mode.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/agbru/parsum/internal/config"
	apperrors "github.com/agbru/parsum/internal/errors"
	"github.com/agbru/parsum/internal/format"
	"github.com/agbru/parsum/internal/generator"
	"github.com/agbru/parsum/internal/logging"
	"github.com/agbru/parsum/internal/orchestration"
	"github.com/agbru/parsum/internal/ui"
)

// REPLConfig holds the initial state of a REPL session.
type REPLConfig struct {
	Size         int
	Workers      []int
	Key          int
	Seed         uint64
	MaxValue     int
	Repeat       int
	Timeout      time.Duration
	ShortCircuit bool
	Details      bool
}

// REPL is an interactive session over one generated sequence. Changing the
// size or the seed regenerates the sequence; every other command reuses it.
type REPL struct {
	config REPLConfig
	seq    []int
	seed   uint64
	logger logging.Logger
	in     io.Reader
	out    io.Writer
}

// NewREPL creates a REPL. The sequence is generated lazily before the first
// command that needs it.
func NewREPL(cfg REPLConfig) *REPL {
	if cfg.Repeat < 1 {
		cfg.Repeat = 1
	}
	if cfg.MaxValue < 1 {
		cfg.MaxValue = config.DefaultMaxValue
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = config.DefaultTimeout
	}
	return &REPL{
		config: cfg,
		logger: logging.Nop(),
		in:     os.Stdin,
		out:    os.Stdout,
	}
}

// SetInput sets a custom input reader (useful for testing).
func (r *REPL) SetInput(in io.Reader) { r.in = in }

// SetOutput sets a custom output writer (useful for testing).
func (r *REPL) SetOutput(out io.Writer) { r.out = out }

// SetLogger sets the diagnostics logger.
func (r *REPL) SetLogger(l logging.Logger) { r.logger = l }

// Start runs the session until "exit", EOF or cancellation of ctx.
func (r *REPL) Start(ctx context.Context) {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)
	for {
		if ctx.Err() != nil {
			fmt.Fprintln(r.out, "\nInterrupted.")
			return
		}
		fmt.Fprint(r.out, ui.ColorGreen()+"parsum> "+ui.ColorReset())

		input, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && strings.TrimSpace(input) != "") {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(r.out, "\nGoodbye!")
				return
			}
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			return
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if !r.processCommand(ctx, input) {
			return
		}
	}
}

func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%s╔══════════════════════════════════════════════════════════╗%s\n", ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s║%s     %sParallel Sum & Search - Interactive Mode%s             %s║%s\n",
		ui.ColorCyan(), ui.ColorReset(), ui.ColorBold(), ui.ColorReset(), ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s╚══════════════════════════════════════════════════════════╝%s\n\n", ui.ColorCyan(), ui.ColorReset())
}

func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), ui.ColorReset())
	for _, c := range [][2]string{
		{"size <n>", "Set the array size and regenerate the sequence"},
		{"threads <w[,w..]>", "Set the number of threads (or a list for a sweep)"},
		{"key <k>", "Set the key for search"},
		{"seed <s>", "Set the generator seed and regenerate (0 = clock)"},
		{"regen", "Regenerate the sequence with a fresh seed"},
		{"sum", "Sequential and threaded sum"},
		{"search [k]", "Sequential and threaded search"},
		{"run", "Full benchmark with timing statistics"},
		{"status", "Display the current configuration"},
		{"help", "Display this help"},
		{"exit / quit", "Exit interactive mode"},
	} {
		fmt.Fprintf(r.out, "  %s%-18s%s - %s\n", ui.ColorYellow(), c[0], ui.ColorReset(), c[1])
	}
}

// processCommand executes one command line. Returns false if the REPL
// should exit.
func (r *REPL) processCommand(ctx context.Context, input string) bool {
	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "size", "n":
		r.cmdSize(args)
	case "threads", "t":
		r.cmdThreads(args)
	case "key", "k":
		r.cmdKey(args)
	case "seed":
		r.cmdSeed(args)
	case "regen":
		r.config.Seed = 0
		r.seq = nil
		r.ensureSequence()
	case "sum":
		r.cmdSum(ctx)
	case "search", "find":
		r.cmdSearch(ctx, args)
	case "run", "bench":
		r.cmdRun(ctx)
	case "status", "st":
		r.cmdStatus()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		return false
	default:
		fmt.Fprintf(r.out, "%sUnknown command: %s%s\n", ui.ColorRed(), cmd, ui.ColorReset())
		fmt.Fprintf(r.out, "Type %shelp%s to see available commands.\n", ui.ColorYellow(), ui.ColorReset())
	}
	return true
}

func (r *REPL) usage(text string) {
	fmt.Fprintf(r.out, "%sUsage: %s%s\n", ui.ColorRed(), text, ui.ColorReset())
}

func (r *REPL) invalid(value string, err error) {
	fmt.Fprintf(r.out, "%sInvalid value: %s (%v)%s\n", ui.ColorRed(), value, err, ui.ColorReset())
}

func (r *REPL) cmdSize(args []string) {
	if len(args) == 0 {
		r.usage("size <n>")
		return
	}
	n, err := strconv.Atoi(args[0])
	if err == nil && n < 0 {
		err = errors.New("must be non-negative")
	}
	if err != nil {
		r.invalid(args[0], err)
		return
	}
	r.config.Size = n
	r.seq = nil
	r.ensureSequence()
}

func (r *REPL) cmdThreads(args []string) {
	if len(args) == 0 {
		r.usage("threads <w[,w..]>")
		return
	}
	workers, err := config.ParseWorkerList(strings.Join(args, ""))
	if err != nil {
		r.invalid(strings.Join(args, " "), err)
		return
	}
	r.config.Workers = workers
	fmt.Fprintf(r.out, "Number of threads: %s%s%s\n", ui.ColorCyan(), joinInts(workers), ui.ColorReset())
}

func (r *REPL) cmdKey(args []string) {
	if len(args) == 0 {
		r.usage("key <k>")
		return
	}
	k, err := strconv.Atoi(args[0])
	if err != nil {
		r.invalid(args[0], err)
		return
	}
	r.config.Key = k
	fmt.Fprintf(r.out, "Key for search: %s%d%s\n", ui.ColorCyan(), k, ui.ColorReset())
}

func (r *REPL) cmdSeed(args []string) {
	if len(args) == 0 {
		r.usage("seed <s>")
		return
	}
	s, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		r.invalid(args[0], err)
		return
	}
	r.config.Seed = s
	r.seq = nil
	r.ensureSequence()
}

// ensureSequence generates the sequence if needed and reports it.
func (r *REPL) ensureSequence() bool {
	if r.seq != nil {
		return true
	}
	seed := r.config.Seed
	if seed == 0 {
		seed = generator.ClockSeed()
	}
	seq, err := generator.New(seed, r.config.MaxValue).Ints(r.config.Size)
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return false
	}
	r.seq, r.seed = seq, seed
	r.logger.Debug("sequence generated", logging.Int("size", len(seq)), logging.Uint64("seed", seed))
	fmt.Fprintf(r.out, "Generated %s%s%s values (seed %d).\n", ui.ColorCyan(), format.FormatNumber(len(seq)), ui.ColorReset(), seed)
	return true
}

// runSingle executes tasks once each without a progress display. Tasks not
// started before ctx is done carry the context error.
func (r *REPL) runSingle(ctx context.Context, tasks []orchestration.Task) []orchestration.BenchmarkResult {
	return orchestration.ExecuteBenchmarks(ctx, tasks, r.seq, 1,
		orchestration.NullProgressReporter{}, io.Discard, orchestration.WithLogger(r.logger))
}

// reportFailure prints the error of a task that did not complete. It returns
// false when the session was interrupted, so the caller stops listing results.
func (r *REPL) reportFailure(res orchestration.BenchmarkResult) bool {
	if apperrors.IsContextError(res.Err) {
		fmt.Fprintf(r.out, "%sInterrupted.%s\n", ui.ColorYellow(), ui.ColorReset())
		return false
	}
	fmt.Fprintf(r.out, "%s%s: %v%s\n", ui.ColorRed(), res.Name, res.Err, ui.ColorReset())
	return true
}

func (r *REPL) workers() []int {
	if len(r.config.Workers) == 0 {
		return []int{config.EstimateWorkerCount()}
	}
	return r.config.Workers
}

func (r *REPL) cmdSum(ctx context.Context) {
	if !r.ensureSequence() {
		return
	}
	tasks := []orchestration.Task{orchestration.NewSequentialSum()}
	for _, w := range r.workers() {
		tasks = append(tasks, orchestration.NewParallelSum(w))
	}
	for _, res := range r.runSingle(ctx, tasks) {
		if res.Err != nil {
			if !r.reportFailure(res) {
				return
			}
			continue
		}
		label := "Sequential Sum"
		if !res.IsBaseline() {
			label = fmt.Sprintf("Threaded Sum (%d threads)", res.Workers)
		}
		fmt.Fprintf(r.out, "%s: %s%d%s | Execution Time: %s\n",
			label, ui.ColorGreen(), res.Value.Sum, ui.ColorReset(), format.FormatSeconds(res.Stats.Mean))
	}
}

func (r *REPL) cmdSearch(ctx context.Context, args []string) {
	if len(args) > 0 {
		r.cmdKey(args)
	}
	if !r.ensureSequence() {
		return
	}
	key := r.config.Key
	tasks := []orchestration.Task{orchestration.NewSequentialSearch(key)}
	for _, w := range r.workers() {
		tasks = append(tasks, orchestration.NewParallelSearch(w, key, r.config.ShortCircuit))
	}
	for _, res := range r.runSingle(ctx, tasks) {
		if res.Err != nil {
			if !r.reportFailure(res) {
				return
			}
			continue
		}
		label := "Sequential Search"
		if !res.IsBaseline() {
			label = fmt.Sprintf("Threaded Search (%d threads)", res.Workers)
		}
		found := ui.ColorYellow() + "Not Found" + ui.ColorReset()
		if res.Value.Found {
			found = ui.ColorGreen() + "Found" + ui.ColorReset()
		}
		fmt.Fprintf(r.out, "%s for key %d: %s | Execution Time: %s\n",
			label, key, found, format.FormatSeconds(res.Stats.Mean))
	}
}

func (r *REPL) cmdRun(parent context.Context) {
	if !r.ensureSequence() {
		return
	}
	ctx, cancel := context.WithTimeout(parent, r.config.Timeout)
	defer cancel()

	cfg := config.AppConfig{
		Workers:      r.workers(),
		Key:          r.config.Key,
		Operation:    config.OpAll,
		ShortCircuit: r.config.ShortCircuit,
	}
	tasks := orchestration.BuildTasks(cfg)
	results := orchestration.ExecuteBenchmarks(ctx, tasks, r.seq, r.config.Repeat,
		CLIProgressReporter{}, r.out, orchestration.WithLogger(r.logger))

	presenter := CLIResultPresenter{}
	opts := orchestration.PresentationOptions{
		Size:    len(r.seq),
		Key:     r.config.Key,
		Seed:    r.seed,
		Details: r.config.Details,
	}
	orchestration.AnalyzeResults(results, opts, presenter, presenter, r.out)
	fmt.Fprintln(r.out)
}

func (r *REPL) cmdStatus() {
	fmt.Fprintf(r.out, "\n%sCurrent configuration:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Array size:     %s%s%s\n", ui.ColorCyan(), format.FormatNumber(r.config.Size), ui.ColorReset())
	fmt.Fprintf(r.out, "  Threads:        %s%s%s\n", ui.ColorCyan(), joinInts(r.workers()), ui.ColorReset())
	fmt.Fprintf(r.out, "  Key:            %s%d%s\n", ui.ColorCyan(), r.config.Key, ui.ColorReset())
	seed := "clock"
	if r.seq != nil {
		seed = strconv.FormatUint(r.seed, 10)
	} else if r.config.Seed != 0 {
		seed = strconv.FormatUint(r.config.Seed, 10)
	}
	fmt.Fprintf(r.out, "  Seed:           %s%s%s\n", ui.ColorCyan(), seed, ui.ColorReset())
	fmt.Fprintf(r.out, "  Repeat:         %s%d%s\n", ui.ColorCyan(), r.config.Repeat, ui.ColorReset())
	fmt.Fprintf(r.out, "  Short-circuit:  %s%t%s\n", ui.ColorCyan(), r.config.ShortCircuit, ui.ColorReset())
	fmt.Fprintln(r.out)
}

func joinInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.Itoa(x)
	}
	return strings.Join(parts, ",")
}
