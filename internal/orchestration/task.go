package orchestration

import (
	"fmt"
	"strconv"

	"github.com/agbru/parsum/internal/config"
	"github.com/agbru/parsum/internal/partition"
	"github.com/agbru/parsum/internal/reduce"
)

// Operation names, shared with config.
const (
	OpSum    = config.OpSum
	OpSearch = config.OpSearch
)

// Value is the outcome of one task run. Only the fields of the task's
// operation are meaningful.
type Value struct {
	Sum   int
	Found bool

	// Ranges, Partials and Hits are only filled by parallel tasks.
	// Partials[i] is the subtotal of Ranges[i]; Hits[i] reports whether the
	// key was found in Ranges[i].
	Ranges   []partition.Range
	Partials []int
	Hits     []bool
	// StoppedEarly marks a short-circuit search, where a false Hits[i] only
	// means worker i saw no match before it gave up.
	StoppedEarly bool
}

// Equal reports whether v and o carry the same combined result. The
// per-partition breakdown is not compared.
func (v Value) Equal(o Value) bool {
	return v.Sum == o.Sum && v.Found == o.Found
}

// Format renders the combined result for the given operation.
func (v Value) Format(op string) string {
	if op == OpSearch {
		return strconv.FormatBool(v.Found)
	}
	return strconv.Itoa(v.Sum)
}

// Task is one benchmarkable computation over a fixed sequence.
type Task interface {
	// Name identifies the task in tables, logs and metric labels.
	Name() string
	// Operation is OpSum or OpSearch.
	Operation() string
	// Workers is the partition count, or 0 for a sequential baseline.
	Workers() int
	// Run computes the task's value over seq. seq is never modified.
	Run(seq []int) (Value, error)
}

type sequentialSum struct{}

func (sequentialSum) Name() string      { return "sequential-sum" }
func (sequentialSum) Operation() string { return OpSum }
func (sequentialSum) Workers() int      { return 0 }

func (sequentialSum) Run(seq []int) (Value, error) {
	return Value{Sum: reduce.SequentialSum(seq)}, nil
}

type parallelSum struct{ workers int }

func (t parallelSum) Name() string    { return fmt.Sprintf("parallel-sum/%d", t.workers) }
func (parallelSum) Operation() string { return OpSum }
func (t parallelSum) Workers() int    { return t.workers }

func (t parallelSum) Run(seq []int) (Value, error) {
	out, err := reduce.SumPartials(seq, t.workers)
	if err != nil {
		return Value{}, err
	}
	return Value{Sum: out.Value, Ranges: out.Ranges, Partials: out.Partials}, nil
}

type sequentialSearch struct{ key int }

func (sequentialSearch) Name() string      { return "sequential-search" }
func (sequentialSearch) Operation() string { return OpSearch }
func (sequentialSearch) Workers() int      { return 0 }

func (t sequentialSearch) Run(seq []int) (Value, error) {
	return Value{Found: reduce.SequentialSearch(seq, t.key)}, nil
}

type parallelSearch struct {
	workers      int
	key          int
	shortCircuit bool
}

func (t parallelSearch) Name() string {
	if t.shortCircuit {
		return fmt.Sprintf("parallel-search-sc/%d", t.workers)
	}
	return fmt.Sprintf("parallel-search/%d", t.workers)
}

func (parallelSearch) Operation() string { return OpSearch }
func (t parallelSearch) Workers() int    { return t.workers }

func (t parallelSearch) Run(seq []int) (Value, error) {
	var opts []reduce.Option
	if t.shortCircuit {
		opts = append(opts, reduce.WithShortCircuit())
	}
	out, err := reduce.SearchPartials(seq, t.workers, t.key, opts...)
	if err != nil {
		return Value{}, err
	}
	return Value{Found: out.Value, Ranges: out.Ranges, Hits: out.Partials, StoppedEarly: t.shortCircuit}, nil
}

// NewSequentialSum returns the sequential sum baseline.
func NewSequentialSum() Task { return sequentialSum{} }

// NewParallelSum returns a parallel sum over the given number of partitions.
func NewParallelSum(workers int) Task { return parallelSum{workers: workers} }

// NewSequentialSearch returns the sequential search baseline for key.
func NewSequentialSearch(key int) Task { return sequentialSearch{key: key} }

// NewParallelSearch returns a parallel search for key over the given number
// of partitions.
func NewParallelSearch(workers, key int, shortCircuit bool) Task {
	return parallelSearch{workers: workers, key: key, shortCircuit: shortCircuit}
}

// BuildTasks returns the tasks selected by cfg: for each operation, the
// sequential baseline first, then one parallel task per worker count in
// cfg.Workers, in the given order.
func BuildTasks(cfg config.AppConfig) []Task {
	var tasks []Task
	if cfg.IncludesSum() {
		tasks = append(tasks, NewSequentialSum())
		for _, w := range cfg.Workers {
			tasks = append(tasks, NewParallelSum(w))
		}
	}
	if cfg.IncludesSearch() {
		tasks = append(tasks, NewSequentialSearch(cfg.Key))
		for _, w := range cfg.Workers {
			tasks = append(tasks, NewParallelSearch(w, cfg.Key, cfg.ShortCircuit))
		}
	}
	return tasks
}
