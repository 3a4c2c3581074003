package orchestration

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.opentelemetry.io/otel/trace/noop"

	apperrors "github.com/agbru/parsum/internal/errors"
	"github.com/agbru/parsum/internal/metrics"
)

// stubTask is a Task whose behavior is supplied by the test.
type stubTask struct {
	name    string
	op      string
	workers int
	run     func(seq []int) (Value, error)
}

func (s *stubTask) Name() string      { return s.name }
func (s *stubTask) Operation() string { return s.op }
func (s *stubTask) Workers() int      { return s.workers }
func (s *stubTask) Run(seq []int) (Value, error) {
	if s.run != nil {
		return s.run(seq)
	}
	return Value{Sum: len(seq)}, nil
}

// stubPresenter records calls and implements ResultPresenter and ErrorHandler.
type stubPresenter struct {
	tableCalls  int
	resultCalls int
	handled     error
}

func (p *stubPresenter) PresentComparisonTable([]BenchmarkResult, io.Writer) { p.tableCalls++ }
func (p *stubPresenter) PresentResult([]BenchmarkResult, PresentationOptions, io.Writer) {
	p.resultCalls++
}
func (p *stubPresenter) HandleError(err error, _ io.Writer) int {
	p.handled = err
	return apperrors.ExitErrorGeneric
}

func TestExecuteBenchmarks(t *testing.T) {
	t.Parallel()

	seq := []int{3, 7, 2, 9, 4, 1}
	tasks := []Task{
		NewSequentialSum(),
		NewParallelSum(3),
		NewSequentialSearch(9),
		NewParallelSearch(3, 9, false),
	}
	results := ExecuteBenchmarks(context.Background(), tasks, seq, 3, NullProgressReporter{}, io.Discard)

	if len(results) != len(tasks) {
		t.Fatalf("expected %d results, got %d", len(tasks), len(results))
	}
	for i, r := range results {
		if r.Err != nil {
			t.Fatalf("%s: unexpected error: %v", r.Name, r.Err)
		}
		if r.Name != tasks[i].Name() {
			t.Errorf("result %d is %q, want %q", i, r.Name, tasks[i].Name())
		}
		if len(r.Durations) != 3 {
			t.Errorf("%s: expected 3 durations, got %d", r.Name, len(r.Durations))
		}
	}
	if results[0].Value.Sum != 26 || results[1].Value.Sum != 26 {
		t.Errorf("sums = %d, %d; want 26", results[0].Value.Sum, results[1].Value.Sum)
	}
	if got := results[1].Value.Partials; len(got) != 3 || got[0] != 10 || got[1] != 11 || got[2] != 5 {
		t.Errorf("partials = %v, want [10 11 5]", got)
	}
	if !results[2].Value.Found || !results[3].Value.Found {
		t.Error("expected key 9 to be found")
	}
	if results[0].Stats.Mean > 0 && results[0].Speedup != 1 {
		t.Errorf("baseline speedup = %f, want 1", results[0].Speedup)
	}
}

func TestExecuteBenchmarks_RepeatBelowOne(t *testing.T) {
	t.Parallel()
	results := ExecuteBenchmarks(context.Background(), []Task{NewSequentialSum()}, []int{1}, 0, NullProgressReporter{}, io.Discard)
	if len(results[0].Durations) != 1 {
		t.Errorf("expected a single run, got %d", len(results[0].Durations))
	}
}

func TestExecuteBenchmarks_TaskError(t *testing.T) {
	t.Parallel()

	calls := 0
	failing := &stubTask{name: "failing", op: OpSum, workers: 2, run: func([]int) (Value, error) {
		calls++
		if calls == 2 {
			return Value{}, errors.New("boom")
		}
		return Value{Sum: 1}, nil
	}}
	results := ExecuteBenchmarks(context.Background(), []Task{failing}, nil, 5, NullProgressReporter{}, io.Discard)

	r := results[0]
	var be apperrors.BenchmarkError
	if !errors.As(r.Err, &be) || be.Task != "failing" {
		t.Fatalf("expected BenchmarkError for task failing, got %v", r.Err)
	}
	if calls != 2 {
		t.Errorf("expected execution to stop after the failure, got %d calls", calls)
	}
	if len(r.Durations) != 1 || r.Value.Sum != 1 {
		t.Errorf("completed run must be kept: durations=%d value=%d", len(r.Durations), r.Value.Sum)
	}
}

func TestExecuteBenchmarks_UnstableResult(t *testing.T) {
	t.Parallel()

	n := 0
	flaky := &stubTask{name: "flaky", op: OpSum, workers: 2, run: func([]int) (Value, error) {
		n++
		return Value{Sum: n}, nil
	}}
	results := ExecuteBenchmarks(context.Background(), []Task{flaky}, nil, 3, NullProgressReporter{}, io.Discard)
	if results[0].Err == nil {
		t.Fatal("expected an error for a task whose result changes between runs")
	}
}

func TestExecuteBenchmarks_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := ExecuteBenchmarks(ctx, []Task{NewSequentialSum(), NewParallelSum(2)}, []int{1, 2, 3}, 2, NullProgressReporter{}, io.Discard)
	for _, r := range results {
		if !errors.Is(r.Err, context.Canceled) {
			t.Errorf("%s: expected context.Canceled, got %v", r.Name, r.Err)
		}
		if len(r.Durations) != 0 {
			t.Errorf("%s: no run should start after cancellation", r.Name)
		}
	}
}

func TestExecuteBenchmarks_CancelBetweenRepeats(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	task := &stubTask{name: "cancels", op: OpSum, workers: 1, run: func([]int) (Value, error) {
		cancel()
		return Value{Sum: 7}, nil
	}}
	results := ExecuteBenchmarks(ctx, []Task{task}, nil, 4, NullProgressReporter{}, io.Discard)

	r := results[0]
	if len(r.Durations) != 1 || r.Value.Sum != 7 {
		t.Errorf("the in-flight run must complete: durations=%d value=%d", len(r.Durations), r.Value.Sum)
	}
	if !apperrors.IsContextError(r.Err) {
		t.Errorf("expected a context error, got %v", r.Err)
	}
}

func TestExecuteBenchmarks_ProgressUpdates(t *testing.T) {
	t.Parallel()

	var (
		mu      sync.Mutex
		updates []ProgressUpdate
		numSeen int
	)
	reporter := ProgressReporterFunc(func(wg *sync.WaitGroup, ch <-chan ProgressUpdate, n int, _ io.Writer) {
		defer wg.Done()
		numSeen = n
		for u := range ch {
			mu.Lock()
			updates = append(updates, u)
			mu.Unlock()
		}
	})

	ExecuteBenchmarks(context.Background(), []Task{NewSequentialSum(), NewParallelSum(2)}, []int{1, 2}, 2, reporter, io.Discard)

	if numSeen != 2 {
		t.Errorf("reporter saw %d tasks, want 2", numSeen)
	}
	if len(updates) != 4 {
		t.Fatalf("expected 4 updates, got %d", len(updates))
	}
	last := updates[len(updates)-1]
	if last.TaskIndex != 1 || last.Value != 1 {
		t.Errorf("last update = %+v, want task 1 complete", last)
	}
}

func TestExecuteBenchmarks_RecorderAndTracer(t *testing.T) {
	t.Parallel()

	rec := metrics.NewRecorder(false)
	tracer := noop.NewTracerProvider().Tracer("test")
	ExecuteBenchmarks(context.Background(), []Task{NewSequentialSum(), NewParallelSum(4)}, make([]int, 100), 2,
		NullProgressReporter{}, io.Discard, WithRecorder(rec), WithTracer(tracer))

	got, err := testutil.GatherAndCount(rec.Registry(), "parsum_task_runs_total")
	if err != nil {
		t.Fatal(err)
	}
	if got != 2 {
		t.Errorf("expected 2 run counters, got %d", got)
	}
	got, err = testutil.GatherAndCount(rec.Registry(), "parsum_sequence_length")
	if err != nil {
		t.Fatal(err)
	}
	if got != 1 {
		t.Errorf("expected the sequence length gauge, got %d series", got)
	}
}

func TestAnalyzeResults(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name           string
		results        []BenchmarkResult
		expectedStatus int
		expectHandled  bool
	}{
		{
			name: "All success",
			results: []BenchmarkResult{
				{Name: "sequential-sum", Operation: OpSum, Value: Value{Sum: 26}},
				{Name: "parallel-sum/3", Operation: OpSum, Workers: 3, Value: Value{Sum: 26}},
				{Name: "sequential-search", Operation: OpSearch, Value: Value{Found: true}},
				{Name: "parallel-search/3", Operation: OpSearch, Workers: 3, Value: Value{Found: true}},
			},
			expectedStatus: apperrors.ExitSuccess,
		},
		{
			name: "Sum mismatch",
			results: []BenchmarkResult{
				{Name: "sequential-sum", Operation: OpSum, Value: Value{Sum: 26}},
				{Name: "parallel-sum/3", Operation: OpSum, Workers: 3, Value: Value{Sum: 25}},
			},
			expectedStatus: apperrors.ExitErrorMismatch,
		},
		{
			name: "Search mismatch",
			results: []BenchmarkResult{
				{Name: "sequential-search", Operation: OpSearch, Value: Value{Found: false}},
				{Name: "parallel-search/2", Operation: OpSearch, Workers: 2, Value: Value{Found: true}},
			},
			expectedStatus: apperrors.ExitErrorMismatch,
		},
		{
			name: "All failure",
			results: []BenchmarkResult{
				{Name: "sequential-sum", Operation: OpSum, Err: errors.New("fail")},
				{Name: "parallel-sum/2", Operation: OpSum, Workers: 2, Err: errors.New("fail")},
			},
			expectedStatus: apperrors.ExitErrorGeneric,
			expectHandled:  true,
		},
		{
			name: "Mixed success/failure",
			results: []BenchmarkResult{
				{Name: "sequential-sum", Operation: OpSum, Value: Value{Sum: 5}},
				{Name: "parallel-sum/2", Operation: OpSum, Workers: 2, Err: errors.New("fail")},
			},
			expectedStatus: apperrors.ExitSuccess,
		},
		{
			name: "Parallel without baseline",
			results: []BenchmarkResult{
				{Name: "sequential-sum", Operation: OpSum, Err: errors.New("fail")},
				{Name: "parallel-sum/2", Operation: OpSum, Workers: 2, Value: Value{Sum: 5}},
			},
			expectedStatus: apperrors.ExitSuccess,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := &stubPresenter{}
			status := AnalyzeResults(tt.results, PresentationOptions{}, p, p, io.Discard)
			if status != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, status)
			}
			if p.tableCalls != 1 {
				t.Errorf("expected the table to be presented once, got %d", p.tableCalls)
			}
			if (p.handled != nil) != tt.expectHandled {
				t.Errorf("error handler called = %v, want %v", p.handled != nil, tt.expectHandled)
			}
			wantResult := 0
			if tt.expectedStatus == apperrors.ExitSuccess {
				wantResult = 1
			}
			if p.resultCalls != wantResult {
				t.Errorf("PresentResult called %d times, want %d", p.resultCalls, wantResult)
			}
		})
	}
}

func TestApplySpeedups(t *testing.T) {
	t.Parallel()
	results := []BenchmarkResult{
		{Operation: OpSum, Stats: Stats{Mean: 8 * time.Millisecond}},
		{Operation: OpSum, Workers: 4, Stats: Stats{Mean: 2 * time.Millisecond}},
		{Operation: OpSearch, Workers: 4, Stats: Stats{Mean: time.Millisecond}},
		{Operation: OpSum, Workers: 2, Err: errors.New("fail")},
	}
	applySpeedups(results)
	if results[0].Speedup != 1 || results[1].Speedup != 4 {
		t.Errorf("speedups = %f, %f; want 1, 4", results[0].Speedup, results[1].Speedup)
	}
	if results[2].Speedup != 0 || results[3].Speedup != 0 {
		t.Error("results without a usable baseline must keep a zero speedup")
	}
}
