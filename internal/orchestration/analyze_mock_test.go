package orchestration_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/golang/mock/gomock"

	apperrors "github.com/agbru/parsum/internal/errors"
	"github.com/agbru/parsum/internal/orchestration"
	"github.com/agbru/parsum/internal/orchestration/mocks"
)

func TestAnalyzeResults_PresenterInteraction(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	presenter := mocks.NewMockResultPresenter(ctrl)
	handler := mocks.NewMockErrorHandler(ctrl)

	results := []orchestration.BenchmarkResult{
		{Name: "sequential-sum", Operation: orchestration.OpSum, Value: orchestration.Value{Sum: 26}},
		{Name: "parallel-sum/3", Operation: orchestration.OpSum, Workers: 3, Value: orchestration.Value{Sum: 26}},
	}
	opts := orchestration.PresentationOptions{Size: 6, Details: true}
	var out bytes.Buffer

	gomock.InOrder(
		presenter.EXPECT().PresentComparisonTable(results, &out),
		presenter.EXPECT().PresentResult(results, opts, &out),
	)
	handler.EXPECT().HandleError(gomock.Any(), gomock.Any()).Times(0)

	if code := orchestration.AnalyzeResults(results, opts, presenter, handler, &out); code != apperrors.ExitSuccess {
		t.Errorf("expected success, got %d", code)
	}
	if !strings.Contains(out.String(), "Global Status: Success") {
		t.Errorf("missing success status in %q", out.String())
	}
}

func TestAnalyzeResults_AllFailedDelegatesToHandler(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	presenter := mocks.NewMockResultPresenter(ctrl)
	handler := mocks.NewMockErrorHandler(ctrl)

	first := errors.New("first")
	results := []orchestration.BenchmarkResult{
		{Name: "sequential-search", Operation: orchestration.OpSearch, Err: first},
		{Name: "parallel-search/2", Operation: orchestration.OpSearch, Workers: 2, Err: errors.New("second")},
	}

	presenter.EXPECT().PresentComparisonTable(results, gomock.Any())
	presenter.EXPECT().PresentResult(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	handler.EXPECT().HandleError(first, gomock.Any()).Return(apperrors.ExitErrorTimeout)

	if code := orchestration.AnalyzeResults(results, orchestration.PresentationOptions{}, presenter, handler, io.Discard); code != apperrors.ExitErrorTimeout {
		t.Errorf("expected the handler's exit code, got %d", code)
	}
}

func TestAnalyzeResults_QuietMismatchStillReported(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	presenter := mocks.NewMockResultPresenter(ctrl)
	handler := mocks.NewMockErrorHandler(ctrl)
	presenter.EXPECT().PresentComparisonTable(gomock.Any(), gomock.Any())

	results := []orchestration.BenchmarkResult{
		{Name: "sequential-sum", Operation: orchestration.OpSum, Value: orchestration.Value{Sum: 1}},
		{Name: "parallel-sum/2", Operation: orchestration.OpSum, Workers: 2, Value: orchestration.Value{Sum: 2}},
	}
	var out bytes.Buffer
	code := orchestration.AnalyzeResults(results, orchestration.PresentationOptions{Quiet: true}, presenter, handler, &out)
	if code != apperrors.ExitErrorMismatch {
		t.Errorf("expected mismatch exit code, got %d", code)
	}
	if !strings.Contains(out.String(), "parallel-sum/2 returned 2") {
		t.Errorf("mismatch message missing task detail: %q", out.String())
	}
}

func TestExecuteBenchmarks_ReporterLifecycle(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reporter := mocks.NewMockProgressReporter(ctrl)
	reporter.EXPECT().
		DisplayProgress(gomock.Any(), gomock.Any(), 2, gomock.Any()).
		Do(func(wg *sync.WaitGroup, ch <-chan orchestration.ProgressUpdate, _ int, _ io.Writer) {
			defer wg.Done()
			orchestration.DrainChannel(ch)
		})

	tasks := []orchestration.Task{orchestration.NewSequentialSum(), orchestration.NewParallelSum(2)}
	results := orchestration.ExecuteBenchmarks(context.Background(), tasks, []int{1, 2, 3}, 1, reporter, io.Discard)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
}
