package partition

import (
	"fmt"

	apperrors "github.com/agbru/parsum/internal/errors"
)

// Range is the half-open index interval [Start, End) assigned to one worker.
type Range struct {
	Start int
	End   int
}

// Len returns the number of indices covered by the range.
func (r Range) Len() int { return r.End - r.Start }

// Empty reports whether the range covers no index.
func (r Range) Empty() bool { return r.Start == r.End }

// String renders the range in interval notation, e.g. "[0, 2)".
func (r Range) String() string { return fmt.Sprintf("[%d, %d)", r.Start, r.End) }

// Split divides [0, n) into exactly workers contiguous ranges.
//
// The base length is n/workers; the last range receives base + n%workers.
// The returned ranges are contiguous, pairwise disjoint and cover [0, n).
//
// Parameters:
//   - n: The length of the sequence. Must be non-negative.
//   - workers: The number of ranges to produce. Must be at least 1.
//
// Returns:
//   - []Range: The ranges, in index order.
//   - error: An apperrors.InvalidArgumentError if workers < 1 or n < 0.
func Split(n, workers int) ([]Range, error) {
	if workers < 1 {
		return nil, apperrors.NewInvalidArgument("workers", workers, "must be at least 1")
	}
	if n < 0 {
		return nil, apperrors.NewInvalidArgument("n", n, "must be non-negative")
	}

	base := n / workers
	remainder := n % workers
	ranges := make([]Range, workers)
	for i := range ranges {
		start := i * base
		end := start + base
		if i == workers-1 {
			end += remainder
		}
		ranges[i] = Range{Start: start, End: end}
	}
	return ranges, nil
}

// Validate checks that ranges tile [0, n) exactly: the first starts at 0,
// each starts where its predecessor ends, none is inverted, and the last ends
// at n.
//
// Returns:
//   - error: A apperrors.WorkerFault naming the first offending range, or nil.
func Validate(ranges []Range, n int) error {
	next := 0
	for i, r := range ranges {
		if r.Start != next || r.End < r.Start || r.End > n {
			return apperrors.WorkerFault{
				Worker: i, Start: r.Start, End: r.End, Length: n,
				Cause: fmt.Errorf("expected range to start at %d within [0, %d]", next, n),
			}
		}
		next = r.End
	}
	if next != n {
		last := len(ranges) - 1
		fault := apperrors.WorkerFault{Worker: last, Length: n, Cause: fmt.Errorf("ranges cover [0, %d) instead of [0, %d)", next, n)}
		if last >= 0 {
			fault.Start, fault.End = ranges[last].Start, ranges[last].End
		}
		return fault
	}
	return nil
}
