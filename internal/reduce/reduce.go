package reduce

import (
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/parsum/internal/errors"
	"github.com/agbru/parsum/internal/partition"
)

// shortCircuitStride is the number of elements a short-circuiting search
// worker scans between two checks of the shared found flag.
const shortCircuitStride = 4096

// splitter produces the ranges handed to workers. Tests replace it to inject
// broken tilings.
var splitter = partition.Split

// Outcome is the joined result of a parallel call.
type Outcome[R any] struct {
	// Value is the combined result.
	Value R
	// Ranges are the partitions, in index order.
	Ranges []partition.Range
	// Partials holds one result per range; Partials[i] belongs to Ranges[i].
	Partials []R
}

// Sum returns the sum of seq computed by workers concurrent goroutines, one
// per partition. The result equals SequentialSum(seq) for every workers >= 1.
//
// Parameters:
//   - seq: The sequence to sum. It must not be modified during the call.
//   - workers: The number of partitions and goroutines. Must be at least 1.
//
// Returns:
//   - int: The total.
//   - error: An apperrors.InvalidArgumentError when workers < 1, or an
//     apperrors.WorkerFault if a worker observed a broken invariant.
func Sum(seq []int, workers int) (int, error) {
	out, err := SumPartials(seq, workers)
	if err != nil {
		return 0, err
	}
	return out.Value, nil
}

// SumPartials is Sum, additionally returning the partitions and the subtotal
// computed for each of them.
func SumPartials(seq []int, workers int) (Outcome[int], error) {
	return fold(seq, workers, 0, SequentialSum, func(acc, partial int) int {
		return acc + partial
	})
}

// Search reports whether key occurs in seq, scanning the partitions on
// workers concurrent goroutines and OR-ing their answers. Without options
// every worker scans its whole range, even after another one found the key.
//
// Parameters:
//   - seq: The sequence to scan. It must not be modified during the call.
//   - workers: The number of partitions and goroutines. Must be at least 1.
//   - key: The value to look for.
//   - opts: Optional tuning, see WithShortCircuit.
//
// Returns:
//   - bool: true iff key occurs at least once in seq.
//   - error: As for Sum.
func Search(seq []int, workers int, key int, opts ...Option) (bool, error) {
	out, err := SearchPartials(seq, workers, key, opts...)
	if err != nil {
		return false, err
	}
	return out.Value, nil
}

// SearchPartials is Search, additionally returning the partitions and the
// answer of each worker. With WithShortCircuit a worker that stopped early
// reports false for its range even if a later part of it holds the key.
func SearchPartials(seq []int, workers int, key int, opts ...Option) (Outcome[bool], error) {
	o := applyOptions(opts)
	or := func(acc, partial bool) bool { return acc || partial }

	if !o.shortCircuit {
		return fold(seq, workers, false, func(part []int) bool {
			return SequentialSearch(part, key)
		}, or)
	}

	var found atomic.Bool
	return fold(seq, workers, false, func(part []int) bool {
		return searchUntilFound(part, key, &found)
	}, or)
}

// searchUntilFound scans part in strides, giving up as soon as found is set
// by another worker.
func searchUntilFound(part []int, key int, found *atomic.Bool) bool {
	for lo := 0; lo < len(part); lo += shortCircuitStride {
		if found.Load() {
			return false
		}
		hi := min(lo+shortCircuitStride, len(part))
		if SequentialSearch(part[lo:hi], key) {
			found.Store(true)
			return true
		}
	}
	return false
}

// fold runs the dispatch, execute and join & combine phases shared by every
// parallel operation. A tiling with a gap or an overlap is rejected before any
// worker starts.
func fold[R any](seq []int, workers int, identity R, local func([]int) R, combine func(R, R) R) (Outcome[R], error) {
	ranges, err := splitter(len(seq), workers)
	if err != nil {
		return Outcome[R]{Value: identity}, err
	}
	if err := partition.Validate(ranges, len(seq)); err != nil {
		return Outcome[R]{Value: identity}, err
	}

	partials := make([]R, len(ranges))
	var g errgroup.Group
	for i, r := range ranges {
		idx, rng := i, r
		g.Go(func() error {
			return runWorker(seq, idx, rng, identity, local, &partials[idx])
		})
	}
	if err := g.Wait(); err != nil {
		return Outcome[R]{Value: identity}, err
	}

	value := identity
	for _, p := range partials {
		value = combine(value, p)
	}
	return Outcome[R]{Value: value, Ranges: ranges, Partials: partials}, nil
}

// runWorker computes one partial result into slot. r lies within seq; a panic
// in local is reported as a WorkerFault.
func runWorker[R any](seq []int, idx int, r partition.Range, identity R, local func([]int) R, slot *R) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = apperrors.WorkerFault{
				Worker: idx, Start: r.Start, End: r.End, Length: len(seq),
				Cause: fmt.Errorf("panic: %v", p),
			}
		}
	}()

	if r.Empty() {
		*slot = identity
		return nil
	}
	*slot = local(seq[r.Start:r.End])
	return nil
}
