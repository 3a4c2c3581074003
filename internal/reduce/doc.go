// Package reduce implements fixed-partition parallel reduction and search
// over an immutable integer sequence, together with the sequential baselines
// they are measured against.
//
// Every parallel call follows the same three phases:
//
//  1. Dispatch: the sequence is split with partition.Split and one goroutine
//     is started per range.
//  2. Execute: each worker reads only its own range of the shared, read-only
//     sequence and writes only its own slot of a pre-sized partials slice.
//  3. Join & Combine: the caller waits on an errgroup barrier, then folds the
//     partials in partition order.
//
// No partial result is observable before the join completes, and no worker
// pool is kept between calls.
package reduce
