// Package partition splits a sequence of length n into contiguous half-open
// index ranges, one per worker.
//
// Every range except the last has length n/workers; the last range absorbs
// the remainder n%workers. When workers exceeds n the leading ranges are
// empty, which is valid: a worker assigned an empty range returns the
// identity of its reduction.
package partition
