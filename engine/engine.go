// Package engine declares the two services the range partitioner consumes
// from the distributed execution engine (spec.md §1, §6) without owning
// them: a distributed sampling primitive that runs a function over every
// partition of an input and collects the per-partition results to one
// place, and a partition-pruning primitive that derives a view exposing
// only a chosen subset of source partitions, plus a fractional uniform
// sample over that view. Both the shuffle reader/writer and the real
// distributed engine are explicitly out of this module's scope
// (spec.md §1); this package only names the shape of what it borrows from
// them and ships one concrete in-process Runner (ErrgroupRunner, in
// runner.go) so the module is usable and testable standalone.
//
// Go methods cannot introduce type parameters beyond their receiver's, so
// the primitives that need a per-call result type (MapPartitionsCollect's
// R) are generic free functions built on top of a non-generic Runner,
// rather than generic interface methods — the same shape spec.md §6
// describes (mapPartitionsCollect(input, f) → [(u32, R)] is a function
// signature, not an object method).
package engine

import "context"

// PartitionedInput presents a partitioned collection of keys of type K. ID
// is a stable identifier for the collection, used to decorrelate
// per-partition sample seeds across distinct inputs (spec.md §4.2).
type PartitionedInput[K any] interface {
	ID() int64
	NumPartitions() int
	ReadPartition(ctx context.Context, idx int) ([]K, error)
}

// PartitionResult pairs a partition index with whatever a sampling function
// produced for that partition.
type PartitionResult[R any] struct {
	PartitionIdx int
	Value        R
}

// Runner executes n independent, index-addressed tasks. Implementations
// decide the concurrency model (in-process goroutines, a distributed job
// scheduler, ...); MapPartitionsCollect and BernoulliSample only depend on
// this narrow contract. If any task returns an error, Run cancels the
// remaining tasks via ctx and returns the first error; there is no
// partial-result fallback (spec.md §4.2, §7 UpstreamFailure).
type Runner interface {
	Run(ctx context.Context, n int, task func(ctx context.Context, idx int) error) error
}
