package engine

import (
	"context"

	"github.com/rangepart/rangepart-go/internal/xrand"
)

// MapPartitionsCollect runs f once per partition of input via runner, in
// parallel, and returns the results tagged by partition index in ascending
// order — required so the skew decision in package rangepart is reproducible
// regardless of which partition's task happens to finish first (spec.md §5
// "Ordering"). This is the "distributed sampling primitive" spec.md §6
// names as a collaborator API.
func MapPartitionsCollect[K, R any](
	ctx context.Context,
	runner Runner,
	input PartitionedInput[K],
	f func(ctx context.Context, partitionIdx int, keys []K) (R, error),
) ([]PartitionResult[R], error) {
	n := input.NumPartitions()
	results := make([]R, n)

	err := runner.Run(ctx, n, func(ctx context.Context, idx int) error {
		keys, err := input.ReadPartition(ctx, idx)
		if err != nil {
			return err
		}
		v, err := f(ctx, idx, keys)
		if err != nil {
			return err
		}
		results[idx] = v
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := make([]PartitionResult[R], n)
	for i, v := range results {
		out[i] = PartitionResult[R]{PartitionIdx: i, Value: v}
	}
	return out, nil
}

// prunedView is a lazy derived PartitionedInput exposing only the source
// partitions keep accepts. It performs no data movement: ReadPartition
// forwards straight to the source partition it maps to (spec.md §9
// "Partition-pruning view").
type prunedView[K any] struct {
	source PartitionedInput[K]
	kept   []int // kept[i] is the source partition index of derived partition i
}

// PrunedView builds a view of input containing only the partitions for
// which keep(partitionIdx) is true, renumbered 0..len(kept)-1.
func PrunedView[K any](input PartitionedInput[K], keep func(partitionIdx int) bool) PartitionedInput[K] {
	kept := make([]int, 0, input.NumPartitions())
	for i := 0; i < input.NumPartitions(); i++ {
		if keep(i) {
			kept = append(kept, i)
		}
	}
	return &prunedView[K]{source: input, kept: kept}
}

func (v *prunedView[K]) ID() int64          { return v.source.ID() }
func (v *prunedView[K]) NumPartitions() int { return len(v.kept) }

// newPartitionRNG derives a per-partition PRNG from a base seed, using the
// same byteswap decorrelation idiom package sketch uses for its per-source-
// partition seeds (spec.md §4.2). idx is the partition's index within the
// view, so the same view and seed always give the same draw; adding or
// removing partitions from a pruned view renumbers the later ones and so
// changes their draws.
func newPartitionRNG(seed uint32, idx int) *xrand.Source {
	return xrand.New(xrand.Byteswap32(seed ^ uint32(idx)))
}

func (v *prunedView[K]) ReadPartition(ctx context.Context, idx int) ([]K, error) {
	return v.source.ReadPartition(ctx, v.kept[idx])
}

// BernoulliSample draws a uniform sample of view at the given fraction,
// seeded deterministically from seed. Each partition of view is scanned
// under its own derived seed so the sample is reproducible independent of
// task scheduling order; the results are concatenated in view-partition
// order, though re-sampling order does not affect correctness
// (spec.md §5 "Ordering"). This is the "fractional uniform sample" half of
// the partition-pruning primitive spec.md §6 names as a collaborator API.
func BernoulliSample[K any](ctx context.Context, runner Runner, view PartitionedInput[K], fraction float64, seed uint32) ([]K, error) {
	n := view.NumPartitions()
	perPartition := make([][]K, n)

	err := runner.Run(ctx, n, func(ctx context.Context, idx int) error {
		keys, err := view.ReadPartition(ctx, idx)
		if err != nil {
			return err
		}
		rng := newPartitionRNG(seed, idx)
		kept := make([]K, 0, len(keys))
		for _, k := range keys {
			if rng.Float64() < fraction {
				kept = append(kept, k)
			}
		}
		perPartition[idx] = kept // disjoint index per task, no synchronization needed
		return nil
	})
	if err != nil {
		return nil, err
	}

	total := 0
	for _, p := range perPartition {
		total += len(p)
	}
	out := make([]K, 0, total)
	for _, p := range perPartition {
		out = append(out, p...)
	}
	return out, nil
}
