// Package sketch implements C2: applying the reservoir sampler (package
// reservoir) to every partition of a partitioned key collection in
// parallel via the distributed sampling primitive (package engine), and
// summing the per-partition counts into a total.
package sketch

import (
	"context"

	"github.com/rangepart/rangepart-go/engine"
	"github.com/rangepart/rangepart-go/internal/xrand"
	"github.com/rangepart/rangepart-go/reservoir"
)

// PartitionSketch is the per-partition triple spec.md §3 calls a "Sample
// record": the source partition index, the exact number of items it held,
// and a uniform sample of at most capPerPartition of them.
type PartitionSketch[K any] struct {
	PartitionIdx     int
	ItemsInPartition uint64
	Sample           []K
}

// Result is the output of a full distributed sketch pass: the exact total
// item count across every partition, and one PartitionSketch per source
// partition in ascending partition-index order.
type Result[K any] struct {
	TotalItems uint64
	Partitions []PartitionSketch[K]
}

// Seed derives the deterministic per-partition sample seed spec.md §4.2
// specifies: byteswap32(partitionIdx XOR (rddID << 16)). Folding the
// collection's id into the high bits and the partition index into the low
// bits, then byte-swapping, keeps seeds for adjacent partitions of the same
// collection from colliding with seeds for the same partition index of a
// different collection.
func Seed(partitionIdx int, rddID int64) uint32 {
	return xrand.Byteswap32(uint32(partitionIdx) ^ (uint32(rddID) << 16))
}

// Run applies reservoir sampling with cap capPerPartition to every
// partition of input, in parallel via runner, and sums the exact
// per-partition counts into a total. Returns an error if capPerPartition is
// negative (propagated from reservoir.NewSampler) or if the sampling
// primitive fails on any partition — a partial sketch is never returned
// (spec.md §4.2, §7 UpstreamFailure).
func Run[K any](ctx context.Context, runner engine.Runner, input engine.PartitionedInput[K], capPerPartition int) (Result[K], error) {
	rddID := input.ID()

	collected, err := engine.MapPartitionsCollect(ctx, runner, input,
		func(ctx context.Context, partitionIdx int, keys []K) (PartitionSketch[K], error) {
			s, err := reservoir.Sample(keys, capPerPartition, Seed(partitionIdx, rddID))
			if err != nil {
				return PartitionSketch[K]{}, err
			}
			return PartitionSketch[K]{
				PartitionIdx:     partitionIdx,
				ItemsInPartition: s.N,
				Sample:           s.Items,
			}, nil
		},
	)
	if err != nil {
		return Result[K]{}, err
	}

	var total uint64
	partitions := make([]PartitionSketch[K], len(collected))
	for i, c := range collected {
		total += c.Value.ItemsInPartition
		partitions[i] = c.Value
	}

	return Result[K]{TotalItems: total, Partitions: partitions}, nil
}
