package engine

import "context"

// SliceInput is a PartitionedInput backed by an in-memory [][]K, useful for
// tests and for callers that already have their data partitioned in
// memory. Production use is expected to supply its own PartitionedInput
// backed by the real distributed engine's partition reader.
type SliceInput[K any] struct {
	id         int64
	partitions [][]K
}

// NewSliceInput wraps partitions as a PartitionedInput identified by id.
// id should be stable across repeated construction of the same logical
// collection, since it seeds per-partition sampling (spec.md §4.2).
func NewSliceInput[K any](id int64, partitions [][]K) *SliceInput[K] {
	return &SliceInput[K]{id: id, partitions: partitions}
}

func (s *SliceInput[K]) ID() int64        { return s.id }
func (s *SliceInput[K]) NumPartitions() int { return len(s.partitions) }

func (s *SliceInput[K]) ReadPartition(ctx context.Context, idx int) ([]K, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.partitions[idx], nil
}
