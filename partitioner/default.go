package partitioner

import (
	"sort"

	"github.com/rangepart/rangepart-go/ordering"
)

// Default implements spec.md §4.5: sort the inputs by descending partition
// count, reuse the first one's partitioner if it has one with more than
// zero buckets, otherwise fall back to a HashPartitioner sized by
// defaultParallelism (or, if that is zero, by the largest input's partition
// count). first/rest mirrors the teacher pack's variadic-with-one-required
// convention so the caller always supplies at least one input.
func Default[K any](defaultParallelism uint32, hash ordering.Hash[K], first Input[K], rest ...Input[K]) Partitioner[K] {
	inputs := make([]Input[K], 0, 1+len(rest))
	inputs = append(inputs, first)
	inputs = append(inputs, rest...)

	sort.SliceStable(inputs, func(i, j int) bool {
		return inputs[i].NumPartitions() > inputs[j].NumPartitions()
	})

	if p := inputs[0].Partitioner(); p != nil && p.NumPartitions() > 0 {
		return p
	}

	n := int(defaultParallelism)
	if n <= 0 {
		n = inputs[0].NumPartitions()
	}
	return NewHashPartitioner[K](n, hash)
}
