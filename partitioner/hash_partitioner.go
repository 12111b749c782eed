package partitioner

import "github.com/rangepart/rangepart-go/ordering"

// HashPartitioner is the fallback C5 reaches for when no input already
// carries a reusable partitioner. It is the "distributed sampling primitive"
// domain's simplest partitioner: bucket = hash(key) mod n, computed on the
// unsigned 64-bit hash so the remainder is always in [0, n).
type HashPartitioner[K any] struct {
	n    int
	hash ordering.Hash[K]
}

// NewHashPartitioner builds a HashPartitioner with n buckets, using hash to
// digest keys. n must be >= 1.
func NewHashPartitioner[K any](n int, hash ordering.Hash[K]) *HashPartitioner[K] {
	if n < 1 {
		n = 1
	}
	return &HashPartitioner[K]{n: n, hash: hash}
}

// NumPartitions returns n.
func (h *HashPartitioner[K]) NumPartitions() int {
	return h.n
}

// BucketOf returns hash(key) mod n.
func (h *HashPartitioner[K]) BucketOf(key K) int {
	return int(h.hash(key) % uint64(h.n))
}
