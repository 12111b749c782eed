// Package rangepart implements C4, the range partitioner: it orchestrates
// the distributed sketch (package sketch) and the weighted boundary
// chooser (package boundary) — re-sampling skewed source partitions along
// the way — into an immutable boundary array, and answers bucket-of-key
// lookups against it in near-constant time.
package rangepart

import (
	"context"
	"math"

	"github.com/rangepart/rangepart-go/boundary"
	"github.com/rangepart/rangepart-go/engine"
	"github.com/rangepart/rangepart-go/internal/search"
	"github.com/rangepart/rangepart-go/internal/xrand"
	"github.com/rangepart/rangepart-go/ordering"
	"github.com/rangepart/rangepart-go/sketch"
)

// RangePartitioner is a read-only value once constructed: BucketOf is pure
// and safe to call concurrently from any number of goroutines without
// synchronization (spec.md §5).
type RangePartitioner[K any] struct {
	descriptor    ordering.Descriptor
	less          ordering.Less[K]
	hash          ordering.Hash[K]
	encode        ordering.Encode[K]
	decode        ordering.Decode[K]
	descending    bool
	boundaries    []K
	numPartitions int

	// candidates retains the weighted sample the boundary chooser ran
	// over, so EstimateBucketWeight can report a confidence interval
	// without a second sampling pass. Nil for partitioners built with
	// requestedPartitions <= 1 or an empty input.
	candidates []boundary.Candidate[K]
	totalItems uint64
}

// Params bundles the construction-time inputs to New: the requested
// partition count, the partitioned input collection, the execution
// primitive used to fan the sketch and re-sample passes out, and the key
// ordering (spec.md §4.4 "Construction").
type Params[K any] struct {
	RequestedPartitions int
	Input               engine.PartitionedInput[K]
	Runner              engine.Runner
	Descriptor          ordering.Descriptor
	Less                ordering.Less[K]
	Hash                ordering.Hash[K]
	Encode              ordering.Encode[K]
	Decode              ordering.Decode[K]
	Descending          bool
}

// New constructs a RangePartitioner per spec.md §4.4. Construction is
// coordinated on the caller's goroutine: it calls the distributed sketch
// (C2) and, if any source partition is skewed, a single re-sample pass over
// just those partitions, then hands the combined weighted candidates to the
// boundary chooser (C3).
func New[K any](ctx context.Context, p Params[K], opts ...Option) (*RangePartitioner[K], error) {
	if p.RequestedPartitions < 0 {
		return nil, invalidArgument("requestedPartitions must be >= 0, got %d", p.RequestedPartitions)
	}
	if p.Less == nil {
		return nil, invalidArgument("a comparator (Less) is required")
	}

	base := &RangePartitioner[K]{
		descriptor: p.Descriptor,
		less:       p.Less,
		hash:       p.Hash,
		encode:     p.Encode,
		decode:     p.Decode,
		descending: p.Descending,
	}

	if p.RequestedPartitions <= 1 {
		// spec.md §4.4: "If P ≤ 1: B ← empty; done." The empty-input
		// terminal case (numPartitions = 1 with empty B) and the
		// degenerate requestedPartitions = 0 case are resolved per
		// spec.md §9's recommended convention: requestedPartitions = 0
		// yields numPartitions = 0, and bucketOf on such a partitioner is
		// undefined behavior.
		base.numPartitions = p.RequestedPartitions
		return base, nil
	}

	cfg := NewConfig(opts...)

	sourcePartitions := 0
	if p.Input != nil {
		sourcePartitions = p.Input.NumPartitions()
	}
	if sourcePartitions == 0 {
		base.numPartitions = 1
		return base, nil
	}

	sampleSize := minU64(uint64(cfg.SampleSizeMultiplier)*uint64(p.RequestedPartitions), cfg.SampleSizeCap)
	numerator := float64(cfg.OverSampleFactor) * float64(sampleSize)
	sampleSizePerPartition := uint64(math.Ceil(numerator / float64(sourcePartitions)))
	if sampleSizePerPartition > math.MaxInt32 {
		sampleSizePerPartition = math.MaxInt32
	}

	sketchResult, err := sketch.Run(ctx, p.Runner, p.Input, int(sampleSizePerPartition))
	if err != nil {
		return nil, upstreamFailure("distributed sketch pass failed", err)
	}

	if sketchResult.TotalItems == 0 {
		base.numPartitions = 1
		return base, nil
	}

	fraction := math.Min(float64(sampleSize)/float64(maxU64(sketchResult.TotalItems, 1)), 1.0)

	var candidates []boundary.Candidate[K]
	var skewed []int
	for _, part := range sketchResult.Partitions {
		if fraction*float64(part.ItemsInPartition) > float64(sampleSizePerPartition) {
			skewed = append(skewed, part.PartitionIdx)
			continue
		}
		if len(part.Sample) == 0 {
			continue
		}
		weight := float32(part.ItemsInPartition) / float32(len(part.Sample))
		for _, k := range part.Sample {
			candidates = append(candidates, boundary.Candidate[K]{Key: k, Weight: weight})
		}
	}

	if len(skewed) > 0 {
		skewedSet := make(map[int]bool, len(skewed))
		for _, i := range skewed {
			skewedSet[i] = true
		}
		view := engine.PrunedView(p.Input, func(idx int) bool { return skewedSet[idx] })

		rddID := p.Input.ID()
		reseedSrc := -rddID - 1
		seed := xrand.Byteswap32(uint32(reseedSrc))

		resampled, err := engine.BernoulliSample(ctx, p.Runner, view, fraction, seed)
		if err != nil {
			return nil, upstreamFailure("skewed-partition re-sample pass failed", err)
		}
		weight := float32(1.0 / fraction)
		for _, k := range resampled {
			candidates = append(candidates, boundary.Candidate[K]{Key: k, Weight: weight})
		}
	}

	boundaries := boundary.Choose(candidates, p.RequestedPartitions, boundary.Less[K](p.Less))

	base.boundaries = boundaries
	base.numPartitions = len(boundaries) + 1
	base.candidates = candidates
	base.totalItems = sketchResult.TotalItems
	return base, nil
}

// NumPartitions returns |B| + 1, or 0 if the partitioner was constructed
// with requestedPartitions = 0 (spec.md §6).
func (r *RangePartitioner[K]) NumPartitions() int {
	return r.numPartitions
}

// Boundaries returns the partitioner's boundary array. The returned slice
// must not be modified; it is the partitioner's own immutable state.
func (r *RangePartitioner[K]) Boundaries() []K {
	return r.boundaries
}

// Descending reports whether bucket indices increase with decreasing key
// order.
func (r *RangePartitioner[K]) Descending() bool {
	return r.descending
}

// BucketOf maps key to a bucket index in [0, NumPartitions()), per the
// lookup rule of spec.md §4.4: a key equal to a boundary under the
// comparator always lands in the lower of the two adjacent buckets. Pure
// and safe for concurrent use.
func (r *RangePartitioner[K]) BucketOf(key K) int {
	l := len(r.boundaries)
	if l == 0 {
		return 0
	}
	a := search.CountLess(r.boundaries, key, search.Less[K](r.less))
	if r.descending {
		return l - a
	}
	return a
}

// Equal reports whether r and other have the same direction and
// element-wise-equal boundary arrays under the comparator (spec.md §4.4
// "Equality and hashing").
func (r *RangePartitioner[K]) Equal(other *RangePartitioner[K]) bool {
	if other == nil {
		return false
	}
	if r.descending != other.descending {
		return false
	}
	if len(r.boundaries) != len(other.boundaries) {
		return false
	}
	for i := range r.boundaries {
		a, b := r.boundaries[i], other.boundaries[i]
		if r.less(a, b) || r.less(b, a) {
			return false
		}
	}
	return true
}

// hashMixPrime is the fixed prime spec.md §4.4 says boundary hashes are
// mixed with. 1099511628211 is the FNV-1a 64-bit prime, already in scope
// for this codebase's hashing conventions (package ordering uses murmur3
// for per-key hashing; FNV mixing composes the per-boundary hashes into one
// partitioner-level hash without pulling in a second hashing dependency).
const hashMixPrime = 1099511628211
const fnvOffsetBasis = 14695981039346656037

// HashCode mixes every boundary's hash with a fixed prime and the direction
// flag, so a RangePartitioner can be used as a cache key (spec.md §4.4).
func (r *RangePartitioner[K]) HashCode() uint64 {
	h := uint64(fnvOffsetBasis)
	for _, b := range r.boundaries {
		h = (h ^ r.hash(b)) * hashMixPrime
	}
	direction := uint64(0)
	if r.descending {
		direction = 1
	}
	return (h ^ direction) * hashMixPrime
}

func minU64(a, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}

func maxU64(a, b uint64) uint64 {
	if a > b {
		return a
	}
	return b
}
