package rangepart

import (
	"math"

	"github.com/rangepart/rangepart-go/internal/binomialproportionsbounds"
)

// BucketWeightEstimate reports a confidence interval on the number of
// input items a bucket is expected to receive, derived from the weighted
// candidate sample New collected on its way to choosing boundaries. This is
// a diagnostic supplement, not part of the partitioning contract: it answers
// "how full will bucket i be" without requiring a second pass over the
// input.
type BucketWeightEstimate struct {
	Bucket          int
	SampleSize      int
	LowerBoundItems uint64
	UpperBoundItems uint64
	PointEstimate   uint64
}

// defaultNumStdDevs matches the teacher sketch library's default confidence
// level for rank-error bounds (roughly a 95.4% two-sided interval).
const defaultNumStdDevs = 2.0

// EstimateBucketWeight reports a confidence interval on the number of input
// items bucket falls into, built from the weighted candidate sample taken
// during construction (internal/binomialproportionsbounds, adapted from the
// teacher sketch library's rank-error bounds). It returns an error if the
// partitioner was built with requestedPartitions <= 1 or an empty input, in
// which case no candidate sample exists.
func (r *RangePartitioner[K]) EstimateBucketWeight(bucket int) (BucketWeightEstimate, error) {
	if bucket < 0 || bucket >= r.numPartitions {
		return BucketWeightEstimate{}, invalidArgument("bucket %d out of range [0, %d)", bucket, r.numPartitions)
	}
	if r.candidates == nil {
		return BucketWeightEstimate{}, invalidArgument("no candidate sample available: partitioner was built with requestedPartitions <= 1 or an empty input")
	}

	n := uint64(len(r.candidates))
	var k uint64
	for _, c := range r.candidates {
		if r.BucketOf(c.Key) == bucket {
			k++
		}
	}

	lower, err := binomialproportionsbounds.ApproximateLowerBoundOnP(n, k, defaultNumStdDevs)
	if err != nil {
		return BucketWeightEstimate{}, upstreamFailure("computing lower confidence bound", err)
	}
	upper, err := binomialproportionsbounds.ApproximateUpperBoundOnP(n, k, defaultNumStdDevs)
	if err != nil {
		return BucketWeightEstimate{}, upstreamFailure("computing upper confidence bound", err)
	}

	total := float64(r.totalItems)
	return BucketWeightEstimate{
		Bucket:          bucket,
		SampleSize:      len(r.candidates),
		LowerBoundItems: uint64(math.Round(lower * total)),
		UpperBoundItems: uint64(math.Round(upper * total)),
		PointEstimate:   uint64(math.Round(float64(k) / float64(n) * total)),
	}, nil
}
