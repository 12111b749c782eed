package rangepart

import (
	"context"
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rangepart/rangepart-go/engine"
	"github.com/rangepart/rangepart-go/ordering"
)

func int64Params(id int64, partitions [][]int64, requested int, descending bool) Params[int64] {
	less, hash, encode, decode, _ := ordering.Resolve[int64](ordering.Descriptor{Tag: "int64"})
	return Params[int64]{
		RequestedPartitions: requested,
		Input:               engine.NewSliceInput(id, partitions),
		Runner:              engine.NewErrgroupRunner(),
		Descriptor:          ordering.Descriptor{Tag: "int64"},
		Less:                less,
		Hash:                hash,
		Encode:              encode,
		Decode:              decode,
		Descending:          descending,
	}
}

func uniformTenWayInput() [][]int64 {
	partitions := make([][]int64, 10)
	for p := 0; p < 10; p++ {
		part := make([]int64, 100)
		for i := 0; i < 100; i++ {
			part[i] = int64(p*100 + i + 1)
		}
		partitions[p] = part
	}
	return partitions
}

// S1: uniform keys 1..1000 over 10 source partitions, requestedPartitions=4.
func TestScenarioUniformFourWaySplit(t *testing.T) {
	p, err := New[int64](context.Background(), int64Params(1, uniformTenWayInput(), 4, false))
	require.NoError(t, err)

	assert.Len(t, p.Boundaries(), 3)
	assert.Equal(t, 4, p.NumPartitions())
	for i, want := range []int64{250, 500, 750} {
		assert.InDelta(t, want, p.Boundaries()[i], 20)
	}

	for k := int64(1); k <= 1000; k++ {
		expected := int((k - 1) * 4 / 1000)
		assert.InDelta(t, expected, p.BucketOf(k), 1, "key %d", k)
	}
}

// S2: empty input, requestedPartitions=8.
func TestScenarioEmptyInput(t *testing.T) {
	empty := make([][]int64, 5)
	p, err := New[int64](context.Background(), int64Params(2, empty, 8, false))
	require.NoError(t, err)

	assert.Empty(t, p.Boundaries())
	assert.Equal(t, 1, p.NumPartitions())
	assert.Equal(t, 0, p.BucketOf(123))
}

// S3: heavy skew — partition 0 holds 1e6 copies of "a", partitions 1-9 hold
// 100 keys each spanning "b".."z". requestedPartitions=3.
func TestScenarioHeavySkew(t *testing.T) {
	const skewedCount = 1_000_000
	partitions := make([][]string, 10)
	skewed := make([]string, skewedCount)
	for i := range skewed {
		skewed[i] = "a"
	}
	partitions[0] = skewed

	const letters = "bcdefghijklmnopqrstuvwxyz"
	for p := 1; p < 10; p++ {
		step := len(letters) / 9
		letter := string(letters[(p-1)*step])
		if p == 9 {
			letter = "z"
		}
		part := make([]string, 100)
		for i := range part {
			part[i] = letter
		}
		partitions[p] = part
	}

	less, hash, encode, decode, _ := ordering.Resolve[string](ordering.Descriptor{Tag: "string"})
	params := Params[string]{
		RequestedPartitions: 3,
		Input:               engine.NewSliceInput(int64(3), partitions),
		Runner:              engine.NewErrgroupRunner(),
		Descriptor:          ordering.Descriptor{Tag: "string"},
		Less:                less,
		Hash:                hash,
		Encode:              encode,
		Decode:              decode,
	}

	p, err := New[string](context.Background(), params)
	require.NoError(t, err)

	assert.Contains(t, []int{1, 2}, len(p.Boundaries()))
	assert.Equal(t, 0, p.BucketOf("a"))
	assert.Equal(t, p.NumPartitions()-1, p.BucketOf("z"))
}

// S4: descending mode, same input as S1.
func TestScenarioDescending(t *testing.T) {
	p, err := New[int64](context.Background(), int64Params(4, uniformTenWayInput(), 4, true))
	require.NoError(t, err)

	assert.Equal(t, 3, p.BucketOf(1))
	assert.Equal(t, 0, p.BucketOf(1000))

	prevBucket := -1
	for k := int64(1); k <= 1000; k += 50 {
		b := p.BucketOf(k)
		assert.GreaterOrEqual(t, b, 0)
		if prevBucket != -1 {
			assert.LessOrEqual(t, b, prevBucket)
		}
		prevBucket = b
	}
}

// S5: construct from S1's input, round-trip through ToBytes/FromBytes, and
// check equality and bucketOf agreement on a fresh RangePartitioner value.
func TestScenarioSerializationRoundTrip(t *testing.T) {
	original, err := New[int64](context.Background(), int64Params(5, uniformTenWayInput(), 4, false))
	require.NoError(t, err)

	data, err := original.ToBytes()
	require.NoError(t, err)

	rebuilt, err := FromBytes[int64](data)
	require.NoError(t, err)

	assert.True(t, original.Equal(rebuilt))
	for _, k := range []int64{1, 250, 251, 500, 750, 1000} {
		assert.Equal(t, original.BucketOf(k), rebuilt.BucketOf(k), "key %d", k)
	}
}

// S6: requestedPartitions=1.
func TestScenarioSinglePartitionRequested(t *testing.T) {
	p, err := New[int64](context.Background(), int64Params(6, uniformTenWayInput(), 1, false))
	require.NoError(t, err)

	assert.Empty(t, p.Boundaries())
	assert.Equal(t, 1, p.NumPartitions())
	assert.Equal(t, 0, p.BucketOf(999))
}

func TestNewRejectsNegativeRequestedPartitions(t *testing.T) {
	_, err := New[int64](context.Background(), int64Params(7, uniformTenWayInput(), -1, false))
	require.Error(t, err)
	var rpErr *Error
	require.ErrorAs(t, err, &rpErr)
	assert.Equal(t, InvalidArgument, rpErr.Kind)
}

func TestNewRequiresComparator(t *testing.T) {
	p := int64Params(8, uniformTenWayInput(), 4, false)
	p.Less = nil
	_, err := New[int64](context.Background(), p)
	require.Error(t, err)
	var rpErr *Error
	require.ErrorAs(t, err, &rpErr)
	assert.Equal(t, InvalidArgument, rpErr.Kind)
}

func TestZeroRequestedPartitionsYieldsZeroNumPartitions(t *testing.T) {
	p, err := New[int64](context.Background(), int64Params(9, uniformTenWayInput(), 0, false))
	require.NoError(t, err)
	assert.Equal(t, 0, p.NumPartitions())
}

func TestEqualRejectsDirectionMismatchAndIsReflexive(t *testing.T) {
	a, err := New[int64](context.Background(), int64Params(10, uniformTenWayInput(), 4, false))
	require.NoError(t, err)
	b, err := New[int64](context.Background(), int64Params(10, uniformTenWayInput(), 4, true))
	require.NoError(t, err)

	assert.False(t, a.Equal(b))
	assert.True(t, a.Equal(a))
}

func TestHashCodeConsistentWithEqual(t *testing.T) {
	a, err := New[int64](context.Background(), int64Params(11, uniformTenWayInput(), 4, false))
	require.NoError(t, err)
	b, err := New[int64](context.Background(), int64Params(11, uniformTenWayInput(), 4, false))
	require.NoError(t, err)

	require.True(t, a.Equal(b))
	assert.Equal(t, a.HashCode(), b.HashCode())
}

func TestBucketOfMonotonicAscending(t *testing.T) {
	p, err := New[int64](context.Background(), int64Params(12, uniformTenWayInput(), 4, false))
	require.NoError(t, err)

	prev := -1
	for k := int64(1); k <= 1000; k++ {
		b := p.BucketOf(k)
		assert.GreaterOrEqual(t, b, prev)
		prev = b
	}
}

func TestEstimateBucketWeightReturnsInterval(t *testing.T) {
	p, err := New[int64](context.Background(), int64Params(13, uniformTenWayInput(), 4, false))
	require.NoError(t, err)

	est, err := p.EstimateBucketWeight(0)
	require.NoError(t, err)
	assert.LessOrEqual(t, est.LowerBoundItems, est.PointEstimate)
	assert.LessOrEqual(t, est.PointEstimate, est.UpperBoundItems)
}

func TestEstimateBucketWeightRejectsOutOfRangeBucket(t *testing.T) {
	p, err := New[int64](context.Background(), int64Params(14, uniformTenWayInput(), 4, false))
	require.NoError(t, err)

	_, err = p.EstimateBucketWeight(p.NumPartitions())
	require.Error(t, err)
}

func TestEstimateBucketWeightErrorsWithoutCandidateSample(t *testing.T) {
	p, err := New[int64](context.Background(), int64Params(15, uniformTenWayInput(), 1, false))
	require.NoError(t, err)

	_, err = p.EstimateBucketWeight(0)
	require.Error(t, err)
}

func TestStringContainsPartitionCount(t *testing.T) {
	p, err := New[int64](context.Background(), int64Params(16, uniformTenWayInput(), 4, false))
	require.NoError(t, err)

	s := p.String()
	assert.Contains(t, s, strconv.Itoa(p.NumPartitions()))
}

func TestToBytesRejectsUnknownKeyEncoding(t *testing.T) {
	type opaque struct{ v int }
	p := &RangePartitioner[opaque]{
		descriptor: ordering.Descriptor{Tag: fmt.Sprintf("opaque-%d", 1)},
		less:       func(a, b opaque) bool { return a.v < b.v },
		boundaries: []opaque{{v: 1}},
	}
	_, err := p.ToBytes()
	require.Error(t, err)
	var rpErr *Error
	require.ErrorAs(t, err, &rpErr)
	assert.Equal(t, SerializationFailure, rpErr.Kind)
}
