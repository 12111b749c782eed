package ordering

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveBuiltinInt64(t *testing.T) {
	less, hash, encode, decode, ok := Resolve[int64](Descriptor{Tag: "int64"})
	require.True(t, ok)
	assert.True(t, less(1, 2))
	assert.False(t, less(2, 1))
	assert.Equal(t, hash(42), hash(42))

	data := encode([]int64{1, 2, 3})
	back, err := decode(data, 3)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, back)
}

func TestResolveBuiltinString(t *testing.T) {
	less, _, encode, decode, ok := Resolve[string](Descriptor{Tag: "string"})
	require.True(t, ok)
	assert.True(t, less("a", "b"))

	data := encode([]string{"hello", "", "world"})
	back, err := decode(data, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"hello", "", "world"}, back)
}

func TestResolveUnknownDescriptor(t *testing.T) {
	_, _, _, _, ok := Resolve[int64](Descriptor{Tag: "does-not-exist"})
	assert.False(t, ok)
}

func TestResolveWrongTypeForDescriptor(t *testing.T) {
	_, _, _, _, ok := Resolve[string](Descriptor{Tag: "int64"})
	assert.False(t, ok)
}

func TestFloat64TotalOrderIsStrictTotalOrder(t *testing.T) {
	values := []float64{
		math.Inf(-1), -1.5, math.Copysign(0, -1), 0.0, 1.5, math.Inf(1), math.NaN(),
	}
	for i := 0; i < len(values); i++ {
		for j := 0; j < len(values); j++ {
			if i == j {
				assert.False(t, Float64TotalOrderLess(values[i], values[j]))
				continue
			}
			a, b := Float64TotalOrderLess(values[i], values[j]), Float64TotalOrderLess(values[j], values[i])
			assert.True(t, a != b, "values %v and %v must compare one way or the other", values[i], values[j])
		}
	}
}
