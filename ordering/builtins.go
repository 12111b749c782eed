package ordering

import (
	"encoding/binary"
	"fmt"
	"math"
	"unsafe"

	"github.com/twmb/murmur3"
)

// defaultHashSeed matches the fixed seed the teacher's item-sketch hashers
// use (common/item_sketch_*.go's defaultSerdeHashSeed) so two processes
// hashing the same key always agree without exchanging a seed.
const defaultHashSeed = 9001

func hashInt64(item int64) uint64 {
	var scratch [8]byte
	binary.LittleEndian.PutUint64(scratch[:], uint64(item))
	return murmur3.SeedSum64(defaultHashSeed, scratch[:])
}

func hashUint64(item uint64) uint64 {
	var scratch [8]byte
	binary.LittleEndian.PutUint64(scratch[:], item)
	return murmur3.SeedSum64(defaultHashSeed, scratch[:])
}

func hashFloat64(item float64) uint64 {
	var scratch [8]byte
	binary.LittleEndian.PutUint64(scratch[:], math.Float64bits(item))
	return murmur3.SeedSum64(defaultHashSeed, scratch[:])
}

func hashString(item string) uint64 {
	datum := unsafe.Slice(unsafe.StringData(item), len(item))
	return murmur3.SeedSum64(defaultHashSeed, datum)
}

// Float64TotalOrderLess orders float64 by the IEEE-754 total order rather
// than the IEEE-754 standard "<" (under which NaN compares false against
// everything, violating the strict total order the boundary chooser
// requires). It maps each float's bit pattern to an order-preserving
// uint64 key: for non-negative floats, flip the sign bit; for negative
// floats, flip every bit. This places -Inf..-0 below +0..+Inf and groups
// NaN bit patterns at the respective extremes of their sign, which is
// sufficient for partitioning purposes even though it does not reproduce
// the exact NaN-ordering clauses of IEEE 754-2008 §5.10.
func Float64TotalOrderLess(a, b float64) bool {
	return totalOrderKey(a) < totalOrderKey(b)
}

func totalOrderKey(f float64) uint64 {
	bits := math.Float64bits(f)
	if bits&(1<<63) != 0 {
		return ^bits
	}
	return bits | (1 << 63)
}

// --- fixed-width encodings, adapted from common/item_sketch_long.go and
// --- item_sketch_double.go (SerializeManyToSlice/DeserializeManyFromSlice)

func encodeInt64s(items []int64) []byte {
	buf := make([]byte, 8*len(items))
	for i, it := range items {
		binary.LittleEndian.PutUint64(buf[i*8:], uint64(it))
	}
	return buf
}

func decodeInt64s(data []byte, n int) ([]int64, error) {
	if len(data) < n*8 {
		return nil, fmt.Errorf("ordering: int64 payload too short: need %d bytes, have %d", n*8, len(data))
	}
	out := make([]int64, n)
	for i := range out {
		out[i] = int64(binary.LittleEndian.Uint64(data[i*8:]))
	}
	return out, nil
}

func encodeUint64s(items []uint64) []byte {
	buf := make([]byte, 8*len(items))
	for i, it := range items {
		binary.LittleEndian.PutUint64(buf[i*8:], it)
	}
	return buf
}

func decodeUint64s(data []byte, n int) ([]uint64, error) {
	if len(data) < n*8 {
		return nil, fmt.Errorf("ordering: uint64 payload too short: need %d bytes, have %d", n*8, len(data))
	}
	out := make([]uint64, n)
	for i := range out {
		out[i] = binary.LittleEndian.Uint64(data[i*8:])
	}
	return out, nil
}

func encodeFloat64s(items []float64) []byte {
	buf := make([]byte, 8*len(items))
	for i, it := range items {
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(it))
	}
	return buf
}

func decodeFloat64s(data []byte, n int) ([]float64, error) {
	if len(data) < n*8 {
		return nil, fmt.Errorf("ordering: float64 payload too short: need %d bytes, have %d", n*8, len(data))
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Float64frombits(binary.LittleEndian.Uint64(data[i*8:]))
	}
	return out, nil
}

// --- length-prefixed string encoding, adapted from
// --- common/item_sketch_string.go (SerializeManyToSlice/DeserializeManyFromSlice)

func encodeStrings(items []string) []byte {
	total := 0
	for _, s := range items {
		total += 4 + len(s)
	}
	buf := make([]byte, total)
	offset := 0
	for _, s := range items {
		binary.LittleEndian.PutUint32(buf[offset:], uint32(len(s)))
		offset += 4
		copy(buf[offset:], s)
		offset += len(s)
	}
	return buf
}

func decodeStrings(data []byte, n int) ([]string, error) {
	out := make([]string, n)
	offset := 0
	for i := 0; i < n; i++ {
		if offset+4 > len(data) {
			return nil, fmt.Errorf("ordering: string length prefix out of bounds at item %d", i)
		}
		strLen := int(binary.LittleEndian.Uint32(data[offset:]))
		offset += 4
		if offset+strLen > len(data) {
			return nil, fmt.Errorf("ordering: string payload out of bounds at item %d", i)
		}
		out[i] = string(data[offset : offset+strLen])
		offset += strLen
	}
	return out, nil
}
