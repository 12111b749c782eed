// Package ordering implements the transferable-comparator design the range
// partitioner needs to cross a network boundary: rather than serializing an
// arbitrary closure, a partitioner carries a small tagged Descriptor naming
// a built-in or registered total order, and rebuilds the comparator,
// hasher, and byte encoding from the Descriptor on the receiving side via
// Resolve.
//
// The pattern is adapted from the teacher sketch library's per-type
// comparator/hasher/serde triples (common/item_sketch_long.go,
// item_sketch_double.go, item_sketch_string.go in apache/datasketches-go),
// generalized from "one struct per concrete type" into a name-keyed registry
// so new key types can register an ordering without the range partitioner
// package knowing about them.
package ordering

import "fmt"

// Less reports whether a sorts strictly before b under some total order.
// Matches the shape of the teacher's common.CompareFn[C].
type Less[K any] func(a, b K) bool

// Hash returns a 64-bit digest of item, consistent with Less: equal items
// (neither less than the other) must hash identically.
type Hash[K any] func(item K) uint64

// Encode serializes a slice of K to bytes, in the same whole-slice shape as
// the teacher's ItemSketch*SerDe.SerializeManyToSlice.
type Encode[K any] func(items []K) []byte

// Decode is the inverse of Encode, reading exactly n items starting at
// data's beginning.
type Decode[K any] func(data []byte, n int) ([]K, error)

// Descriptor names a total order that can be rebuilt on any node without
// transferring a closure. Built-in orderings set only Tag; user-defined
// orderings additionally set RegistryID, which both sides must have
// registered identically before deserializing.
type Descriptor struct {
	Tag        string
	RegistryID string
}

func (d Descriptor) String() string {
	if d.RegistryID == "" {
		return d.Tag
	}
	return fmt.Sprintf("%s/%s", d.Tag, d.RegistryID)
}

// key combines Tag and RegistryID into the registry's lookup key.
func (d Descriptor) key() string {
	return d.Tag + "\x00" + d.RegistryID
}

type entry struct {
	less   any
	hash   any
	encode any
	decode any
}

var registry = make(map[string]entry)

// Register makes an ordering for type K resolvable by every node that
// imports this package and calls Register with the same descriptor before
// any call to Resolve. Built-in orderings (int64, uint64, float64, string)
// are registered in init() below; callers with a user-defined key type
// register their own ordering under a RegistryID unique to their domain.
func Register[K any](d Descriptor, less Less[K], hash Hash[K], encode Encode[K], decode Decode[K]) {
	registry[d.key()] = entry{less: less, hash: hash, encode: encode, decode: decode}
}

// Resolve rebuilds the comparator, hasher, and byte encoding for d. ok is
// false if nothing was registered under d for type K — either the
// descriptor is unknown, or it was registered for a different concrete
// type (spec.md §7 SerializationFailure surfaces this to the caller).
func Resolve[K any](d Descriptor) (less Less[K], hash Hash[K], encode Encode[K], decode Decode[K], ok bool) {
	e, found := registry[d.key()]
	if !found {
		return nil, nil, nil, nil, false
	}
	less, lok := e.less.(Less[K])
	hash, hok := e.hash.(Hash[K])
	encode, eok := e.encode.(Encode[K])
	decode, dok := e.decode.(Decode[K])
	return less, hash, encode, decode, lok && hok && eok && dok
}

func init() {
	Register(Descriptor{Tag: "int64"},
		Less[int64](func(a, b int64) bool { return a < b }),
		Hash[int64](hashInt64), Encode[int64](encodeInt64s), Decode[int64](decodeInt64s))
	Register(Descriptor{Tag: "uint64"},
		Less[uint64](func(a, b uint64) bool { return a < b }),
		Hash[uint64](hashUint64), Encode[uint64](encodeUint64s), Decode[uint64](decodeUint64s))
	Register(Descriptor{Tag: "float64"},
		Less[float64](Float64TotalOrderLess),
		Hash[float64](hashFloat64), Encode[float64](encodeFloat64s), Decode[float64](decodeFloat64s))
	Register(Descriptor{Tag: "string"},
		Less[string](func(a, b string) bool { return a < b }),
		Hash[string](hashString), Encode[string](encodeStrings), Decode[string](decodeStrings))
}
