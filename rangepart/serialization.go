package rangepart

import (
	"encoding/binary"

	"github.com/rangepart/rangepart-go/ordering"
)

// serVer mirrors the teacher sketch library's preamble versioning idiom
// (sampling.ReservoirItemsSketch's serVer) — one byte identifying the wire
// format, bumped on incompatible layout changes.
const serVer = 1

const flagDescending = 0x01

// ToBytes serializes the partitioner's observable state — direction,
// ordering descriptor, and boundary array — to a byte stream (spec.md §4.4
// "Serialization"). The comparator and hasher themselves are never
// serialized; FromBytes rebuilds them from the descriptor via
// ordering.Resolve, which is what makes the partitioner transferable
// without requiring K's comparator to be a bundleable closure.
func (r *RangePartitioner[K]) ToBytes() ([]byte, error) {
	if r.encode == nil && len(r.boundaries) > 0 {
		return nil, serializationFailure("key type %s has no registered byte encoding", r.descriptor)
	}

	tag := []byte(r.descriptor.Tag)
	regID := []byte(r.descriptor.RegistryID)

	var flags byte
	if r.descending {
		flags |= flagDescending
	}

	header := make([]byte, 1+1+4+len(tag)+4+len(regID)+4+4)
	off := 0
	header[off] = serVer
	off++
	header[off] = flags
	off++
	binary.LittleEndian.PutUint32(header[off:], uint32(len(tag)))
	off += 4
	off += copy(header[off:], tag)
	binary.LittleEndian.PutUint32(header[off:], uint32(len(regID)))
	off += 4
	off += copy(header[off:], regID)
	binary.LittleEndian.PutUint32(header[off:], uint32(r.numPartitions))
	off += 4
	binary.LittleEndian.PutUint32(header[off:], uint32(len(r.boundaries)))
	off += 4

	if len(r.boundaries) == 0 {
		return header, nil
	}

	payload := r.encode(r.boundaries)
	out := make([]byte, len(header)+len(payload))
	copy(out, header)
	copy(out[len(header):], payload)
	return out, nil
}

// FromBytes rebuilds a RangePartitioner from bytes written by ToBytes. K
// must be the same concrete type the partitioner was constructed with, and
// must have an ordering registered under the serialized Descriptor (the
// four built-ins — int64, uint64, float64, string — register themselves on
// import of package ordering; user-defined orderings must be registered by
// the caller before FromBytes runs).
func FromBytes[K any](data []byte) (*RangePartitioner[K], error) {
	if len(data) < 2+4+4 {
		return nil, serializationFailure("payload too short: %d bytes", len(data))
	}
	off := 0
	ver := data[off]
	off++
	if ver != serVer {
		return nil, serializationFailure("unsupported serialization version %d", ver)
	}
	flags := data[off]
	off++

	tagLen := int(binary.LittleEndian.Uint32(data[off:]))
	off += 4
	if off+tagLen > len(data) {
		return nil, serializationFailure("descriptor tag out of bounds")
	}
	tag := string(data[off : off+tagLen])
	off += tagLen

	regLen := int(binary.LittleEndian.Uint32(data[off:]))
	off += 4
	if off+regLen > len(data) {
		return nil, serializationFailure("descriptor registry id out of bounds")
	}
	regID := string(data[off : off+regLen])
	off += regLen

	if off+8 > len(data) {
		return nil, serializationFailure("payload truncated before partition count")
	}
	numPartitions := int(binary.LittleEndian.Uint32(data[off:]))
	off += 4
	numBoundaries := int(binary.LittleEndian.Uint32(data[off:]))
	off += 4

	descriptor := ordering.Descriptor{Tag: tag, RegistryID: regID}
	less, hash, encode, decode, ok := ordering.Resolve[K](descriptor)
	if !ok {
		return nil, serializationFailure("no ordering registered for descriptor %s", descriptor)
	}

	r := &RangePartitioner[K]{
		descriptor:    descriptor,
		less:          less,
		hash:          hash,
		encode:        encode,
		decode:        decode,
		descending:    flags&flagDescending != 0,
		numPartitions: numPartitions,
	}

	if numBoundaries == 0 {
		return r, nil
	}

	boundaries, err := decode(data[off:], numBoundaries)
	if err != nil {
		return nil, serializationFailure("decoding boundaries: %v", err)
	}
	r.boundaries = boundaries
	return r, nil
}
