// Package reservoir implements C1: uniform reservoir sampling of a bounded
// number of items from a finite, single-pass sequence of unknown length,
// with an exact count of items seen.
//
// The sampler itself is adapted from sampling.ReservoirItemsSketch in the
// teacher sketch library (apache/datasketches-go), generalized in three
// ways the distributed range partitioner needs that the teacher's sketch
// does not:
//   - the PRNG is seeded per call from a caller-supplied 32-bit seed
//     (internal/xrand), instead of drawing from the shared math/rand global
//     source, so that sampling the same partition twice is reproducible;
//   - growth of the backing array is a plain append, since the partitioner
//     never needs the teacher's power-of-two resize-factor bookkeeping
//     (that bookkeeping exists in the teacher to match a cross-language
//     binary format this package does not share);
//   - the sample is exposed as a typed Result[T] value rather than a
//     stateful sketch, since the partitioner only ever runs one pass.
package reservoir

import (
	"fmt"

	"github.com/rangepart/rangepart-go/internal/xrand"
)

// Result is the outcome of reservoir-sampling a single-pass sequence: the
// exact count N of items in the sequence, and a uniform-without-replacement
// draw of size min(m, N) from it.
type Result[T any] struct {
	Items []T
	N     uint64
}

// Sampler runs Algorithm R (Vitter 1985) against items pushed one at a time
// via Update. It is the push-based counterpart to Sample, for callers that
// receive items one at a time rather than holding them in a slice; Sample
// itself is built on it.
type Sampler[T any] struct {
	cap  int
	n    uint64
	data []T
	rng  *xrand.Source
}

// NewSampler returns a Sampler with reservoir capacity m and PRNG seed
// seed. It returns an error if m < 0, matching spec.md's InvalidArgument
// contract for C1.
func NewSampler[T any](m int, seed uint32) (*Sampler[T], error) {
	if m < 0 {
		return nil, fmt.Errorf("reservoir: cap must be >= 0, got %d", m)
	}
	return &Sampler[T]{
		cap:  m,
		data: make([]T, 0, m),
		rng:  xrand.New(seed),
	}, nil
}

// Update folds one more item of the sequence into the reservoir.
func (s *Sampler[T]) Update(item T) {
	if s.cap == 0 {
		s.n++
		return
	}
	if s.n < uint64(s.cap) {
		s.data = append(s.data, item)
	} else {
		j := s.rng.Int63n(int64(s.n) + 1)
		if j < int64(s.cap) {
			s.data[j] = item
		}
	}
	s.n++
}

// Result returns the sample collected so far and the exact count of items
// seen.
func (s *Sampler[T]) Result() Result[T] {
	items := make([]T, len(s.data))
	copy(items, s.data)
	return Result[T]{Items: items, N: s.n}
}

// Sample draws a reservoir sample of at most m items from seq, a finite
// single-pass sequence, using PRNG seed seed. It is the direct, non-streaming
// form of Sampler, useful for tests and for callers that already have the
// partition materialized as a slice.
func Sample[T any](seq []T, m int, seed uint32) (Result[T], error) {
	s, err := NewSampler[T](m, seed)
	if err != nil {
		return Result[T]{}, err
	}
	for _, item := range seq {
		s.Update(item)
	}
	return s.Result(), nil
}
