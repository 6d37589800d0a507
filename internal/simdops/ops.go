// Package simdops provides generic SIMD operations for float32 and float64 types.
// Lookup tables are computed in float64 and may be exported as float32, so both
// precisions share one code path.
package simdops

import (
	"github.com/tphakala/simd/f32"
	"github.com/tphakala/simd/f64"
)

// Float is the type constraint for supported floating-point types.
type Float interface {
	float32 | float64
}

// Ops provides SIMD-accelerated operations for type F.
type Ops[F Float] struct {
	// Scale multiplies each element by scalar s: dst[i] = a[i] * s
	Scale func(dst, a []F, s F)

	// Sum returns the sum of all elements.
	Sum func(a []F) F
}

var (
	ops32 = Ops[float32]{
		Scale: f32.Scale,
		Sum:   f32.Sum,
	}
	ops64 = Ops[float64]{
		Scale: f64.Scale,
		Sum:   f64.Sum,
	}
)

// For returns the Ops instance for type F.
func For[F Float]() *Ops[F] {
	var zero F
	switch any(zero).(type) {
	case float32:
		ops, ok := any(&ops32).(*Ops[F])
		if !ok {
			panic("simdops: type assertion failed for float32")
		}
		return ops
	case float64:
		ops, ok := any(&ops64).(*Ops[F])
		if !ok {
			panic("simdops: type assertion failed for float64")
		}
		return ops
	default:
		panic("simdops: unsupported float type")
	}
}

// ScaleOffset computes dst[i] = a[i]*gain + offset.
// dst and a may alias.
func ScaleOffset[F Float](dst, a []F, gain, offset F) {
	For[F]().Scale(dst, a, gain)
	for i := range dst {
		dst[i] += offset
	}
}

// Mean returns the arithmetic mean of a, or 0 for an empty slice.
func Mean[F Float](a []F) F {
	if len(a) == 0 {
		return 0
	}
	return For[F]().Sum(a) / F(len(a))
}
