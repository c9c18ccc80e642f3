// SPDX-License-Identifier: MIT
/*
Package numeric defines the real-number capability set the analysis
pipeline is generic over.

Arithmetic, the zero value and integer conversion come from the language
for any type in the Float constraint. The remaining operations (square
root, finiteness, conversion to and from the two-component complex form
used by the transform stage) are provided here so that float32 and float64
pipelines share a single implementation.

Usage:

	mag := numeric.Sqrt(re*re + im*im)
	buf[i] = numeric.ToComplex(sample)
*/
package numeric

import (
	"math"

	"github.com/chewxy/math32"
)

// Float is satisfied by any real floating-point precision.
type Float interface {
	~float32 | ~float64
}

// Sqrt returns the square root of x in the precision of T. float32 values
// stay in single precision so results match a native float32 computation.
func Sqrt[T Float](x T) T {
	switch v := any(x).(type) {
	case float32:
		return T(math32.Sqrt(v))
	default:
		return T(math.Sqrt(float64(x)))
	}
}

// IsFinite reports whether x is neither NaN nor an infinity.
func IsFinite[T Float](x T) bool {
	switch v := any(x).(type) {
	case float32:
		return !math32.IsNaN(v) && !math32.IsInf(v, 0)
	default:
		f := float64(x)
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	}
}

// ToComplex builds a complex value with x as the real part and a zero
// imaginary part.
func ToComplex[T Float](x T) complex128 {
	return complex(float64(x), 0)
}

// Magnitude returns sqrt(re² + im²) of c in the precision of T. The
// components are narrowed to T first so float32 pipelines square and sum
// in single precision.
func Magnitude[T Float](c complex128) T {
	re, im := T(real(c)), T(imag(c))
	return Sqrt(re*re + im*im)
}

// FromInt casts an integer into T.
func FromInt[T Float](n int) T {
	return T(n)
}

// FromFloat64 narrows (or keeps) a float64 constant into T.
func FromFloat64[T Float](f float64) T {
	return T(f)
}
