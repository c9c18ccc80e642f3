/*
Package bitint provides the power-of-2 helpers used to validate transform
frame sizes.

Usage:

	// Reject frame sizes the transform plans are not built for
	if !bitint.IsPowerOfTwo(frameSize) {
		suggestion := bitint.NextPowerOfTwo(frameSize) // 1000 -> 1024
	}

NextPowerOfTwo subtracts one before taking the bit length so that exact
powers of 2 map to themselves:

	size = 8:  bits.Len(7) = 3, 1 << 3 = 8
	size = 9:  bits.Len(8) = 4, 1 << 4 = 16
*/
package bitint

import "math/bits"

// NextPowerOfTwo returns the next power of 2 >= size.
//
// Examples:
//
//	Input  Output  Explanation
//	4      4      Already power of 2 (preserved)
//	5      8      Next power after 5
//	0      1      Handle zero case
//	-1     1      Handle negative case
func NextPowerOfTwo(size int) int {
	if size <= 0 {
		return 1
	}
	return 1 << bits.Len(uint(size-1))
}

// IsPowerOfTwo checks if n is a power of 2. Powers of 2 have exactly one
// bit set, so n & (n-1) clears it to zero.
//
// Examples:
//
//	Input  Output  Binary
//	8      true    1000 & 0111 = 0000
//	7      false   0111 & 0110 = 0110
//	0      false   Not positive
func IsPowerOfTwo(n int) bool {
	return n > 0 && (n&(n-1)) == 0
}
