// Package ct implements constant-time primitives over 64-bit words and
// limb slices. Every function in this package executes in time independent
// of its operand values and never branches or indexes memory on a
// secret-derived value. Code above this layer must route all secret
// comparisons and selections through it.
package ct

import (
	"runtime"
)

// Eq returns an all-ones mask if a == b and an all-zero mask otherwise.
func Eq(a, b uint64) uint64 {
	diff := a ^ b
	return ((diff | -diff) >> 63) - 1
}

// Neq returns an all-ones mask if a != b and an all-zero mask otherwise.
func Neq(a, b uint64) uint64 {
	return ^Eq(a, b)
}

// Lt returns an all-ones mask if a < b and an all-zero mask otherwise.
// The expression computes the borrow of a-b without branching.
func Lt(a, b uint64) uint64 {
	return -(((^a & b) | ((^a | b) & (a - b))) >> 63)
}

// Gt returns an all-ones mask if a > b and an all-zero mask otherwise.
func Gt(a, b uint64) uint64 {
	return Lt(b, a)
}

// Leq returns an all-ones mask if a <= b and an all-zero mask otherwise.
func Leq(a, b uint64) uint64 {
	return ^Gt(a, b)
}

// Geq returns an all-ones mask if a >= b and an all-zero mask otherwise.
func Geq(a, b uint64) uint64 {
	return ^Lt(a, b)
}

// IsZeroMask returns an all-ones mask if x == 0 and an all-zero mask otherwise.
func IsZeroMask(x uint64) uint64 {
	return ((x | -x) >> 63) - 1
}

// IsNonzeroMask returns an all-ones mask if x != 0 and an all-zero mask otherwise.
func IsNonzeroMask(x uint64) uint64 {
	return ^IsZeroMask(x)
}

// Select returns a if mask is all-ones and b if mask is all-zero,
// computed as (a & mask) | (b & ^mask).
func Select(mask, a, b uint64) uint64 {
	return (a & mask) | (b & ^mask)
}

// Mov returns src if mask is all-ones and dst otherwise.
func Mov(mask, dst, src uint64) uint64 {
	return Select(mask, src, dst)
}

// Swap returns (b, a) if mask is all-ones and (a, b) if mask is all-zero.
func Swap(mask, a, b uint64) (uint64, uint64) {
	x := (a ^ b) & mask
	return a ^ x, b ^ x
}

// EqSlice returns an all-ones mask if the limb slices a and b are equal
// and an all-zero mask otherwise. The whole slices are always scanned.
// Slices of different lengths are never equal.
func EqSlice(a, b []uint64) uint64 {
	if len(a) != len(b) {
		return 0
	}
	var diff uint64
	for i := range a {
		diff |= a[i] ^ b[i]
	}
	return IsZeroMask(diff)
}

// LtSlice returns an all-ones mask if a < b and an all-zero mask otherwise,
// comparing the slices as little-endian limb integers. The whole slices
// are always scanned.
func LtSlice(a, b []uint64) uint64 {
	var result, decided uint64
	for i := len(a) - 1; i >= 0; i-- {
		lt := Lt(a[i], b[i])
		gt := Gt(a[i], b[i])
		result |= lt & ^decided
		decided |= lt | gt
	}
	return result
}

// GeqSlice returns an all-ones mask if a >= b and an all-zero mask otherwise.
func GeqSlice(a, b []uint64) uint64 {
	return ^LtSlice(a, b)
}

// SelectSlice writes a[i] to out[i] where mask is all-ones and b[i] otherwise.
func SelectSlice(mask uint64, out, a, b []uint64) {
	for i := range out {
		out[i] = Select(mask, a[i], b[i])
	}
}

// CopySlice copies src into dst where mask is all-ones, leaving dst
// untouched otherwise. Both slices are always fully accessed.
func CopySlice(mask uint64, dst, src []uint64) {
	for i := range dst {
		dst[i] = Select(mask, src[i], dst[i])
	}
}

// SwapSlice swaps a and b element-wise where mask is all-ones.
func SwapSlice(mask uint64, a, b []uint64) {
	for i := range a {
		x := (a[i] ^ b[i]) & mask
		a[i] ^= x
		b[i] ^= x
	}
}

// EqBytes reports whether the byte slices a and b are equal, scanning
// both entirely regardless of where they first differ.
func EqBytes(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	var diff byte
	for i := range a {
		diff |= a[i] ^ b[i]
	}
	return diff == 0
}

// Zero clears the limb slice. The runtime.KeepAlive barrier prevents the
// compiler from eliding the writes when the slice is about to go out of
// scope, which matters when it held secret material.
func Zero(p []uint64) {
	for i := range p {
		p[i] = 0
	}
	runtime.KeepAlive(p)
}

// ZeroBytes clears the byte slice with the same guarantees as Zero.
func ZeroBytes(p []byte) {
	for i := range p {
		p[i] = 0
	}
	runtime.KeepAlive(p)
}
