package nat

import (
	"fmt"
	"math/bits"

	"github.com/arxislabs/nucleus/simd"
)

// Carry-chain kernels over raw limb slices. The exported methods validate
// widths once and delegate here; the mod and ring layers call these
// directly on pre-validated slices.

// addVV computes z = x + y and returns the output carry.
func addVV(z, x, y []uint64) (carry uint64) {
	for i := range z {
		z[i], carry = bits.Add64(x[i], y[i], carry)
	}
	return
}

// subVV computes z = x - y and returns the output borrow.
func subVV(z, x, y []uint64) (borrow uint64) {
	for i := range z {
		z[i], borrow = bits.Sub64(x[i], y[i], borrow)
	}
	return
}

// mulVW computes z = x * w and returns the overflowing high limb.
func mulVW(z, x []uint64, w uint64) (carry uint64) {
	for i := range x {
		hi, lo := bits.Mul64(x[i], w)
		z[i], carry = bits.Add64(lo, carry, 0)
		carry += hi
	}
	return
}

// Add computes z = x + y and returns the output carry.
// All three values must have the same width.
func (z *Nat) Add(x, y *Nat) (carry uint64, err error) {
	if len(z.limbs) != len(x.limbs) || len(x.limbs) != len(y.limbs) {
		return 0, fmt.Errorf("cannot Add: %w", ErrLengthMismatch)
	}
	return addVV(z.limbs, x.limbs, y.limbs), nil
}

// AddChecked computes z = x + y and returns ErrOverflow if the sum does
// not fit in the width of z.
func (z *Nat) AddChecked(x, y *Nat) error {
	carry, err := z.Add(x, y)
	if err != nil {
		return err
	}
	if carry != 0 {
		return fmt.Errorf("cannot AddChecked: %w", ErrOverflow)
	}
	return nil
}

// Sub computes z = x - y and returns the output borrow.
// All three values must have the same width.
func (z *Nat) Sub(x, y *Nat) (borrow uint64, err error) {
	if len(z.limbs) != len(x.limbs) || len(x.limbs) != len(y.limbs) {
		return 0, fmt.Errorf("cannot Sub: %w", ErrLengthMismatch)
	}
	return subVV(z.limbs, x.limbs, y.limbs), nil
}

// SubChecked computes z = x - y and returns ErrOverflow if y > x.
func (z *Nat) SubChecked(x, y *Nat) error {
	borrow, err := z.Sub(x, y)
	if err != nil {
		return err
	}
	if borrow != 0 {
		return fmt.Errorf("cannot SubChecked: %w", ErrOverflow)
	}
	return nil
}

// MulWord computes z = x * w and returns the overflowing high limb.
// z and x must have the same width.
func (z *Nat) MulWord(x *Nat, w uint64) (carry uint64, err error) {
	if len(z.limbs) != len(x.limbs) {
		return 0, fmt.Errorf("cannot MulWord: %w", ErrLengthMismatch)
	}
	return mulVW(z.limbs, x.limbs, w), nil
}

// Cmp compares x and y, returning -1, 0 or +1. The comparison proceeds
// from the most significant limb down and short-circuits on the first
// inequality: it must only be used on non-secret values. Secret
// comparisons go through the ct package.
func (x *Nat) Cmp(y *Nat) (int, error) {
	if len(x.limbs) != len(y.limbs) {
		return 0, fmt.Errorf("cannot Cmp: %w", ErrLengthMismatch)
	}
	for i := len(x.limbs) - 1; i >= 0; i-- {
		switch {
		case x.limbs[i] < y.limbs[i]:
			return -1, nil
		case x.limbs[i] > y.limbs[i]:
			return 1, nil
		}
	}
	return 0, nil
}

// Equal reports whether x and y hold the same value and width.
// Variable-time; secret comparisons go through the ct package.
func (x *Nat) Equal(y *Nat) bool {
	if len(x.limbs) != len(y.limbs) {
		return false
	}
	for i := range x.limbs {
		if x.limbs[i] != y.limbs[i] {
			return false
		}
	}
	return true
}

// IsZero reports whether x == 0.
func (x *Nat) IsZero() bool {
	var acc uint64
	for _, w := range x.limbs {
		acc |= w
	}
	return acc == 0
}

// IsEven reports whether x is even.
func (x *Nat) IsEven() bool {
	return x.limbs[0]&1 == 0
}

// LeadingZeros returns the number of leading zero bits in x.
func (x *Nat) LeadingZeros() int {
	for i := len(x.limbs) - 1; i >= 0; i-- {
		if x.limbs[i] != 0 {
			return 64*(len(x.limbs)-1-i) + bits.LeadingZeros64(x.limbs[i])
		}
	}
	return 64 * len(x.limbs)
}

// TrailingZeros returns the number of trailing zero bits in x.
func (x *Nat) TrailingZeros() int {
	for i, w := range x.limbs {
		if w != 0 {
			return 64*i + bits.TrailingZeros64(w)
		}
	}
	return 64 * len(x.limbs)
}

// BitLen returns the length of x in bits, i.e. the index of its most
// significant set bit plus one. BitLen(0) = 0.
func (x *Nat) BitLen() int {
	return 64*len(x.limbs) - x.LeadingZeros()
}

// Bit returns bit i of x (0 or 1). Out-of-range bits are zero.
func (x *Nat) Bit(i int) uint64 {
	if i < 0 || i >= 64*len(x.limbs) {
		return 0
	}
	return (x.limbs[i/64] >> (i % 64)) & 1
}

// Shl computes z = x << k within the fixed width, discarding bits
// shifted past the top. z and x must have the same width.
func (z *Nat) Shl(x *Nat, k int) error {
	if len(z.limbs) != len(x.limbs) {
		return fmt.Errorf("cannot Shl: %w", ErrLengthMismatch)
	}
	if k < 0 {
		return fmt.Errorf("cannot Shl: negative shift count %d", k)
	}
	n := len(z.limbs)
	limbOff, bitOff := k/64, uint(k%64)
	if limbOff >= n {
		for i := range z.limbs {
			z.limbs[i] = 0
		}
		return nil
	}
	if bitOff == 0 {
		for i := n - 1; i >= limbOff; i-- {
			z.limbs[i] = x.limbs[i-limbOff]
		}
	} else {
		for i := n - 1; i > limbOff; i-- {
			z.limbs[i] = x.limbs[i-limbOff]<<bitOff | x.limbs[i-limbOff-1]>>(64-bitOff)
		}
		z.limbs[limbOff] = x.limbs[0] << bitOff
	}
	for i := 0; i < limbOff; i++ {
		z.limbs[i] = 0
	}
	return nil
}

// Shr computes z = x >> k. z and x must have the same width.
func (z *Nat) Shr(x *Nat, k int) error {
	if len(z.limbs) != len(x.limbs) {
		return fmt.Errorf("cannot Shr: %w", ErrLengthMismatch)
	}
	if k < 0 {
		return fmt.Errorf("cannot Shr: negative shift count %d", k)
	}
	n := len(z.limbs)
	limbOff, bitOff := k/64, uint(k%64)
	if limbOff >= n {
		for i := range z.limbs {
			z.limbs[i] = 0
		}
		return nil
	}
	if bitOff == 0 {
		for i := 0; i < n-limbOff; i++ {
			z.limbs[i] = x.limbs[i+limbOff]
		}
	} else {
		for i := 0; i < n-limbOff-1; i++ {
			z.limbs[i] = x.limbs[i+limbOff]>>bitOff | x.limbs[i+limbOff+1]<<(64-bitOff)
		}
		z.limbs[n-limbOff-1] = x.limbs[n-1] >> bitOff
	}
	for i := n - limbOff; i < n; i++ {
		z.limbs[i] = 0
	}
	return nil
}

// Xor computes z = x ^ y limb-wise through the simd layer.
func (z *Nat) Xor(x, y *Nat) error {
	if len(z.limbs) != len(x.limbs) || len(x.limbs) != len(y.limbs) {
		return fmt.Errorf("cannot Xor: %w", ErrLengthMismatch)
	}
	simd.Xor(z.limbs, x.limbs, y.limbs)
	return nil
}

// And computes z = x & y limb-wise through the simd layer.
func (z *Nat) And(x, y *Nat) error {
	if len(z.limbs) != len(x.limbs) || len(x.limbs) != len(y.limbs) {
		return fmt.Errorf("cannot And: %w", ErrLengthMismatch)
	}
	simd.And(z.limbs, x.limbs, y.limbs)
	return nil
}

// Or computes z = x | y limb-wise through the simd layer.
func (z *Nat) Or(x, y *Nat) error {
	if len(z.limbs) != len(x.limbs) || len(x.limbs) != len(y.limbs) {
		return fmt.Errorf("cannot Or: %w", ErrLengthMismatch)
	}
	simd.Or(z.limbs, x.limbs, y.limbs)
	return nil
}
