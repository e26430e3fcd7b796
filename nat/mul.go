package nat

import (
	"fmt"
	"math/bits"

	"github.com/arxislabs/nucleus/utils"
)

// Recursive splitting pays for itself only once the schoolbook inner
// loop dominates; below this limb count the split overhead loses.
const karatsubaThreshold = 16

// AddWithCarry returns a + b + carry and the outgoing carry bit.
// The incoming carry must be 0 or 1.
func AddWithCarry(a, b, carry uint64) (sum, carryOut uint64) {
	return bits.Add64(a, b, carry)
}

// SubWithBorrow returns a - b - borrow and the outgoing borrow bit.
// The incoming borrow must be 0 or 1.
func SubWithBorrow(a, b, borrow uint64) (diff, borrowOut uint64) {
	return bits.Sub64(a, b, borrow)
}

// MulWide returns the 128-bit product of a and b as (hi, lo).
func MulWide(a, b uint64) (hi, lo uint64) {
	return bits.Mul64(a, b)
}

// addMulVVW computes z += x * w and returns the output carry.
func addMulVVW(z, x []uint64, w uint64) (carry uint64) {
	for i := range x {
		hi, lo := bits.Mul64(x[i], w)
		lo, c := bits.Add64(lo, carry, 0)
		hi += c
		z[i], c = bits.Add64(z[i], lo, 0)
		carry = hi + c
	}
	return
}

// addVW computes z = x + w and returns the output carry.
func addVW(z, x []uint64, w uint64) (carry uint64) {
	carry = w
	for i := range x {
		z[i], carry = bits.Add64(x[i], carry, 0)
	}
	return
}

// mulVV computes the full schoolbook product z = x * y.
// len(z) must be len(x) + len(y); z must not alias x or y.
func mulVV(z, x, y []uint64) {
	for i := range z {
		z[i] = 0
	}
	for i := range y {
		z[i+len(x)] = addMulVVW(z[i:i+len(x)], x, y[i])
	}
}

// karatsubaMul computes the full product z = x * y by recursive
// splitting, falling back to schoolbook below the threshold and on
// odd limb counts. len(x) == len(y), len(z) == 2*len(x).
func karatsubaMul(z, x, y []uint64) {
	n := len(x)
	if n < karatsubaThreshold || n&1 != 0 {
		mulVV(z, x, y)
		return
	}
	h := n / 2
	x0, x1 := x[:h], x[h:]
	y0, y1 := y[:h], y[h:]

	// z = x1*y1 * B^2h + x0*y0, with B = 2^64.
	karatsubaMul(z[:2*h], x0, y0)
	karatsubaMul(z[2*h:], x1, y1)

	// Middle term (x0+x1)*(y0+y1): the half sums may carry one bit
	// each, folded back in after the truncated product.
	xs := make([]uint64, h)
	ys := make([]uint64, h)
	xc := addVV(xs, x0, x1)
	yc := addVV(ys, y0, y1)

	mid := make([]uint64, 2*h+1)
	karatsubaMul(mid[:2*h], xs, ys)
	if xc != 0 {
		mid[2*h] += addVV(mid[h:2*h], mid[h:2*h], ys)
	}
	if yc != 0 {
		mid[2*h] += addVV(mid[h:2*h], mid[h:2*h], xs)
	}
	mid[2*h] += xc & yc

	// mid -= x0*y0 + x1*y1; never underflows as a 2h+1 limb value.
	mid[2*h] -= subVV(mid[:2*h], mid[:2*h], z[:2*h])
	mid[2*h] -= subVV(mid[:2*h], mid[:2*h], z[2*h:])

	// z += mid * B^h; the final carry is zero since the product fits.
	c := addVV(z[h:3*h], z[h:3*h], mid[:2*h])
	addVW(z[3*h:], z[3*h:], mid[2*h]+c)
}

// sqrV computes the full square z = x * x, accumulating each cross
// product once, doubling by a one-bit shift, then adding the diagonal
// squares. len(z) must be 2*len(x); z must not alias x.
func sqrV(z, x []uint64) {
	n := len(x)
	for i := range z {
		z[i] = 0
	}
	for i := 0; i < n-1; i++ {
		z[i+n] = addMulVVW(z[2*i+1:i+n], x[i+1:], x[i])
	}
	var prev uint64
	for i := range z {
		w := z[i]
		z[i] = w<<1 | prev
		prev = w >> 63
	}
	var carry uint64
	for i := 0; i < n; i++ {
		hi, lo := bits.Mul64(x[i], x[i])
		z[2*i], carry = bits.Add64(z[2*i], lo, carry)
		z[2*i+1], carry = bits.Add64(z[2*i+1], hi, carry)
	}
}

// Mul computes the full double-width product z = x * y by schoolbook
// multiplication. x and y must have the same width and z must have
// twice that width; z must not alias x or y.
func (z *Nat) Mul(x, y *Nat) error {
	if len(x.limbs) != len(y.limbs) {
		return fmt.Errorf("cannot Mul: %w", ErrLengthMismatch)
	}
	if len(z.limbs) != 2*len(x.limbs) {
		return fmt.Errorf("cannot Mul: output must have %d limbs but has %d: %w", 2*len(x.limbs), len(z.limbs), ErrLengthMismatch)
	}
	if utils.Alias1D(z.limbs, x.limbs) || utils.Alias1D(z.limbs, y.limbs) {
		return fmt.Errorf("cannot Mul: output aliases an operand")
	}
	mulVV(z.limbs, x.limbs, y.limbs)
	return nil
}

// MulKaratsuba computes the same double-width product as Mul through
// recursive splitting. The result is bit-identical to Mul for all
// inputs.
func (z *Nat) MulKaratsuba(x, y *Nat) error {
	if len(x.limbs) != len(y.limbs) {
		return fmt.Errorf("cannot MulKaratsuba: %w", ErrLengthMismatch)
	}
	if len(z.limbs) != 2*len(x.limbs) {
		return fmt.Errorf("cannot MulKaratsuba: output must have %d limbs but has %d: %w", 2*len(x.limbs), len(z.limbs), ErrLengthMismatch)
	}
	if utils.Alias1D(z.limbs, x.limbs) || utils.Alias1D(z.limbs, y.limbs) {
		return fmt.Errorf("cannot MulKaratsuba: output aliases an operand")
	}
	karatsubaMul(z.limbs, x.limbs, y.limbs)
	return nil
}

// Sqr computes the full double-width square z = x * x, exploiting the
// symmetry of the cross terms. z must have twice the width of x and
// must not alias it.
func (z *Nat) Sqr(x *Nat) error {
	if len(z.limbs) != 2*len(x.limbs) {
		return fmt.Errorf("cannot Sqr: output must have %d limbs but has %d: %w", 2*len(x.limbs), len(z.limbs), ErrLengthMismatch)
	}
	if utils.Alias1D(z.limbs, x.limbs) {
		return fmt.Errorf("cannot Sqr: output aliases the operand")
	}
	sqrV(z.limbs, x.limbs)
	return nil
}
