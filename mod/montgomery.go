package mod

import (
	"math/bits"

	"github.com/arxislabs/nucleus/ct"
	"github.com/arxislabs/nucleus/nat"
)

// montgomeryMul computes z = x * y * R^-1 mod N with the CIOS
// (coarsely integrated operand scanning) method: each outer step adds
// one word-product of x into the accumulator and immediately folds out
// the lowest word with a multiple of N. The accumulator never exceeds
// k+2 words and the loop structure is independent of the operand
// values; the final correction is a masked subtraction.
//
// All slices have the limb count of the modulus. z may alias x or y.
func (m *Modulus) montgomeryMul(z, x, y []uint64) {
	k := m.limbs
	n := m.n.Words()
	t := make([]uint64, k+2)

	for i := 0; i < k; i++ {
		// t += x[i] * y
		xi := x[i]
		var c uint64
		for j := 0; j < k; j++ {
			hi, lo := bits.Mul64(xi, y[j])
			lo, cc := bits.Add64(lo, c, 0)
			hi += cc
			t[j], cc = bits.Add64(t[j], lo, 0)
			c = hi + cc
		}
		t[k], c = bits.Add64(t[k], c, 0)
		t[k+1] = c

		// q makes t[0] + q*n[0] vanish mod 2^64; the fold shifts the
		// accumulator down one word.
		q := t[0] * m.m0inv
		hi, lo := bits.Mul64(q, n[0])
		_, cc := bits.Add64(t[0], lo, 0)
		c = hi + cc
		for j := 1; j < k; j++ {
			hi, lo := bits.Mul64(q, n[j])
			lo, cc = bits.Add64(lo, c, 0)
			hi += cc
			t[j-1], cc = bits.Add64(t[j], lo, 0)
			c = hi + cc
		}
		t[k-1], c = bits.Add64(t[k], c, 0)
		t[k] = t[k+1] + c
	}

	// t < 2N here, with t[k] holding the single possible overflow bit.
	// Subtract N iff the overflow bit is set or t >= N, without branching.
	var borrow uint64
	for j := 0; j < k; j++ {
		z[j], borrow = bits.Sub64(t[j], n[j], borrow)
	}
	keep := ct.IsNonzeroMask(t[k]) | ct.IsZeroMask(borrow)
	ct.SelectSlice(keep, z, z, t[:k])
}

// ToMontgomery computes z = x * R mod N, entering the Montgomery domain
// through a multiplication by the precomputed R^2.
func (m *Modulus) ToMontgomery(z, x *nat.Nat) error {
	if err := m.checkWidth("ToMontgomery", z, x); err != nil {
		return err
	}
	m.montgomeryMul(z.Words(), x.Words(), m.rr)
	return nil
}

// FromMontgomery computes z = x * R^-1 mod N, leaving the Montgomery
// domain through a multiplication by 1.
func (m *Modulus) FromMontgomery(z, x *nat.Nat) error {
	if err := m.checkWidth("FromMontgomery", z, x); err != nil {
		return err
	}
	one := make([]uint64, m.limbs)
	one[0] = 1
	m.montgomeryMul(z.Words(), x.Words(), one)
	return nil
}

// MontgomeryMul computes z = x * y * R^-1 mod N on operands in the
// Montgomery domain, so that domain form is preserved:
// (xR) * (yR) * R^-1 = (xy)R.
func (m *Modulus) MontgomeryMul(z, x, y *nat.Nat) error {
	if err := m.checkWidth("MontgomeryMul", z, x, y); err != nil {
		return err
	}
	m.montgomeryMul(z.Words(), x.Words(), y.Words())
	return nil
}
