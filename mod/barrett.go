package mod

import (
	"fmt"
	"math/bits"

	"github.com/arxislabs/nucleus/ct"
	"github.com/arxislabs/nucleus/nat"
)

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

// mulFull computes the full product z = x * y, len(z) = len(x)+len(y).
func mulFull(z, x, y []uint64) {
	for i := range z {
		z[i] = 0
	}
	for i := range x {
		z[i+len(y)] = addMulVVW(z[i:i+len(y)], y, x[i])
	}
}

// mulLow computes the low len(z) limbs of x * y, discarding the rest.
func mulLow(z, x, y []uint64) {
	for i := range z {
		z[i] = 0
	}
	for i := range x {
		if i >= len(z) {
			break
		}
		w := len(z) - i
		if w > len(y) {
			w = len(y)
		}
		carry := addMulVVW(z[i:i+w], y[:w], x[i])
		for j := i + w; j < len(z) && carry != 0; j++ {
			z[j], carry = bits.Add64(z[j], carry, 0)
		}
	}
}

// barrettReduce computes z = x mod N for any x < N^2, using the
// precomputed reciprocal mu = floor(b^2k / N) with b = 2^64 and k the
// limb count of N. The quotient estimate
//
//	q = floor(floor(x / b^(k-1)) * mu / b^(k+1))
//
// undershoots the true quotient by at most two, so at most two
// corrective subtractions of N are needed and no division is performed.
// x has 2k limbs, z has k limbs.
func (m *Modulus) barrettReduce(z, x []uint64) {
	k := m.limbs

	// q1 = x >> 64(k-1), k+1 limbs.
	q1 := x[k-1:]

	// q3 = (q1 * mu) >> 64(k+1), k+1 limbs.
	q2 := make([]uint64, 2*k+2)
	mulFull(q2, q1, m.mu)
	q3 := q2[k+1:]

	// r = (x - q3*N) mod b^(k+1); the wraparound of the limb subtraction
	// absorbs the conditional add of b^(k+1) from the textbook method.
	r := make([]uint64, k+1)
	copy(r, x[:k+1])
	r2 := make([]uint64, k+1)
	mulLow(r2, q3, m.n.Words())
	var borrow uint64
	for j := range r {
		r[j], borrow = bits.Sub64(r[j], r2[j], borrow)
	}

	// Two masked corrections bring r below N.
	tmp := make([]uint64, k+1)
	for step := 0; step < 2; step++ {
		borrow = 0
		for j := range r {
			tmp[j], borrow = bits.Sub64(r[j], m.nExt[j], borrow)
		}
		ct.SelectSlice(ct.IsZeroMask(borrow), r, tmp, r)
	}

	copy(z, r[:k])
}

// BarrettReduce computes z = x mod N for a double-width x < N^2.
// x must have twice the limb count of the modulus and z must match it.
func (m *Modulus) BarrettReduce(z, x *nat.Nat) error {
	if err := m.checkWidth("BarrettReduce", z); err != nil {
		return err
	}
	if x.Limbs() != 2*m.limbs {
		return fmt.Errorf("cannot BarrettReduce: input has %d limbs but %d are required: %w", x.Limbs(), 2*m.limbs, nat.ErrLengthMismatch)
	}
	m.barrettReduce(z.Words(), x.Words())
	return nil
}
