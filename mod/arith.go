package mod

import (
	"errors"
	"fmt"
	"math/big"
	"math/bits"

	"github.com/arxislabs/nucleus/ct"
	"github.com/arxislabs/nucleus/nat"
)

// ErrNotInvertible is returned when an inverse is requested for an
// operand that shares a factor with the modulus.
var ErrNotInvertible = errors.New("operand is not invertible modulo N")

// Add computes z = x + y mod N for x, y < N. The reduction is a single
// masked subtraction, applied without branching on the operand values.
func (m *Modulus) Add(z, x, y *nat.Nat) error {
	if err := m.checkWidth("Add", z, x, y); err != nil {
		return err
	}
	zw, n := z.Words(), m.n.Words()
	var carry uint64
	for j := range zw {
		zw[j], carry = bits.Add64(x.Words()[j], y.Words()[j], carry)
	}
	tmp := make([]uint64, m.limbs)
	var borrow uint64
	for j := range zw {
		tmp[j], borrow = bits.Sub64(zw[j], n[j], borrow)
	}
	reduce := ct.IsNonzeroMask(carry) | ct.IsZeroMask(borrow)
	ct.SelectSlice(reduce, zw, tmp, zw)
	return nil
}

// Sub computes z = x - y mod N for x, y < N, adding N back under a mask
// when the raw subtraction borrows.
func (m *Modulus) Sub(z, x, y *nat.Nat) error {
	if err := m.checkWidth("Sub", z, x, y); err != nil {
		return err
	}
	zw, n := z.Words(), m.n.Words()
	var borrow uint64
	for j := range zw {
		zw[j], borrow = bits.Sub64(x.Words()[j], y.Words()[j], borrow)
	}
	tmp := make([]uint64, m.limbs)
	var carry uint64
	for j := range zw {
		tmp[j], carry = bits.Add64(zw[j], n[j], carry)
	}
	ct.SelectSlice(ct.IsNonzeroMask(borrow), zw, tmp, zw)
	return nil
}

// Mul computes z = x * y mod N through one Montgomery domain entry and
// one Montgomery multiplication: (xR) * y * R^-1 = xy mod N.
func (m *Modulus) Mul(z, x, y *nat.Nat) error {
	if err := m.checkWidth("Mul", z, x, y); err != nil {
		return err
	}
	t := make([]uint64, m.limbs)
	m.montgomeryMul(t, x.Words(), m.rr)
	m.montgomeryMul(z.Words(), t, y.Words())
	return nil
}

// Exp computes z = x^e mod N with a fixed 4-bit window. Every window of
// the exponent is processed identically, squarings included, and the
// table entry is gathered with a full masked scan of all 16 entries, so
// neither the schedule nor the memory access pattern depends on the
// exponent bits.
func (m *Modulus) Exp(z, x, e *nat.Nat) error {
	if err := m.checkWidth("Exp", z, x); err != nil {
		return err
	}
	k := m.limbs

	// table[i] = x^i in the Montgomery domain; table[0] = R mod N = 1R.
	table := make([][]uint64, 16)
	table[0] = make([]uint64, k)
	copy(table[0], m.one)
	table[1] = make([]uint64, k)
	m.montgomeryMul(table[1], x.Words(), m.rr)
	for i := 2; i < 16; i++ {
		table[i] = make([]uint64, k)
		m.montgomeryMul(table[i], table[i-1], table[1])
	}

	acc := make([]uint64, k)
	copy(acc, m.one)
	sel := make([]uint64, k)
	ew := e.Words()

	for i := 16*len(ew) - 1; i >= 0; i-- {
		for s := 0; s < 4; s++ {
			m.montgomeryMul(acc, acc, acc)
		}
		w := (ew[i/16] >> (4 * (i % 16))) & 0xF
		for j := 0; j < 16; j++ {
			ct.CopySlice(ct.Eq(w, uint64(j)), sel, table[j])
		}
		m.montgomeryMul(acc, acc, sel)
	}

	one := make([]uint64, k)
	one[0] = 1
	m.montgomeryMul(z.Words(), acc, one)
	return nil
}

// Inverse computes z = x^-1 mod N as x^(N-2), which is valid when N is
// prime (Fermat). This is the constant-time path: it inherits the
// fixed schedule of Exp. For composite or public moduli use
// InverseVarTime.
func (m *Modulus) Inverse(z, x *nat.Nat) error {
	if err := m.checkWidth("Inverse", z, x); err != nil {
		return err
	}
	if x.IsZero() {
		return fmt.Errorf("cannot Inverse: %w", ErrNotInvertible)
	}
	// e = N - 2; N is odd and > 2 here so no borrow escapes.
	e := nat.New(m.limbs)
	two := nat.NewFromUint64(m.limbs, 2)
	if _, err := e.Sub(m.n, two); err != nil {
		return err
	}
	return m.Exp(z, x, e)
}

// InverseVarTime computes z = x^-1 mod N by extended Euclid on the
// reference big.Int layer. Variable-time: operands must be public.
// Returns ErrNotInvertible if gcd(x, N) != 1.
func (m *Modulus) InverseVarTime(z, x *nat.Nat) error {
	if err := m.checkWidth("InverseVarTime", z, x); err != nil {
		return err
	}
	inv := new(big.Int).ModInverse(x.Big(), m.n.Big())
	if inv == nil {
		return fmt.Errorf("cannot InverseVarTime: %w", ErrNotInvertible)
	}
	return z.SetBig(inv)
}
