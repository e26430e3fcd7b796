// Package mod implements modular arithmetic over fixed-width integers,
// with Montgomery and Barrett reduction. A Modulus is an immutable
// context carrying every precomputed constant the reductions need; once
// constructed it is safe for concurrent use and its operations do not
// fail on validated operand widths.
package mod

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/arxislabs/nucleus/nat"
	"github.com/arxislabs/nucleus/utils/bignum"
)

// ErrInvalidModulus is returned when a modulus is zero, even, or does
// not occupy its announced width. Montgomery reduction requires the
// modulus to be odd, and the Barrett reciprocal requires its most
// significant limb to be non-zero.
var ErrInvalidModulus = errors.New("invalid modulus")

// Modulus is an immutable modular-arithmetic context for an odd modulus N.
type Modulus struct {
	n      *nat.Nat // the modulus, k limbs
	limbs  int      // k
	bitLen int
	m0inv  uint64   // -N^-1 mod 2^64
	one    []uint64 // R mod N, the Montgomery representation of 1
	rr     []uint64 // R^2 mod N, for entering the Montgomery domain
	mu     []uint64 // floor(2^(128k) / N), k+1 limbs, Barrett reciprocal
	nExt   []uint64 // N zero-extended to k+1 limbs, for Barrett corrections
}

// NewModulus builds the context for the given modulus.
// Returns ErrInvalidModulus if n is zero or even.
func NewModulus(n *nat.Nat) (*Modulus, error) {
	if n.IsZero() || n.IsEven() {
		return nil, fmt.Errorf("cannot NewModulus: modulus must be odd and non-zero: %w", ErrInvalidModulus)
	}

	k := n.Limbs()

	if n.Words()[k-1] == 0 {
		return nil, fmt.Errorf("cannot NewModulus: most significant limb is zero: %w", ErrInvalidModulus)
	}
	m := &Modulus{
		n:      n.Clone(),
		limbs:  k,
		bitLen: n.BitLen(),
		m0inv:  negInvModWord(n.Words()[0]),
	}

	// R = 2^(64k). The Montgomery constants and the Barrett reciprocal
	// are one-time costs, computed through the reference big.Int layer.
	nBig := n.Big()
	r := new(big.Int).Lsh(bignum.NewInt(1), uint(64*k))
	m.one = bignum.ToLimbs(new(big.Int).Mod(r, nBig), k)

	r2 := new(big.Int).Lsh(bignum.NewInt(1), uint(128*k))
	m.rr = bignum.ToLimbs(new(big.Int).Mod(r2, nBig), k)
	m.mu = bignum.ToLimbs(new(big.Int).Quo(r2, nBig), k+1)

	m.nExt = make([]uint64, k+1)
	copy(m.nExt, n.Words())

	return m, nil
}

// negInvModWord computes -n0^-1 mod 2^64 for odd n0 by Newton iteration.
// Each step doubles the number of correct low bits, starting from the
// three bits every odd number is its own inverse on.
func negInvModWord(n0 uint64) uint64 {
	inv := n0
	for i := 0; i < 5; i++ {
		inv *= 2 - n0*inv
	}
	return -inv
}

// N returns a copy of the modulus.
func (m *Modulus) N() *nat.Nat {
	return m.n.Clone()
}

// Limbs returns the limb count of the modulus.
func (m *Modulus) Limbs() int {
	return m.limbs
}

// BitLen returns the bit length of the modulus.
func (m *Modulus) BitLen() int {
	return m.bitLen
}

// M0Inv returns -N^-1 mod 2^64.
func (m *Modulus) M0Inv() uint64 {
	return m.m0inv
}

// Big returns the modulus as a *big.Int.
func (m *Modulus) Big() *big.Int {
	return m.n.Big()
}

// checkWidth validates that every operand has the limb count of the modulus.
func (m *Modulus) checkWidth(op string, xs ...*nat.Nat) error {
	for _, x := range xs {
		if x.Limbs() != m.limbs {
			return fmt.Errorf("cannot %s: operand has %d limbs, modulus has %d: %w", op, x.Limbs(), m.limbs, nat.ErrLengthMismatch)
		}
	}
	return nil
}
