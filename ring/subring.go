package ring

import (
	"errors"
	"fmt"
	"math/big"
	"math/bits"

	"github.com/arxislabs/nucleus/utils"
	"github.com/arxislabs/nucleus/utils/factorization"
)

var (
	// ErrInvalidTransformLength is returned when the transform length is
	// not a power of two in the supported range, or when no valid prime
	// exists for it.
	ErrInvalidTransformLength = errors.New("transform length must be a power of two in the supported range")

	// ErrInvalidModulus is returned when the modulus is not an NTT-friendly
	// prime for the requested transform length.
	ErrInvalidModulus = errors.New("modulus must be a prime equal to 1 mod 2N")
)

// MinimumTransformLength is the smallest supported transform length.
const MinimumTransformLength = 2

// DefaultModulusBits is the prime bit-size used when the modulus is
// chosen automatically.
const DefaultModulusBits = 55

// NTTTable stores the transform constants of a SubRing.
type NTTTable struct {
	// NthRoot is the order of the root of unity the modulus must
	// support, i.e. 2N.
	NthRoot uint64

	// PrimitiveRoot is a generator of the multiplicative group mod the modulus.
	PrimitiveRoot uint64

	// RootsForward stores the powers w^i of the N-th root of unity in
	// Montgomery form, for i < N/2.
	RootsForward []uint64

	// RootsBackward stores the powers w^-i in Montgomery form, for i < N/2.
	RootsBackward []uint64

	// NInv is N^-1 mod Modulus in Montgomery form.
	NInv uint64
}

// SubRing stores the precomputations for fast modular reduction and
// number-theoretic transforms for a given prime modulus and transform
// length. A SubRing is immutable after construction and safe for
// concurrent use.
type SubRing struct {
	// N is the transform length.
	N int

	// Modulus is the prime modulus.
	Modulus uint64

	// Factors holds the unique prime factors of Modulus-1.
	Factors []uint64

	// Mask is 2^bitLen(Modulus-1) - 1.
	Mask uint64

	// BRedConstant is the Barrett reduction constant floor(2^128 / Modulus).
	BRedConstant [2]uint64

	// MRedConstant is the Montgomery reduction constant Modulus^-1 mod 2^64.
	MRedConstant uint64

	*NTTTable
}

// NewSubRing creates the transform context for length N and prime
// modulus q. N must be a power of two >= MinimumTransformLength and q
// must be a prime of at most MaxModulusBits bits with q = 1 mod 2N.
func NewSubRing(N int, q uint64) (s *SubRing, err error) {

	if N < MinimumTransformLength || !utils.IsPowerOfTwo(uint64(N)) {
		return nil, fmt.Errorf("cannot NewSubRing: N = %d: %w", N, ErrInvalidTransformLength)
	}

	if bits.Len64(q) > MaxModulusBits {
		return nil, fmt.Errorf("cannot NewSubRing: modulus %d exceeds %d bits: %w", q, MaxModulusBits, ErrInvalidModulus)
	}

	s = &SubRing{}

	s.N = N
	s.Modulus = q
	s.Mask = (1 << uint64(bits.Len64(q-1))) - 1

	s.BRedConstant = GenBRedConstant(q)

	// No Montgomery form exists mod a power of two.
	if q != 0 && !utils.IsPowerOfTwo(q) {
		s.MRedConstant = GenMRedConstant(q)
	}

	s.NTTTable = new(NTTTable)
	s.NthRoot = uint64(2 * N)

	if err = s.generateNTTConstants(); err != nil {
		return nil, err
	}

	return s, nil
}

// NewSubRingAuto creates the transform context for length N over an
// automatically generated NTT-friendly prime of DefaultModulusBits bits.
func NewSubRingAuto(N int) (s *SubRing, err error) {

	if N < MinimumTransformLength || !utils.IsPowerOfTwo(uint64(N)) {
		return nil, fmt.Errorf("cannot NewSubRingAuto: N = %d: %w", N, ErrInvalidTransformLength)
	}

	primes, err := GenerateNTTPrimes(DefaultModulusBits, 2*N, 1)
	if err != nil {
		return nil, fmt.Errorf("cannot NewSubRingAuto: %w", err)
	}

	return NewSubRing(N, primes[0])
}

// generateNTTConstants derives the twiddle tables. The modulus must be
// prime and equal to 1 mod 2N so that a 2N-th root of unity exists; the
// N-th root w driving the transform is its square.
func (s *SubRing) generateNTTConstants() (err error) {

	q := s.Modulus
	NthRoot := s.NthRoot

	if !IsPrime(q) {
		return fmt.Errorf("cannot generateNTTConstants: %d is not prime: %w", q, ErrInvalidModulus)
	}

	if q&(NthRoot-1) != 1 {
		return fmt.Errorf("cannot generateNTTConstants: %d != 1 mod %d: %w", q, NthRoot, ErrInvalidModulus)
	}

	if s.PrimitiveRoot, s.Factors, err = PrimitiveRoot(q, s.Factors); err != nil {
		return err
	}

	N := uint64(s.N)

	// N^-1 mod q in Montgomery form, for the inverse transform scaling.
	s.NInv = MForm(ModExp(N, q-2, q), q, s.BRedConstant)

	w := ModExp(s.PrimitiveRoot, (q-1)/N, q)
	wInv := ModExp(w, q-2, q)

	wMont := MForm(w, q, s.BRedConstant)
	wInvMont := MForm(wInv, q, s.BRedConstant)

	half := s.N >> 1
	if half == 0 {
		half = 1
	}

	s.RootsForward = make([]uint64, half)
	s.RootsBackward = make([]uint64, half)

	s.RootsForward[0] = MForm(1, q, s.BRedConstant)
	s.RootsBackward[0] = s.RootsForward[0]

	for i := 1; i < half; i++ {
		s.RootsForward[i] = MRed(s.RootsForward[i-1], wMont, q, s.MRedConstant)
		s.RootsBackward[i] = MRed(s.RootsBackward[i-1], wInvMont, q, s.MRedConstant)
	}

	return nil
}

// PrimitiveRoot computes the smallest primitive root of the prime q.
// The unique prime factors of q-1 can be passed to skip the
// factorization; they are verified in that case.
func PrimitiveRoot(q uint64, factors []uint64) (uint64, []uint64, error) {

	if factors != nil {
		if err := CheckFactors(q-1, factors); err != nil {
			return 0, factors, err
		}
	} else {

		factorsBig := factorization.GetFactors(new(big.Int).SetUint64(q - 1))

		factors = make([]uint64, len(factorsBig))
		for i := range factors {
			factors[i] = factorsBig[i].Uint64()
		}
	}

	notFoundPrimitiveRoot := true

	var g uint64 = 1

	for notFoundPrimitiveRoot {
		g++
		for _, factor := range factors {
			// g is primitive iff no proper power g^((q-1)/factor) is 1.
			if ModExp(g, (q-1)/factor, q) == 1 {
				notFoundPrimitiveRoot = true
				break
			}
			notFoundPrimitiveRoot = false
		}
	}

	return g, factors, nil
}

// CheckFactors checks that the given list contains every unique prime
// factor of m.
func CheckFactors(m uint64, factors []uint64) (err error) {

	for _, factor := range factors {

		if !IsPrime(factor) {
			return fmt.Errorf("composite factor %d", factor)
		}

		for m%factor == 0 {
			m /= factor
		}
	}

	if m != 1 {
		return fmt.Errorf("incomplete factor list")
	}

	return
}

// CheckPrimitiveRoot checks that g generates the multiplicative group
// mod q, given the unique prime factors of q-1.
func CheckPrimitiveRoot(g, q uint64, factors []uint64) (err error) {

	if err = CheckFactors(q-1, factors); err != nil {
		return
	}

	for _, factor := range factors {
		if ModExp(g, (q-1)/factor, q) == 1 {
			return fmt.Errorf("invalid primitive root %d", g)
		}
	}

	return
}
