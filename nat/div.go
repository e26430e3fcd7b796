package nat

import (
	"errors"
	"fmt"
	"math/bits"
)

// ErrDivideByZero is returned when a divisor is zero.
var ErrDivideByZero = errors.New("division by zero")

// DivWide divides the 128-bit value hi:lo by d, returning the 128-bit
// quotient qhi:qlo and the remainder. The counterpart of MulWide.
func DivWide(hi, lo, d uint64) (qhi, qlo, r uint64, err error) {
	if d == 0 {
		return 0, 0, 0, fmt.Errorf("cannot DivWide: %w", ErrDivideByZero)
	}
	qhi = hi / d
	qlo, r = bits.Div64(hi%d, lo, d)
	return
}

// DivMod computes the quotient z = x / y and the remainder r = x mod y
// by binary long division: the divisor is aligned with the dividend and
// subtracted bit by bit, so no limb division is performed. All four
// values must have the same width. Variable-time; secret values go
// through the mod package.
func (z *Nat) DivMod(x, y, r *Nat) error {
	n := len(z.limbs)
	if len(x.limbs) != n || len(y.limbs) != n || len(r.limbs) != n {
		return fmt.Errorf("cannot DivMod: %w", ErrLengthMismatch)
	}
	if y.IsZero() {
		return fmt.Errorf("cannot DivMod: %w", ErrDivideByZero)
	}

	shift := x.BitLen() - y.BitLen()
	if shift < 0 {
		copy(r.limbs, x.limbs)
		for i := range z.limbs {
			z.limbs[i] = 0
		}
		return nil
	}

	rem := New(n)
	copy(rem.limbs, x.limbs)

	// y << shift has the same bit length as x, so it still fits the width.
	d := New(n)
	if err := d.Shl(y, shift); err != nil {
		return err
	}

	quo := make([]uint64, n)
	for i := shift; i >= 0; i-- {
		if c, _ := rem.Cmp(d); c >= 0 {
			subVV(rem.limbs, rem.limbs, d.limbs)
			quo[i/64] |= 1 << uint(i%64)
		}
		if err := d.Shr(d, 1); err != nil {
			return err
		}
	}

	copy(z.limbs, quo)
	copy(r.limbs, rem.limbs)
	return nil
}

// Gcd computes z = gcd(x, y) with the binary algorithm: shared factors
// of two are pulled out first, then the odd parts shrink by
// subtract-and-shift steps until they meet. Gcd(x, 0) = x.
// All three values must have the same width. Variable-time.
func (z *Nat) Gcd(x, y *Nat) error {
	n := len(z.limbs)
	if len(x.limbs) != n || len(y.limbs) != n {
		return fmt.Errorf("cannot Gcd: %w", ErrLengthMismatch)
	}
	if x.IsZero() {
		copy(z.limbs, y.limbs)
		return nil
	}
	if y.IsZero() {
		copy(z.limbs, x.limbs)
		return nil
	}

	u, v := New(n), New(n)
	copy(u.limbs, x.limbs)
	copy(v.limbs, y.limbs)

	shift := u.TrailingZeros()
	if tz := v.TrailingZeros(); tz < shift {
		shift = tz
	}
	if err := u.Shr(u, u.TrailingZeros()); err != nil {
		return err
	}

	for {
		if err := v.Shr(v, v.TrailingZeros()); err != nil {
			return err
		}
		if c, _ := u.Cmp(v); c > 0 {
			u, v = v, u
		}
		// v >= u and both odd, so v - u is even (or zero).
		subVV(v.limbs, v.limbs, u.limbs)
		if v.IsZero() {
			break
		}
	}

	return z.Shl(u, shift)
}

// Lcm computes z = lcm(x, y) = (x / gcd(x, y)) * y, returning
// ErrOverflow if the result does not fit the width. An Lcm with a zero
// operand is zero.
func (z *Nat) Lcm(x, y *Nat) error {
	n := len(z.limbs)
	if len(x.limbs) != n || len(y.limbs) != n {
		return fmt.Errorf("cannot Lcm: %w", ErrLengthMismatch)
	}
	if x.IsZero() || y.IsZero() {
		for i := range z.limbs {
			z.limbs[i] = 0
		}
		return nil
	}

	g, q, r := New(n), New(n), New(n)
	if err := g.Gcd(x, y); err != nil {
		return err
	}
	if err := q.DivMod(x, g, r); err != nil {
		return err
	}

	wide := New(2 * n)
	if err := wide.Mul(q, y); err != nil {
		return err
	}
	for _, w := range wide.limbs[n:] {
		if w != 0 {
			return fmt.Errorf("cannot Lcm: %w", ErrOverflow)
		}
	}
	copy(z.limbs, wide.limbs[:n])
	return nil
}
