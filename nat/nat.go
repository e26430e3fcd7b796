// Package nat implements fixed-width unsigned integers represented as
// little-endian arrays of 64-bit limbs. The announced limb count of a
// value is fixed at construction and never changes; operations between
// values of different widths return ErrLengthMismatch.
//
// All arithmetic is built from the three base-word primitives exposed by
// math/bits: Add64 (add with carry), Sub64 (subtract with borrow) and
// Mul64 (widening multiply).
package nat

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/arxislabs/nucleus/ct"
	"github.com/arxislabs/nucleus/utils/bignum"
	"github.com/arxislabs/nucleus/utils/buffer"
)

var (
	// ErrLengthMismatch is returned when operands of incompatible limb
	// counts are passed to an operation expecting matching widths.
	ErrLengthMismatch = errors.New("operand limb counts do not match")

	// ErrOverflow is returned when a result would not fit in the
	// requested fixed width.
	ErrOverflow = errors.New("result does not fit in the requested width")
)

// Nat is an unsigned integer of fixed width, stored as little-endian
// 64-bit limbs (limb 0 holds the least-significant bits).
type Nat struct {
	limbs []uint64
}

// New returns a zero-valued Nat with the given number of limbs.
func New(limbs int) *Nat {
	if limbs <= 0 {
		panic(fmt.Sprintf("cannot New: limb count must be positive but is %d", limbs))
	}
	return &Nat{limbs: make([]uint64, limbs)}
}

// New256 returns a zero-valued 256-bit Nat (4 limbs).
func New256() *Nat { return New(4) }

// New512 returns a zero-valued 512-bit Nat (8 limbs).
func New512() *Nat { return New(8) }

// New1024 returns a zero-valued 1024-bit Nat (16 limbs).
func New1024() *Nat { return New(16) }

// New2048 returns a zero-valued 2048-bit Nat (32 limbs).
func New2048() *Nat { return New(32) }

// NewFromUint64 returns a Nat of the given width holding v.
func NewFromUint64(limbs int, v uint64) *Nat {
	x := New(limbs)
	x.limbs[0] = v
	return x
}

// NewFromBytes returns a Nat parsed from a big-endian byte sequence.
// The width is the smallest limb count that holds len(b) bytes.
func NewFromBytes(b []byte) *Nat {
	x := New((len(b) + 7) / 8)
	if err := x.SetBytes(b); err != nil {
		// Width was derived from len(b), so this cannot overflow.
		panic(err)
	}
	return x
}

// NewFromBytesLE returns a Nat parsed from a little-endian byte sequence.
func NewFromBytesLE(b []byte) *Nat {
	x := New((len(b) + 7) / 8)
	for i, c := range b {
		x.limbs[i/8] |= uint64(c) << (8 * (i % 8))
	}
	return x
}

// NewFromHex returns a Nat parsed from a hexadecimal string, with or
// without a 0x prefix. The width is derived from the digit count.
func NewFromHex(s string) (*Nat, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	v, ok := new(big.Int).SetString(s, 16)
	if !ok {
		return nil, fmt.Errorf("cannot NewFromHex: invalid hexadecimal string %q", s)
	}
	limbs := (len(s)*4 + 63) / 64
	if limbs == 0 {
		limbs = 1
	}
	x := New(limbs)
	copy(x.limbs, bignum.ToLimbs(v, limbs))
	return x, nil
}

// Limbs returns the announced limb count of x.
func (x *Nat) Limbs() int {
	return len(x.limbs)
}

// Words returns the backing limb slice of x. Mutating it mutates x.
func (x *Nat) Words() []uint64 {
	return x.limbs
}

// Clone returns a copy of x with the same width.
func (x *Nat) Clone() *Nat {
	y := New(len(x.limbs))
	copy(y.limbs, x.limbs)
	return y
}

// Set copies y into x.
func (x *Nat) Set(y *Nat) error {
	if len(x.limbs) != len(y.limbs) {
		return fmt.Errorf("cannot Set: %w", ErrLengthMismatch)
	}
	copy(x.limbs, y.limbs)
	return nil
}

// SetUint64 sets x to v, clearing all higher limbs.
func (x *Nat) SetUint64(v uint64) *Nat {
	for i := range x.limbs {
		x.limbs[i] = 0
	}
	x.limbs[0] = v
	return x
}

// Uint64 returns the least-significant limb of x.
func (x *Nat) Uint64() uint64 {
	return x.limbs[0]
}

// SetBytes sets x from a big-endian byte sequence, clearing higher limbs.
// Returns ErrOverflow if b does not fit in the width of x.
func (x *Nat) SetBytes(b []byte) error {
	if len(b) > 8*len(x.limbs) {
		// Leading zero bytes are tolerated, any payload beyond the
		// announced width is not.
		for _, c := range b[:len(b)-8*len(x.limbs)] {
			if c != 0 {
				return fmt.Errorf("cannot SetBytes: %d bytes in a %d-limb value: %w", len(b), len(x.limbs), ErrOverflow)
			}
		}
		b = b[len(b)-8*len(x.limbs):]
	}
	for i := range x.limbs {
		x.limbs[i] = 0
	}
	for i := 0; i < len(b); i++ {
		c := b[len(b)-1-i]
		x.limbs[i/8] |= uint64(c) << (8 * (i % 8))
	}
	return nil
}

// Bytes serializes x to a big-endian byte sequence of 8*Limbs() bytes.
func (x *Nat) Bytes() []byte {
	b := make([]byte, 8*len(x.limbs))
	for i, w := range x.limbs {
		binary.BigEndian.PutUint64(b[8*(len(x.limbs)-1-i):], w)
	}
	return b
}

// BytesLE serializes x to a little-endian byte sequence of 8*Limbs() bytes.
func (x *Nat) BytesLE() []byte {
	b := make([]byte, 8*len(x.limbs))
	for i, w := range x.limbs {
		binary.LittleEndian.PutUint64(b[8*i:], w)
	}
	return b
}

// String returns the value of x in hexadecimal, most significant digit first.
func (x *Nat) String() string {
	return "0x" + bignum.FromLimbs(x.limbs).Text(16)
}

// Big returns the value of x as a *big.Int.
func (x *Nat) Big() *big.Int {
	return bignum.FromLimbs(x.limbs)
}

// SetBig sets x from a non-negative *big.Int.
// Returns ErrOverflow if v does not fit in the width of x.
func (x *Nat) SetBig(v *big.Int) error {
	if v.BitLen() > 64*len(x.limbs) {
		return fmt.Errorf("cannot SetBig: %d bits in a %d-limb value: %w", v.BitLen(), len(x.limbs), ErrOverflow)
	}
	copy(x.limbs, bignum.ToLimbs(v, len(x.limbs)))
	return nil
}

// Zeroize clears the limbs of x through the constant-time layer, for
// values that held secret material.
func (x *Nat) Zeroize() {
	ct.Zero(x.limbs)
}

// WriteTo writes the limbs of x on w.
func (x *Nat) WriteTo(w buffer.Writer) (n int64, err error) {
	return buffer.WriteUint64Slice(w, x.limbs)
}

// ReadFrom reads 8*Limbs() bytes from r into x.
func (x *Nat) ReadFrom(r buffer.Reader) (n int64, err error) {
	nint, err := buffer.ReadUint64Slice(r, x.limbs)
	return int64(nint), err
}

// BinarySize returns the serialized size of x in bytes.
func (x *Nat) BinarySize() int {
	return 8 * len(x.limbs)
}
