package ring

import (
	"github.com/arxislabs/nucleus/utils"
	"github.com/arxislabs/nucleus/utils/buffer"
)

// Poly is a polynomial of the SubRing, stored as a dense coefficient
// vector of length N.
type Poly struct {
	Coeffs []uint64
}

// NewPoly allocates a zero polynomial of the SubRing.
func (s *SubRing) NewPoly() Poly {
	return Poly{Coeffs: make([]uint64, s.N)}
}

// CopyNew returns a deep copy of p.
func (p Poly) CopyNew() Poly {
	coeffs := make([]uint64, len(p.Coeffs))
	copy(coeffs, p.Coeffs)
	return Poly{Coeffs: coeffs}
}

// Copy copies the coefficients of q on p.
func (p Poly) Copy(q Poly) {
	copy(p.Coeffs, q.Coeffs)
}

// Equal reports whether p and q have identical coefficients.
func (p Poly) Equal(q Poly) bool {
	return utils.EqualSliceUint64(p.Coeffs, q.Coeffs)
}

// N returns the number of coefficients of p.
func (p Poly) N() int {
	return len(p.Coeffs)
}

// BinarySize returns the serialized size of p in bytes.
func (p Poly) BinarySize() int {
	return 8 * len(p.Coeffs)
}

// WriteTo writes the coefficients of p on w.
func (p Poly) WriteTo(w buffer.Writer) (n int64, err error) {
	return buffer.WriteUint64Slice(w, p.Coeffs)
}

// ReadFrom reads len(p.Coeffs) coefficients from r into p.
func (p Poly) ReadFrom(r buffer.Reader) (n int64, err error) {
	nint, err := buffer.ReadUint64Slice(r, p.Coeffs)
	return int64(nint), err
}

// Add evaluates p3 = p1 + p2 mod q.
func (s *SubRing) Add(p1, p2, p3 Poly) {
	addvec(p1.Coeffs, p2.Coeffs, p3.Coeffs, s.Modulus)
}

// Sub evaluates p3 = p1 - p2 mod q.
func (s *SubRing) Sub(p1, p2, p3 Poly) {
	subvec(p1.Coeffs, p2.Coeffs, p3.Coeffs, s.Modulus)
}

// Neg evaluates p2 = -p1 mod q.
func (s *SubRing) Neg(p1, p2 Poly) {
	negvec(p1.Coeffs, p2.Coeffs, s.Modulus)
}

// Reduce evaluates p2 = p1 mod q on arbitrary 64-bit coefficients.
func (s *SubRing) Reduce(p1, p2 Poly) {
	reducevec(p1.Coeffs, p2.Coeffs, s.Modulus, s.BRedConstant)
}

// MForm brings the coefficients of p1 into the Montgomery domain on p2.
func (s *SubRing) MForm(p1, p2 Poly) {
	mformvec(p1.Coeffs, p2.Coeffs, s.Modulus, s.BRedConstant)
}

// IMForm takes the coefficients of p1 out of the Montgomery domain on p2.
func (s *SubRing) IMForm(p1, p2 Poly) {
	imformvec(p1.Coeffs, p2.Coeffs, s.Modulus, s.MRedConstant)
}

// MulCoeffsMontgomery evaluates p3 = p1 * p2 coefficient-wise, with p2
// in the Montgomery domain.
func (s *SubRing) MulCoeffsMontgomery(p1, p2, p3 Poly) {
	mulcoeffsmontgomeryvec(p1.Coeffs, p2.Coeffs, p3.Coeffs, s.Modulus, s.MRedConstant)
}

// MulCoeffsBarrett evaluates p3 = p1 * p2 coefficient-wise with Barrett
// reduction, no Montgomery domain required.
func (s *SubRing) MulCoeffsBarrett(p1, p2, p3 Poly) {
	mulcoeffsbarrettvec(p1.Coeffs, p2.Coeffs, p3.Coeffs, s.Modulus, s.BRedConstant)
}

// MulScalar evaluates p2 = p1 * scalar mod q.
func (s *SubRing) MulScalar(p1 Poly, scalar uint64, p2 Poly) {
	mulscalarmontgomeryvec(p1.Coeffs, MForm(BRedAdd(scalar, s.Modulus, s.BRedConstant), s.Modulus, s.BRedConstant), p2.Coeffs, s.Modulus, s.MRedConstant)
}

// MulByMonomial evaluates p2 = p1 * X^k in the ring Z_q[X]/(X^N - 1),
// which is a cyclic rotation of the coefficient vector. k may be
// negative.
func (s *SubRing) MulByMonomial(p1 Poly, k int, p2 Poly) {
	shift := ((-k % s.N) + s.N) % s.N
	copy(p2.Coeffs, utils.RotateUint64Slice(p1.Coeffs, shift))
}

// MulPoly evaluates p3 = p1 * p2 in the ring Z_q[X]/(X^N - 1), i.e.
// the cyclic convolution of the coefficient vectors, through the
// transform domain: both operands are transformed, multiplied
// coefficient-wise and transformed back.
func (s *SubRing) MulPoly(p1, p2, p3 Poly) {
	t1, t2 := s.NewPoly(), s.NewPoly()
	s.NTT(p1.Coeffs, t1.Coeffs)
	s.NTT(p2.Coeffs, t2.Coeffs)
	s.MForm(t2, t2)
	s.MulCoeffsMontgomery(t1, t2, p3)
	s.INTT(p3.Coeffs, p3.Coeffs)
}
