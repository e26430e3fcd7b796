package sampling

import (
	"github.com/zeebo/blake3"
)

// XOFPRNG is a deterministic PRNG built on the blake3 extendable-output
// function. Two instances seeded with the same bytes produce the same
// stream, which makes it suitable for reproducible operand derivation
// across test runs and machines.
type XOFPRNG struct {
	seed   []byte
	digest *blake3.Digest
}

// NewXOFPRNG returns a new XOFPRNG seeded with seed.
func NewXOFPRNG(seed []byte) *XOFPRNG {
	h := blake3.New()
	h.Write(seed)
	return &XOFPRNG{
		seed:   append([]byte(nil), seed...),
		digest: h.Digest(),
	}
}

// Read reads bytes from the XOF stream into sum.
func (prng *XOFPRNG) Read(sum []byte) (n int, err error) {
	return prng.digest.Read(sum)
}

// Reset rewinds the stream to its initial state.
func (prng *XOFPRNG) Reset() {
	h := blake3.New()
	h.Write(prng.seed)
	prng.digest = h.Digest()
}
