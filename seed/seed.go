// Package seed provides deterministic, label-keyed randomness. A
// protocol round is driven by a single root seed; every place that
// needs randomness derives a child seed under a unique label, so
// identical inputs always reproduce identical outputs and no two
// statements ever share a nonce.
package seed

import (
	"crypto/cipher"

	"go.dedis.ch/kyber/v3"
	"go.dedis.ch/kyber/v3/xof/blake2xb"
	"golang.org/x/xerrors"
)

// Length is the size of the seed state in bytes.
const Length = 32

// Seed is a deterministic source of randomness.
type Seed struct {
	state []byte
}

// New draws a fresh seed from the given stream.
func New(stream cipher.Stream) Seed {
	b := make([]byte, Length)
	stream.XORKeyStream(b, b)
	return Seed{state: b}
}

// FromBytes builds a seed from exactly Length bytes of state.
func FromBytes(b []byte) (Seed, error) {
	if len(b) != Length {
		return Seed{}, xerrors.Errorf("seed: need %d bytes of state, got %d",
			Length, len(b))
	}
	state := make([]byte, Length)
	copy(state, b)
	return Seed{state: state}, nil
}

// Derive returns the child seed bound to label. The same (seed,
// label) pair always yields the same child, and children under
// distinct labels are independent.
func (s Seed) Derive(label string) Seed {
	xof := blake2xb.New(s.state)
	xof.Write([]byte(label))
	out := make([]byte, Length)
	xof.Read(out)
	return Seed{state: out}
}

// Stream returns a fresh XOF keyed by the seed state, suitable for
// picking scalars. Every call starts the stream over.
func (s Seed) Stream() kyber.XOF {
	return blake2xb.New(s.state)
}
