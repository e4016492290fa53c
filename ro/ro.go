// Package ro implements the domain-separated random oracle used to
// bind proofs and keys to their protocol context. Named inputs are
// length-prefixed and absorbed in insertion order, so two parties
// agree on the digest exactly when they add the same fields, with the
// same labels, in the same order.
package ro

import (
	"crypto/sha256"
	"encoding/binary"
	"hash"

	"go.dedis.ch/kyber/v3/xof/blake2xb"
	"go.dedis.ch/tecdsa/ecc"
	"golang.org/x/xerrors"
)

// DigestLength is the size of the transcript digest in bytes.
const DigestLength = 32

// RandomOracle accumulates named inputs under a domain string.
type RandomOracle struct {
	h    hash.Hash
	seen map[string]bool
}

// New returns a random oracle separated under the given domain.
func New(domain string) *RandomOracle {
	ro := &RandomOracle{
		h:    sha256.New(),
		seen: make(map[string]bool),
	}
	writeChunk(ro.h, []byte(domain))
	return ro
}

func writeChunk(h hash.Hash, data []byte) {
	var length [4]byte
	binary.BigEndian.PutUint32(length[:], uint32(len(data)))
	h.Write(length[:])
	h.Write(data)
}

func (ro *RandomOracle) add(label string, data []byte) error {
	if ro.seen[label] {
		return xerrors.Errorf("ro: duplicate input label %q", label)
	}
	ro.seen[label] = true
	writeChunk(ro.h, []byte(label))
	writeChunk(ro.h, data)
	return nil
}

// AddBytes absorbs an arbitrary byte string under label.
func (ro *RandomOracle) AddBytes(label string, data []byte) error {
	return ro.add(label, data)
}

// AddUint32 absorbs an unsigned integer under label.
func (ro *RandomOracle) AddUint32(label string, v uint32) error {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], v)
	return ro.add(label, buf[:])
}

// AddPoint absorbs the tagged encoding of a point under label.
func (ro *RandomOracle) AddPoint(label string, p ecc.Point) error {
	buf, err := p.Marshal()
	if err != nil {
		return err
	}
	return ro.add(label, buf)
}

// Digest returns the transcript digest over everything absorbed so
// far.
func (ro *RandomOracle) Digest() []byte {
	return ro.h.Sum(nil)
}

// Scalar maps the transcript digest to a scalar of the given curve.
func (ro *RandomOracle) Scalar(c ecc.CurveType) (ecc.Scalar, error) {
	return ecc.PickScalar(c, blake2xb.New(ro.Digest()))
}
