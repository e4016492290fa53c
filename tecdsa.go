// Package tecdsa holds the interactive distributed key generation
// (IDKG) building blocks for threshold ECDSA, most notably the
// complaint sub-protocol: a receiver who cannot open a dealer's
// encrypted share proves, without revealing its own key, that the
// dealer's published commitment and the share it actually delivered
// are inconsistent.
//
// The packages are layered bottom up: ecc wraps kyber groups with
// curve-tagged points and scalars, seed provides label-keyed
// deterministic randomness, ro builds domain-separated transcript
// digests, zk implements the proof of discrete log equivalence, poly
// and mega hold the commitment and encryption sides of a dealing, and
// complaint ties them together.
package tecdsa

// NodeIndex identifies a participant of an IDKG round, dealer or
// receiver. Indices are assigned by the surrounding protocol and are
// unique within a round.
type NodeIndex uint32
