// Package mega implements the multi-recipient hybrid encryption used
// to deliver commitment openings to the receivers of a dealing. One
// ephemeral point keys the whole batch: each receiver's opening is
// masked with a scalar derived from the Diffie-Hellman shared secret
// between the ephemeral key and that receiver's public key, bound to
// the full protocol context through the random oracle.
package mega

import (
	"crypto/cipher"

	"go.dedis.ch/tecdsa/ecc"
)

// PrivateKey is a receiver's decryption key.
type PrivateKey struct {
	scalar ecc.Scalar
}

// PublicKey is the matching encryption key, public = secret*G.
type PublicKey struct {
	point ecc.Point
}

// GenerateKeyPair draws a keypair on the given curve from the stream.
func GenerateKeyPair(c ecc.CurveType, stream cipher.Stream) (*PrivateKey, *PublicKey, error) {
	secret, err := ecc.PickScalar(c, stream)
	if err != nil {
		return nil, nil, err
	}
	g, err := ecc.Generator(c)
	if err != nil {
		return nil, nil, err
	}
	public, err := g.Mul(secret)
	if err != nil {
		return nil, nil, err
	}
	return &PrivateKey{scalar: secret}, &PublicKey{point: public}, nil
}

// Scalar returns the secret scalar.
func (sk *PrivateKey) Scalar() ecc.Scalar {
	return sk.scalar
}

// Curve returns the curve of the key.
func (sk *PrivateKey) Curve() ecc.CurveType {
	return sk.scalar.Curve()
}

// Point returns the public point.
func (pk *PublicKey) Point() ecc.Point {
	return pk.point
}

// Curve returns the curve of the key.
func (pk *PublicKey) Curve() ecc.CurveType {
	return pk.point.Curve()
}

// Marshal returns the tagged encoding of the secret scalar.
func (sk *PrivateKey) Marshal() ([]byte, error) {
	return sk.scalar.Marshal()
}

// UnmarshalPrivateKey decodes a private key produced by Marshal.
func UnmarshalPrivateKey(data []byte) (*PrivateKey, error) {
	s, err := ecc.UnmarshalScalar(data)
	if err != nil {
		return nil, err
	}
	return &PrivateKey{scalar: s}, nil
}

// Marshal returns the tagged encoding of the public point.
func (pk *PublicKey) Marshal() ([]byte, error) {
	return pk.point.Marshal()
}

// UnmarshalPublicKey decodes a public key produced by Marshal.
func UnmarshalPublicKey(data []byte) (*PublicKey, error) {
	p, err := ecc.UnmarshalPoint(data)
	if err != nil {
		return nil, err
	}
	return &PublicKey{point: p}, nil
}
