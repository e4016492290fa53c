// Package poly holds the secret-sharing polynomials of a dealer and
// the binding commitments a dealing publishes over them, in the
// Feldman (Simple) and Pedersen variants.
package poly

import (
	"crypto/cipher"

	"go.dedis.ch/tecdsa"
	"go.dedis.ch/tecdsa/ecc"
	"golang.org/x/xerrors"
)

// Polynomial is a polynomial over the scalar field of a curve.
// coeffs[0] is the constant term, which carries the shared secret.
type Polynomial struct {
	curve  ecc.CurveType
	coeffs []ecc.Scalar
}

// NewRandom samples a polynomial of the given degree from the stream.
func NewRandom(c ecc.CurveType, degree int, stream cipher.Stream) (*Polynomial, error) {
	if degree < 0 {
		return nil, xerrors.Errorf("poly: invalid degree %d", degree)
	}
	coeffs := make([]ecc.Scalar, degree+1)
	for i := range coeffs {
		k, err := ecc.PickScalar(c, stream)
		if err != nil {
			return nil, err
		}
		coeffs[i] = k
	}
	return &Polynomial{curve: c, coeffs: coeffs}, nil
}

// NewRandomWithSecret samples a polynomial of the given degree whose
// constant term is the secret.
func NewRandomWithSecret(secret ecc.Scalar, degree int, stream cipher.Stream) (*Polynomial, error) {
	p, err := NewRandom(secret.Curve(), degree, stream)
	if err != nil {
		return nil, err
	}
	p.coeffs[0] = secret
	return p, nil
}

// Curve returns the curve the polynomial is defined over.
func (p *Polynomial) Curve() ecc.CurveType {
	return p.curve
}

// Degree returns the degree of the polynomial.
func (p *Polynomial) Degree() int {
	return len(p.coeffs) - 1
}

// EvalAt evaluates the polynomial at the share point of the given
// receiver, x = index+1. Index zero maps to x=1 so that the constant
// term is never handed out as a share.
func (p *Polynomial) EvalAt(index tecdsa.NodeIndex) (ecc.Scalar, error) {
	x, err := ecc.ScalarFromInt(p.curve, int64(index)+1)
	if err != nil {
		return ecc.Scalar{}, err
	}
	// Horner from the highest coefficient down.
	acc := p.coeffs[len(p.coeffs)-1]
	for i := len(p.coeffs) - 2; i >= 0; i-- {
		acc, err = acc.Mul(x)
		if err != nil {
			return ecc.Scalar{}, err
		}
		acc, err = acc.Add(p.coeffs[i])
		if err != nil {
			return ecc.Scalar{}, err
		}
	}
	return acc, nil
}
