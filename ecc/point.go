package ecc

import (
	"go.dedis.ch/kyber/v3"
	"golang.org/x/xerrors"
)

// generatorHSeed feeds the XOF that derives the second generator H.
// Nobody knows the discrete log of H with respect to the base point.
const generatorHSeed = "tecdsa-generator-h"

// Point is a group element tagged with its curve.
type Point struct {
	curve CurveType
	p     kyber.Point
}

// Generator returns the standard base point G of the given curve.
func Generator(c CurveType) (Point, error) {
	s, err := suiteFor(c)
	if err != nil {
		return Point{}, err
	}
	return Point{curve: c, p: s.Point().Base()}, nil
}

// GeneratorH returns the alternate generator H used by Pedersen
// commitments, derived by hashing a fixed domain string to the curve.
func GeneratorH(c CurveType) (Point, error) {
	s, err := suiteFor(c)
	if err != nil {
		return Point{}, err
	}
	return Point{curve: c, p: s.Point().Pick(s.XOF([]byte(generatorHSeed)))}, nil
}

// Curve returns the curve tag of the point.
func (p Point) Curve() CurveType {
	return p.curve
}

// Add returns p+q.
func (p Point) Add(q Point) (Point, error) {
	s, err := suiteFor(p.curve)
	if err != nil {
		return Point{}, err
	}
	if p.curve != q.curve {
		return Point{}, ErrCurveMismatch
	}
	return Point{curve: p.curve, p: s.Point().Add(p.p, q.p)}, nil
}

// Sub returns p-q.
func (p Point) Sub(q Point) (Point, error) {
	s, err := suiteFor(p.curve)
	if err != nil {
		return Point{}, err
	}
	if p.curve != q.curve {
		return Point{}, ErrCurveMismatch
	}
	return Point{curve: p.curve, p: s.Point().Sub(p.p, q.p)}, nil
}

// Mul returns k*p.
func (p Point) Mul(k Scalar) (Point, error) {
	s, err := suiteFor(p.curve)
	if err != nil {
		return Point{}, err
	}
	if p.curve != k.curve {
		return Point{}, ErrCurveMismatch
	}
	return Point{curve: p.curve, p: s.Point().Mul(k.s, p.p)}, nil
}

// Equal reports whether p and q are the same point on the same curve.
func (p Point) Equal(q Point) bool {
	if p.curve != q.curve || p.p == nil || q.p == nil {
		return false
	}
	return p.p.Equal(q.p)
}

// Marshal returns the curve tag followed by the canonical encoding of
// the point.
func (p Point) Marshal() ([]byte, error) {
	if _, err := suiteFor(p.curve); err != nil {
		return nil, err
	}
	buf, err := p.p.MarshalBinary()
	if err != nil {
		return nil, xerrors.Errorf("ecc: marshalling point: %v", err)
	}
	return append([]byte{byte(p.curve)}, buf...), nil
}

// UnmarshalPoint decodes a point produced by Marshal, validating both
// the curve tag and the point encoding.
func UnmarshalPoint(data []byte) (Point, error) {
	if len(data) < 1 {
		return Point{}, xerrors.New("ecc: point encoding too short")
	}
	c := CurveType(data[0])
	s, err := suiteFor(c)
	if err != nil {
		return Point{}, err
	}
	p := s.Point()
	if err := p.UnmarshalBinary(data[1:]); err != nil {
		return Point{}, xerrors.Errorf("ecc: invalid point encoding: %v", err)
	}
	return Point{curve: c, p: p}, nil
}
