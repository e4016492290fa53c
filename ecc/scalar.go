package ecc

import (
	"crypto/cipher"

	"go.dedis.ch/kyber/v3"
	"golang.org/x/xerrors"
)

// Scalar is an exponent of the group tagged with its curve.
type Scalar struct {
	curve CurveType
	s     kyber.Scalar
}

// PickScalar draws a scalar of the given curve from the stream.
func PickScalar(c CurveType, stream cipher.Stream) (Scalar, error) {
	s, err := suiteFor(c)
	if err != nil {
		return Scalar{}, err
	}
	return Scalar{curve: c, s: s.Scalar().Pick(stream)}, nil
}

// ScalarFromInt returns the scalar representing v.
func ScalarFromInt(c CurveType, v int64) (Scalar, error) {
	s, err := suiteFor(c)
	if err != nil {
		return Scalar{}, err
	}
	return Scalar{curve: c, s: s.Scalar().SetInt64(v)}, nil
}

// Curve returns the curve tag of the scalar.
func (k Scalar) Curve() CurveType {
	return k.curve
}

// Add returns k+m mod the group order.
func (k Scalar) Add(m Scalar) (Scalar, error) {
	s, err := suiteFor(k.curve)
	if err != nil {
		return Scalar{}, err
	}
	if k.curve != m.curve {
		return Scalar{}, ErrCurveMismatch
	}
	return Scalar{curve: k.curve, s: s.Scalar().Add(k.s, m.s)}, nil
}

// Sub returns k-m mod the group order.
func (k Scalar) Sub(m Scalar) (Scalar, error) {
	s, err := suiteFor(k.curve)
	if err != nil {
		return Scalar{}, err
	}
	if k.curve != m.curve {
		return Scalar{}, ErrCurveMismatch
	}
	return Scalar{curve: k.curve, s: s.Scalar().Sub(k.s, m.s)}, nil
}

// Mul returns k*m mod the group order.
func (k Scalar) Mul(m Scalar) (Scalar, error) {
	s, err := suiteFor(k.curve)
	if err != nil {
		return Scalar{}, err
	}
	if k.curve != m.curve {
		return Scalar{}, ErrCurveMismatch
	}
	return Scalar{curve: k.curve, s: s.Scalar().Mul(k.s, m.s)}, nil
}

// Equal reports whether k and m are the same scalar on the same curve.
func (k Scalar) Equal(m Scalar) bool {
	if k.curve != m.curve || k.s == nil || m.s == nil {
		return false
	}
	return k.s.Equal(m.s)
}

// Marshal returns the curve tag followed by the canonical encoding of
// the scalar.
func (k Scalar) Marshal() ([]byte, error) {
	if _, err := suiteFor(k.curve); err != nil {
		return nil, err
	}
	buf, err := k.s.MarshalBinary()
	if err != nil {
		return nil, xerrors.Errorf("ecc: marshalling scalar: %v", err)
	}
	return append([]byte{byte(k.curve)}, buf...), nil
}

// UnmarshalScalar decodes a scalar produced by Marshal.
func UnmarshalScalar(data []byte) (Scalar, error) {
	if len(data) < 1 {
		return Scalar{}, xerrors.New("ecc: scalar encoding too short")
	}
	c := CurveType(data[0])
	s, err := suiteFor(c)
	if err != nil {
		return Scalar{}, err
	}
	sc := s.Scalar()
	if err := sc.UnmarshalBinary(data[1:]); err != nil {
		return Scalar{}, xerrors.Errorf("ecc: invalid scalar encoding: %v", err)
	}
	return Scalar{curve: c, s: sc}, nil
}
