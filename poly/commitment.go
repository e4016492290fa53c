package poly

import (
	"go.dedis.ch/tecdsa"
	"go.dedis.ch/tecdsa/ecc"
	"golang.org/x/xerrors"
)

// Type identifies the commitment variant of a dealing.
type Type int

const (
	// Simple is a Feldman commitment: one point a_j*G per
	// coefficient.
	Simple Type = iota + 1
	// Pedersen is a perfectly hiding commitment: a_j*G + b_j*H per
	// coefficient, with b_j the coefficients of a masking polynomial.
	Pedersen
)

func (t Type) String() string {
	switch t {
	case Simple:
		return "Simple"
	case Pedersen:
		return "Pedersen"
	default:
		return "unknown"
	}
}

// Opening is a decrypted witness for one receiver's share of a
// commitment. Openings come out of the decryption paths only; the
// unexported method keeps other packages from adding variants.
type Opening interface {
	Type() Type
	opening()
}

// SimpleOpening opens a Simple commitment with the share value.
type SimpleOpening struct {
	Value ecc.Scalar
}

// Type returns Simple.
func (SimpleOpening) Type() Type { return Simple }

func (SimpleOpening) opening() {}

// PedersenOpening opens a Pedersen commitment with the share value
// and its mask.
type PedersenOpening struct {
	Value ecc.Scalar
	Mask  ecc.Scalar
}

// Type returns Pedersen.
func (PedersenOpening) Type() Type { return Pedersen }

func (PedersenOpening) opening() {}

// Commitment is the published binding commitment of a dealing.
type Commitment interface {
	Type() Type
	Curve() ecc.CurveType
	Points() []ecc.Point
	// CheckOpening reports whether the opening matches the
	// commitment at the share point of the given receiver index. An
	// opening of the wrong variant is an error, not a failed check.
	CheckOpening(index tecdsa.NodeIndex, op Opening) (bool, error)
}

// SimpleCommitment is the Feldman variant.
type SimpleCommitment struct {
	Commitments []ecc.Point
}

// NewSimpleCommitment commits to every coefficient of values.
func NewSimpleCommitment(values *Polynomial) (*SimpleCommitment, error) {
	g, err := ecc.Generator(values.Curve())
	if err != nil {
		return nil, err
	}
	points := make([]ecc.Point, len(values.coeffs))
	for i, a := range values.coeffs {
		points[i], err = g.Mul(a)
		if err != nil {
			return nil, err
		}
	}
	return &SimpleCommitment{Commitments: points}, nil
}

// Type returns Simple.
func (c *SimpleCommitment) Type() Type { return Simple }

// Curve returns the curve of the commitment points.
func (c *SimpleCommitment) Curve() ecc.CurveType {
	return c.Commitments[0].Curve()
}

// Points returns the commitment points.
func (c *SimpleCommitment) Points() []ecc.Point {
	return c.Commitments
}

// CheckOpening checks value*G against the commitment evaluated at the
// receiver's share point.
func (c *SimpleCommitment) CheckOpening(index tecdsa.NodeIndex, op Opening) (bool, error) {
	simple, ok := op.(SimpleOpening)
	if !ok {
		return false, xerrors.Errorf("poly: unexpected opening type %v for Simple commitment",
			op.Type())
	}
	g, err := ecc.Generator(c.Curve())
	if err != nil {
		return false, err
	}
	lhs, err := g.Mul(simple.Value)
	if err != nil {
		return false, err
	}
	rhs, err := evalCommitment(c.Commitments, index)
	if err != nil {
		return false, err
	}
	return lhs.Equal(rhs), nil
}

// PedersenCommitment is the perfectly hiding variant.
type PedersenCommitment struct {
	Commitments []ecc.Point
}

// NewPedersenCommitment commits to the coefficients of values,
// blinded coefficient-wise by those of masks.
func NewPedersenCommitment(values, masks *Polynomial) (*PedersenCommitment, error) {
	if values.Curve() != masks.Curve() {
		return nil, ecc.ErrCurveMismatch
	}
	if len(values.coeffs) != len(masks.coeffs) {
		return nil, xerrors.Errorf("poly: value and mask polynomials differ in degree: %d != %d",
			values.Degree(), masks.Degree())
	}
	g, err := ecc.Generator(values.Curve())
	if err != nil {
		return nil, err
	}
	h, err := ecc.GeneratorH(values.Curve())
	if err != nil {
		return nil, err
	}
	points := make([]ecc.Point, len(values.coeffs))
	for i := range values.coeffs {
		ag, err := g.Mul(values.coeffs[i])
		if err != nil {
			return nil, err
		}
		bh, err := h.Mul(masks.coeffs[i])
		if err != nil {
			return nil, err
		}
		points[i], err = ag.Add(bh)
		if err != nil {
			return nil, err
		}
	}
	return &PedersenCommitment{Commitments: points}, nil
}

// Type returns Pedersen.
func (c *PedersenCommitment) Type() Type { return Pedersen }

// Curve returns the curve of the commitment points.
func (c *PedersenCommitment) Curve() ecc.CurveType {
	return c.Commitments[0].Curve()
}

// Points returns the commitment points.
func (c *PedersenCommitment) Points() []ecc.Point {
	return c.Commitments
}

// CheckOpening checks value*G + mask*H against the commitment
// evaluated at the receiver's share point.
func (c *PedersenCommitment) CheckOpening(index tecdsa.NodeIndex, op Opening) (bool, error) {
	ped, ok := op.(PedersenOpening)
	if !ok {
		return false, xerrors.Errorf("poly: unexpected opening type %v for Pedersen commitment",
			op.Type())
	}
	g, err := ecc.Generator(c.Curve())
	if err != nil {
		return false, err
	}
	h, err := ecc.GeneratorH(c.Curve())
	if err != nil {
		return false, err
	}
	vg, err := g.Mul(ped.Value)
	if err != nil {
		return false, err
	}
	mh, err := h.Mul(ped.Mask)
	if err != nil {
		return false, err
	}
	lhs, err := vg.Add(mh)
	if err != nil {
		return false, err
	}
	rhs, err := evalCommitment(c.Commitments, index)
	if err != nil {
		return false, err
	}
	return lhs.Equal(rhs), nil
}

// evalCommitment evaluates the committed polynomial in the exponent
// at x = index+1 with Horner's rule.
func evalCommitment(points []ecc.Point, index tecdsa.NodeIndex) (ecc.Point, error) {
	x, err := ecc.ScalarFromInt(points[0].Curve(), int64(index)+1)
	if err != nil {
		return ecc.Point{}, err
	}
	acc := points[len(points)-1]
	for i := len(points) - 2; i >= 0; i-- {
		acc, err = acc.Mul(x)
		if err != nil {
			return ecc.Point{}, err
		}
		acc, err = acc.Add(points[i])
		if err != nil {
			return ecc.Point{}, err
		}
	}
	return acc, nil
}
