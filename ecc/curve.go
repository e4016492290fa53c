// Package ecc wraps kyber groups with curve-tagged points and
// scalars. Every value carries the CurveType it lives on, and any
// operation combining values of different curves is rejected with
// ErrCurveMismatch instead of producing undefined arithmetic.
package ecc

import (
	"go.dedis.ch/kyber/v3/group/edwards25519"
	"go.dedis.ch/kyber/v3/group/nist"
	"go.dedis.ch/kyber/v3/suites"
	"golang.org/x/xerrors"
)

// CurveType tags a point or scalar with the curve it belongs to.
type CurveType byte

const (
	// Ed25519 is the twisted Edwards curve used across dedis projects.
	Ed25519 CurveType = iota + 1
	// P256 is the NIST P-256 curve.
	P256
)

// Errors returned by curve-tag validation.
var (
	ErrCurveMismatch = xerrors.New("ecc: operation mixes curve types")
	ErrUnknownCurve  = xerrors.New("ecc: unknown curve type")
)

var curves = map[CurveType]suites.Suite{
	Ed25519: edwards25519.NewBlakeSHA256Ed25519(),
	P256:    nist.NewBlakeSHA256P256(),
}

func (c CurveType) String() string {
	switch c {
	case Ed25519:
		return "Ed25519"
	case P256:
		return "P256"
	default:
		return "unknown"
	}
}

// CurveTypeByName returns the curve type registered under the given
// name, as used in configuration files.
func CurveTypeByName(name string) (CurveType, error) {
	for _, c := range []CurveType{Ed25519, P256} {
		if c.String() == name {
			return c, nil
		}
	}
	return 0, ErrUnknownCurve
}

// CurveTypes lists the supported curves.
func CurveTypes() []CurveType {
	return []CurveType{Ed25519, P256}
}

func suiteFor(c CurveType) (suites.Suite, error) {
	s, ok := curves[c]
	if !ok {
		return nil, ErrUnknownCurve
	}
	return s, nil
}
