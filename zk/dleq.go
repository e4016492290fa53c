// Package zk implements a non-interactive zero-knowledge proof of
// discrete logarithm equivalence: knowledge of a scalar x such that
// public = x*base1 and shared = x*base2 for two independent base
// points. The proof is made non-interactive with a Fiat-Shamir
// challenge drawn from a domain-separated random oracle over the full
// statement and the caller's associated data.
package zk

import (
	"go.dedis.ch/tecdsa/ecc"
	"go.dedis.ch/tecdsa/ro"
	"go.dedis.ch/tecdsa/seed"
	"golang.org/x/xerrors"
)

const proofDomain = "tecdsa-zk-proof-of-dlog-eq"

// ErrInvalidProof is returned when the recomputed challenge does not
// match the one in the proof.
var ErrInvalidProof = xerrors.New("zk: invalid proof of dlog equivalence")

// Proof is the compact transcript of the proof: the Fiat-Shamir
// challenge and the response. The verifier reconstructs the prover's
// commitments from these and checks the challenge matches.
type Proof struct {
	Challenge ecc.Scalar
	Response  ecc.Scalar
}

// Verification is the evidence of a successful Verify call. It wraps
// the shared point whose provenance the proof established, and is
// required by every operation that consumes an asserted shared
// secret. This keeps the proof check structurally in front of any use
// of attacker-supplied points.
type Verification struct {
	shared ecc.Point
}

// SharedSecret returns the point the proof vouched for.
func (v *Verification) SharedSecret() ecc.Point {
	return v.shared
}

func challenge(base1, base2, public, shared, comm1, comm2 ecc.Point,
	assocData []byte) (ecc.Scalar, error) {
	oracle := ro.New(proofDomain)
	if err := oracle.AddPoint("base-g", base1); err != nil {
		return ecc.Scalar{}, err
	}
	if err := oracle.AddPoint("base-h", base2); err != nil {
		return ecc.Scalar{}, err
	}
	if err := oracle.AddPoint("public", public); err != nil {
		return ecc.Scalar{}, err
	}
	if err := oracle.AddPoint("shared", shared); err != nil {
		return ecc.Scalar{}, err
	}
	if err := oracle.AddPoint("commitment-g", comm1); err != nil {
		return ecc.Scalar{}, err
	}
	if err := oracle.AddPoint("commitment-h", comm2); err != nil {
		return ecc.Scalar{}, err
	}
	if err := oracle.AddBytes("associated-data", assocData); err != nil {
		return ecc.Scalar{}, err
	}
	return oracle.Scalar(base1.Curve())
}

// Create proves knowledge of secret such that secret*base1 and
// secret*base2 are the implicit public and shared points. The seed is
// the sole source of the ephemeral nonce: callers must derive a fresh
// seed per statement, as reusing one across two statements with the
// same secret leaks the secret.
func Create(sd seed.Seed, secret ecc.Scalar, base1, base2 ecc.Point,
	assocData []byte) (*Proof, error) {
	c := secret.Curve()
	if base1.Curve() != c || base2.Curve() != c {
		return nil, ecc.ErrCurveMismatch
	}

	public, err := base1.Mul(secret)
	if err != nil {
		return nil, err
	}
	shared, err := base2.Mul(secret)
	if err != nil {
		return nil, err
	}

	nonce, err := ecc.PickScalar(c, sd.Stream())
	if err != nil {
		return nil, err
	}
	comm1, err := base1.Mul(nonce)
	if err != nil {
		return nil, err
	}
	comm2, err := base2.Mul(nonce)
	if err != nil {
		return nil, err
	}

	chal, err := challenge(base1, base2, public, shared, comm1, comm2, assocData)
	if err != nil {
		return nil, err
	}
	product, err := chal.Mul(secret)
	if err != nil {
		return nil, err
	}
	response, err := nonce.Add(product)
	if err != nil {
		return nil, err
	}

	return &Proof{Challenge: chal, Response: response}, nil
}

// Verify checks that the proof relates (base1, public) and (base2,
// shared) through one common scalar. On success it returns the
// Verification token for the shared point; it fails closed on any
// mismatch.
func (p *Proof) Verify(base1, base2, public, shared ecc.Point,
	assocData []byte) (*Verification, error) {
	c := base1.Curve()
	if base2.Curve() != c || public.Curve() != c || shared.Curve() != c ||
		p.Challenge.Curve() != c || p.Response.Curve() != c {
		return nil, ecc.ErrCurveMismatch
	}

	// Reconstruct the prover's commitments: s*B - c*P equals the
	// nonce commitment exactly when s = nonce + c*x and P = x*B.
	comm1, err := subMul(base1, public, p.Response, p.Challenge)
	if err != nil {
		return nil, err
	}
	comm2, err := subMul(base2, shared, p.Response, p.Challenge)
	if err != nil {
		return nil, err
	}

	chal, err := challenge(base1, base2, public, shared, comm1, comm2, assocData)
	if err != nil {
		return nil, err
	}
	if !chal.Equal(p.Challenge) {
		return nil, ErrInvalidProof
	}
	return &Verification{shared: shared}, nil
}

func subMul(base, result ecc.Point, s, c ecc.Scalar) (ecc.Point, error) {
	sb, err := base.Mul(s)
	if err != nil {
		return ecc.Point{}, err
	}
	cr, err := result.Mul(c)
	if err != nil {
		return ecc.Point{}, err
	}
	return sb.Sub(cr)
}
