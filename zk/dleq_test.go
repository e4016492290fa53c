package zk

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"go.dedis.ch/kyber/v3/util/random"
	"go.dedis.ch/tecdsa/ecc"
	"go.dedis.ch/tecdsa/seed"
)

type statement struct {
	secret ecc.Scalar
	base1  ecc.Point
	base2  ecc.Point
	public ecc.Point
	shared ecc.Point
}

func newStatement(t *testing.T, c ecc.CurveType) statement {
	secret, err := ecc.PickScalar(c, random.New())
	require.NoError(t, err)
	base1, err := ecc.Generator(c)
	require.NoError(t, err)
	eph, err := ecc.PickScalar(c, random.New())
	require.NoError(t, err)
	base2, err := base1.Mul(eph)
	require.NoError(t, err)
	public, err := base1.Mul(secret)
	require.NoError(t, err)
	shared, err := base2.Mul(secret)
	require.NoError(t, err)
	return statement{secret, base1, base2, public, shared}
}

func testSeed(t *testing.T, b byte) seed.Seed {
	sd, err := seed.FromBytes(bytes.Repeat([]byte{b}, seed.Length))
	require.NoError(t, err)
	return sd
}

func TestCreateVerify(t *testing.T) {
	for _, c := range ecc.CurveTypes() {
		st := newStatement(t, c)
		ad := []byte("round-1")

		proof, err := Create(testSeed(t, 1), st.secret, st.base1, st.base2, ad)
		require.NoError(t, err)

		ver, err := proof.Verify(st.base1, st.base2, st.public, st.shared, ad)
		require.NoError(t, err)
		require.True(t, ver.SharedSecret().Equal(st.shared))
	}
}

func TestDeterministic(t *testing.T) {
	st := newStatement(t, ecc.Ed25519)
	ad := []byte("round-1")

	p1, err := Create(testSeed(t, 7), st.secret, st.base1, st.base2, ad)
	require.NoError(t, err)
	p2, err := Create(testSeed(t, 7), st.secret, st.base1, st.base2, ad)
	require.NoError(t, err)
	require.True(t, p1.Challenge.Equal(p2.Challenge))
	require.True(t, p1.Response.Equal(p2.Response))

	// A different seed gives a different transcript.
	p3, err := Create(testSeed(t, 8), st.secret, st.base1, st.base2, ad)
	require.NoError(t, err)
	require.False(t, p1.Response.Equal(p3.Response))
}

func TestWrongAssocData(t *testing.T) {
	st := newStatement(t, ecc.Ed25519)
	proof, err := Create(testSeed(t, 1), st.secret, st.base1, st.base2, []byte("a"))
	require.NoError(t, err)

	_, err = proof.Verify(st.base1, st.base2, st.public, st.shared, []byte("b"))
	require.Equal(t, ErrInvalidProof, err)
}

func TestWrongStatement(t *testing.T) {
	st := newStatement(t, ecc.Ed25519)
	ad := []byte("ad")
	proof, err := Create(testSeed(t, 1), st.secret, st.base1, st.base2, ad)
	require.NoError(t, err)

	// Tampered shared point.
	bad, err := st.shared.Add(st.base1)
	require.NoError(t, err)
	_, err = proof.Verify(st.base1, st.base2, st.public, bad, ad)
	require.Equal(t, ErrInvalidProof, err)

	// Swapped bases.
	_, err = proof.Verify(st.base2, st.base1, st.public, st.shared, ad)
	require.Equal(t, ErrInvalidProof, err)

	// Tampered response scalar.
	one, err := ecc.ScalarFromInt(ecc.Ed25519, 1)
	require.NoError(t, err)
	tampered, err := proof.Response.Add(one)
	require.NoError(t, err)
	badProof := &Proof{Challenge: proof.Challenge, Response: tampered}
	_, err = badProof.Verify(st.base1, st.base2, st.public, st.shared, ad)
	require.Equal(t, ErrInvalidProof, err)
}

func TestCurveMismatch(t *testing.T) {
	st := newStatement(t, ecc.Ed25519)
	other := newStatement(t, ecc.P256)
	ad := []byte("ad")

	_, err := Create(testSeed(t, 1), st.secret, other.base1, st.base2, ad)
	require.Equal(t, ecc.ErrCurveMismatch, err)

	proof, err := Create(testSeed(t, 1), st.secret, st.base1, st.base2, ad)
	require.NoError(t, err)
	_, err = proof.Verify(st.base1, st.base2, other.public, st.shared, ad)
	require.Equal(t, ecc.ErrCurveMismatch, err)
}
