package ro

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.dedis.ch/kyber/v3/util/random"
	"go.dedis.ch/tecdsa/ecc"
)

func fill(t *testing.T, ro *RandomOracle) {
	require.NoError(t, ro.AddBytes("data", []byte("round-7")))
	require.NoError(t, ro.AddUint32("index", 3))
	g, err := ecc.Generator(ecc.Ed25519)
	require.NoError(t, err)
	require.NoError(t, ro.AddPoint("key", g))
}

func TestDeterministic(t *testing.T) {
	a := New("test-domain")
	b := New("test-domain")
	fill(t, a)
	fill(t, b)
	require.Equal(t, a.Digest(), b.Digest())
	require.Len(t, a.Digest(), DigestLength)

	sa, err := a.Scalar(ecc.Ed25519)
	require.NoError(t, err)
	sb, err := b.Scalar(ecc.Ed25519)
	require.NoError(t, err)
	require.True(t, sa.Equal(sb))
}

func TestDomainSeparation(t *testing.T) {
	a := New("domain-a")
	b := New("domain-b")
	fill(t, a)
	fill(t, b)
	require.NotEqual(t, a.Digest(), b.Digest())
}

func TestFieldOrderMatters(t *testing.T) {
	a := New("d")
	require.NoError(t, a.AddUint32("x", 1))
	require.NoError(t, a.AddUint32("y", 2))
	b := New("d")
	require.NoError(t, b.AddUint32("y", 2))
	require.NoError(t, b.AddUint32("x", 1))
	require.NotEqual(t, a.Digest(), b.Digest())
}

func TestLabelMatters(t *testing.T) {
	a := New("d")
	require.NoError(t, a.AddBytes("first", []byte{1}))
	b := New("d")
	require.NoError(t, b.AddBytes("second", []byte{1}))
	require.NotEqual(t, a.Digest(), b.Digest())
}

func TestUnambiguousConcatenation(t *testing.T) {
	// Moving a byte between adjacent fields changes the digest.
	a := New("d")
	require.NoError(t, a.AddBytes("l", []byte{1, 2}))
	require.NoError(t, a.AddBytes("m", []byte{3}))
	b := New("d")
	require.NoError(t, b.AddBytes("l", []byte{1}))
	require.NoError(t, b.AddBytes("m", []byte{2, 3}))
	require.NotEqual(t, a.Digest(), b.Digest())
}

func TestDuplicateLabel(t *testing.T) {
	a := New("d")
	require.NoError(t, a.AddUint32("x", 1))
	require.Error(t, a.AddUint32("x", 2))
	require.Error(t, a.AddBytes("x", []byte{1}))
}

func TestScalarPerCurve(t *testing.T) {
	for _, c := range ecc.CurveTypes() {
		a := New("d")
		k, err := ecc.PickScalar(c, random.New())
		require.NoError(t, err)
		g, err := ecc.Generator(c)
		require.NoError(t, err)
		p, err := g.Mul(k)
		require.NoError(t, err)
		require.NoError(t, a.AddPoint("p", p))
		s, err := a.Scalar(c)
		require.NoError(t, err)
		require.Equal(t, c, s.Curve())
	}
}
