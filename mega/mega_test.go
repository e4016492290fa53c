package mega

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"go.dedis.ch/kyber/v3/util/random"
	"go.dedis.ch/tecdsa"
	"go.dedis.ch/tecdsa/ecc"
	"go.dedis.ch/tecdsa/poly"
	"go.dedis.ch/tecdsa/seed"
)

func testSeed(t *testing.T, b byte) seed.Seed {
	sd, err := seed.FromBytes(bytes.Repeat([]byte{b}, seed.Length))
	require.NoError(t, err)
	return sd
}

func keyPairs(t *testing.T, c ecc.CurveType, n int) ([]*PrivateKey, []*PublicKey) {
	sks := make([]*PrivateKey, n)
	pks := make([]*PublicKey, n)
	for i := range sks {
		sk, pk, err := GenerateKeyPair(c, random.New())
		require.NoError(t, err)
		sks[i], pks[i] = sk, pk
	}
	return sks, pks
}

func TestSingleRoundTrip(t *testing.T) {
	for _, c := range ecc.CurveTypes() {
		const n = 4
		sks, pks := keyPairs(t, c, n)
		ad := []byte("round-1")

		shares := make([]ecc.Scalar, n)
		for i := range shares {
			k, err := ecc.PickScalar(c, random.New())
			require.NoError(t, err)
			shares[i] = k
		}

		ctext, err := EncryptSingle(testSeed(t, 1), shares, pks, 2, ad)
		require.NoError(t, err)
		require.Equal(t, c, ctext.Curve())
		require.Equal(t, n, ctext.Receivers())

		for i := 0; i < n; i++ {
			got, err := ctext.Decrypt(ad, 2, tecdsa.NodeIndex(i), sks[i], pks[i])
			require.NoError(t, err)
			require.True(t, got.Equal(shares[i]))
		}

		// The wrong key does not decrypt to the share.
		got, err := ctext.Decrypt(ad, 2, 0, sks[1], pks[0])
		require.NoError(t, err)
		require.False(t, got.Equal(shares[0]))
	}
}

func TestPairsRoundTrip(t *testing.T) {
	const n = 3
	sks, pks := keyPairs(t, ecc.Ed25519, n)
	ad := []byte("round-2")

	pairs := make([]ScalarPair, n)
	for i := range pairs {
		v, err := ecc.PickScalar(ecc.Ed25519, random.New())
		require.NoError(t, err)
		m, err := ecc.PickScalar(ecc.Ed25519, random.New())
		require.NoError(t, err)
		pairs[i] = ScalarPair{Value: v, Mask: m}
	}

	ctext, err := EncryptPairs(testSeed(t, 2), pairs, pks, 0, ad)
	require.NoError(t, err)

	for i := 0; i < n; i++ {
		got, err := ctext.Decrypt(ad, 0, tecdsa.NodeIndex(i), sks[i], pks[i])
		require.NoError(t, err)
		require.True(t, got.Value.Equal(pairs[i].Value))
		require.True(t, got.Mask.Equal(pairs[i].Mask))
	}
}

func TestEncryptDeterministic(t *testing.T) {
	_, pks := keyPairs(t, ecc.Ed25519, 2)
	shares := make([]ecc.Scalar, 2)
	for i := range shares {
		k, err := ecc.ScalarFromInt(ecc.Ed25519, int64(i)+10)
		require.NoError(t, err)
		shares[i] = k
	}
	ad := []byte("ad")

	c1, err := EncryptSingle(testSeed(t, 3), shares, pks, 1, ad)
	require.NoError(t, err)
	c2, err := EncryptSingle(testSeed(t, 3), shares, pks, 1, ad)
	require.NoError(t, err)
	require.True(t, c1.Ephemeral.Equal(c2.Ephemeral))
	for i := range c1.Values {
		require.True(t, c1.Values[i].Equal(c2.Values[i]))
	}
}

func TestDecryptAndCheck(t *testing.T) {
	const n = 3
	sks, pks := keyPairs(t, ecc.Ed25519, n)
	ad := []byte("round-3")

	values, err := poly.NewRandom(ecc.Ed25519, 1, random.New())
	require.NoError(t, err)
	commitment, err := poly.NewSimpleCommitment(values)
	require.NoError(t, err)

	shares := make([]ecc.Scalar, n)
	for i := range shares {
		shares[i], err = values.EvalAt(tecdsa.NodeIndex(i))
		require.NoError(t, err)
	}

	ctext, err := EncryptSingle(testSeed(t, 4), shares, pks, 0, ad)
	require.NoError(t, err)

	for i := 0; i < n; i++ {
		op, err := ctext.DecryptAndCheck(commitment, ad, 0, tecdsa.NodeIndex(i), sks[i], pks[i])
		require.NoError(t, err)
		require.Equal(t, poly.Simple, op.Type())
	}

	// Tampering one encrypted value makes its receiver fail the
	// check, and only that receiver.
	one, err := ecc.ScalarFromInt(ecc.Ed25519, 1)
	require.NoError(t, err)
	ctext.Values[1], err = ctext.Values[1].Add(one)
	require.NoError(t, err)
	_, err = ctext.DecryptAndCheck(commitment, ad, 0, 1, sks[1], pks[1])
	require.Equal(t, ErrInvalidCiphertext, err)
	_, err = ctext.DecryptAndCheck(commitment, ad, 0, 0, sks[0], pks[0])
	require.NoError(t, err)
}

func TestDecryptBounds(t *testing.T) {
	sks, pks := keyPairs(t, ecc.Ed25519, 1)
	k, err := ecc.PickScalar(ecc.Ed25519, random.New())
	require.NoError(t, err)
	ctext, err := EncryptSingle(testSeed(t, 5), []ecc.Scalar{k}, pks, 0, nil)
	require.NoError(t, err)
	_, err = ctext.Decrypt(nil, 0, 5, sks[0], pks[0])
	require.Error(t, err)
}

func TestEncryptArgumentChecks(t *testing.T) {
	_, pks := keyPairs(t, ecc.Ed25519, 2)
	k, err := ecc.PickScalar(ecc.Ed25519, random.New())
	require.NoError(t, err)
	_, err = EncryptSingle(testSeed(t, 6), []ecc.Scalar{k}, pks, 0, nil)
	require.Error(t, err)
	_, err = EncryptSingle(testSeed(t, 6), nil, nil, 0, nil)
	require.Error(t, err)
}

func TestPublicKeyMarshal(t *testing.T) {
	_, pk, err := GenerateKeyPair(ecc.P256, random.New())
	require.NoError(t, err)
	buf, err := pk.Marshal()
	require.NoError(t, err)
	pk2, err := UnmarshalPublicKey(buf)
	require.NoError(t, err)
	require.True(t, pk.Point().Equal(pk2.Point()))
}
