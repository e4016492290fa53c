package mega

import (
	"go.dedis.ch/tecdsa"
	"go.dedis.ch/tecdsa/ecc"
	"go.dedis.ch/tecdsa/poly"
	"go.dedis.ch/tecdsa/ro"
	"go.dedis.ch/tecdsa/seed"
	"go.dedis.ch/tecdsa/zk"
	"golang.org/x/xerrors"
)

const (
	keyDomain    = "tecdsa-mega-encryption-key"
	ephemeralKey = "tecdsa-mega-ephemeral-key"
)

// ErrInvalidCiphertext is returned by DecryptAndCheck when the
// ciphertext decrypts but the opening does not match the commitment.
var ErrInvalidCiphertext = xerrors.New("mega: decrypted opening does not match the commitment")

// Ciphertext is the encrypted batch of openings of one dealing, in
// the Single (Feldman) or Pairs (Pedersen) variant. The variant is
// fixed when the dealing is created.
type Ciphertext interface {
	// EphemeralKey returns the ephemeral point the batch is keyed to.
	EphemeralKey() ecc.Point
	// Curve returns the curve of the ciphertext.
	Curve() ecc.CurveType
	// Receivers returns the number of encrypted openings.
	Receivers() int
}

// ScalarPair groups a share value with its Pedersen mask.
type ScalarPair struct {
	Value ecc.Scalar
	Mask  ecc.Scalar
}

// SingleCiphertext carries one masked share value per receiver.
type SingleCiphertext struct {
	Ephemeral ecc.Point
	Values    []ecc.Scalar
}

// PairsCiphertext carries a masked (value, mask) pair per receiver.
type PairsCiphertext struct {
	Ephemeral ecc.Point
	Values    []ScalarPair
}

// encryptionMask derives the masking scalar of one slot of one
// receiver's opening. Both the creator and any decryptor must agree
// on every input, so all of them go through the random oracle.
func encryptionMask(assocData []byte, dealer, receiver tecdsa.NodeIndex,
	slot uint32, receiverKey, ephemeral, shared ecc.Point) (ecc.Scalar, error) {
	oracle := ro.New(keyDomain)
	if err := oracle.AddBytes("associated-data", assocData); err != nil {
		return ecc.Scalar{}, err
	}
	if err := oracle.AddUint32("dealer-index", uint32(dealer)); err != nil {
		return ecc.Scalar{}, err
	}
	if err := oracle.AddUint32("receiver-index", uint32(receiver)); err != nil {
		return ecc.Scalar{}, err
	}
	if err := oracle.AddUint32("slot", slot); err != nil {
		return ecc.Scalar{}, err
	}
	if err := oracle.AddPoint("receiver-public-key", receiverKey); err != nil {
		return ecc.Scalar{}, err
	}
	if err := oracle.AddPoint("ephemeral-key", ephemeral); err != nil {
		return ecc.Scalar{}, err
	}
	if err := oracle.AddPoint("shared-secret", shared); err != nil {
		return ecc.Scalar{}, err
	}
	return oracle.Scalar(shared.Curve())
}

type batch struct {
	ephemeral ecc.Point
	shared    []ecc.Point
}

// newBatch draws the ephemeral scalar from the seed and computes the
// per-receiver DH shared secrets.
func newBatch(sd seed.Seed, c ecc.CurveType, recipients []*PublicKey) (*batch, error) {
	if len(recipients) == 0 {
		return nil, xerrors.New("mega: no recipients")
	}
	rho, err := ecc.PickScalar(c, sd.Derive(ephemeralKey).Stream())
	if err != nil {
		return nil, err
	}
	g, err := ecc.Generator(c)
	if err != nil {
		return nil, err
	}
	eph, err := g.Mul(rho)
	if err != nil {
		return nil, err
	}
	shared := make([]ecc.Point, len(recipients))
	for i, pk := range recipients {
		shared[i], err = pk.Point().Mul(rho)
		if err != nil {
			return nil, err
		}
	}
	return &batch{ephemeral: eph, shared: shared}, nil
}

// EncryptSingle encrypts one share value per recipient.
func EncryptSingle(sd seed.Seed, shares []ecc.Scalar, recipients []*PublicKey,
	dealer tecdsa.NodeIndex, assocData []byte) (*SingleCiphertext, error) {
	if len(shares) != len(recipients) {
		return nil, xerrors.Errorf("mega: %d shares for %d recipients",
			len(shares), len(recipients))
	}
	if len(shares) == 0 {
		return nil, xerrors.New("mega: no recipients")
	}
	b, err := newBatch(sd, shares[0].Curve(), recipients)
	if err != nil {
		return nil, err
	}
	values := make([]ecc.Scalar, len(shares))
	for i := range shares {
		mask, err := encryptionMask(assocData, dealer, tecdsa.NodeIndex(i), 0,
			recipients[i].Point(), b.ephemeral, b.shared[i])
		if err != nil {
			return nil, err
		}
		values[i], err = shares[i].Add(mask)
		if err != nil {
			return nil, err
		}
	}
	return &SingleCiphertext{Ephemeral: b.ephemeral, Values: values}, nil
}

// EncryptPairs encrypts a (value, mask) pair per recipient.
func EncryptPairs(sd seed.Seed, pairs []ScalarPair, recipients []*PublicKey,
	dealer tecdsa.NodeIndex, assocData []byte) (*PairsCiphertext, error) {
	if len(pairs) != len(recipients) {
		return nil, xerrors.Errorf("mega: %d pairs for %d recipients",
			len(pairs), len(recipients))
	}
	if len(pairs) == 0 {
		return nil, xerrors.New("mega: no recipients")
	}
	b, err := newBatch(sd, pairs[0].Value.Curve(), recipients)
	if err != nil {
		return nil, err
	}
	values := make([]ScalarPair, len(pairs))
	for i := range pairs {
		vMask, err := encryptionMask(assocData, dealer, tecdsa.NodeIndex(i), 0,
			recipients[i].Point(), b.ephemeral, b.shared[i])
		if err != nil {
			return nil, err
		}
		mMask, err := encryptionMask(assocData, dealer, tecdsa.NodeIndex(i), 1,
			recipients[i].Point(), b.ephemeral, b.shared[i])
		if err != nil {
			return nil, err
		}
		v, err := pairs[i].Value.Add(vMask)
		if err != nil {
			return nil, err
		}
		m, err := pairs[i].Mask.Add(mMask)
		if err != nil {
			return nil, err
		}
		values[i] = ScalarPair{Value: v, Mask: m}
	}
	return &PairsCiphertext{Ephemeral: b.ephemeral, Values: values}, nil
}

// EphemeralKey implements Ciphertext.
func (c *SingleCiphertext) EphemeralKey() ecc.Point { return c.Ephemeral }

// Curve implements Ciphertext.
func (c *SingleCiphertext) Curve() ecc.CurveType { return c.Ephemeral.Curve() }

// Receivers implements Ciphertext.
func (c *SingleCiphertext) Receivers() int { return len(c.Values) }

// Decrypt recovers the receiver's share value using its secret key.
func (c *SingleCiphertext) Decrypt(assocData []byte, dealer, receiver tecdsa.NodeIndex,
	sk *PrivateKey, pk *PublicKey) (ecc.Scalar, error) {
	if int(receiver) >= len(c.Values) {
		return ecc.Scalar{}, xerrors.Errorf("mega: receiver index %d out of range", receiver)
	}
	shared, err := c.Ephemeral.Mul(sk.Scalar())
	if err != nil {
		return ecc.Scalar{}, err
	}
	return c.unmask(assocData, dealer, receiver, pk.Point(), shared)
}

// DecryptAndCheck decrypts the receiver's share and checks it against
// the commitment of the dealing. A failure to open is reported as
// ErrInvalidCiphertext: the dealing is bad for this receiver.
func (c *SingleCiphertext) DecryptAndCheck(commitment poly.Commitment,
	assocData []byte, dealer, receiver tecdsa.NodeIndex,
	sk *PrivateKey, pk *PublicKey) (poly.Opening, error) {
	value, err := c.Decrypt(assocData, dealer, receiver, sk, pk)
	if err != nil {
		return nil, err
	}
	opening := poly.SimpleOpening{Value: value}
	ok, err := commitment.CheckOpening(receiver, opening)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidCiphertext
	}
	return opening, nil
}

// DecryptFromSharedSecret recovers the complainer's share value from
// a shared secret whose provenance has been proven. The zk token is
// the only way in: raw points never reach the unmasking step.
func (c *SingleCiphertext) DecryptFromSharedSecret(ver *zk.Verification,
	assocData []byte, dealer, complainer tecdsa.NodeIndex,
	complainerKey *PublicKey) (ecc.Scalar, error) {
	if int(complainer) >= len(c.Values) {
		return ecc.Scalar{}, xerrors.Errorf("mega: receiver index %d out of range", complainer)
	}
	return c.unmask(assocData, dealer, complainer, complainerKey.Point(),
		ver.SharedSecret())
}

func (c *SingleCiphertext) unmask(assocData []byte, dealer, receiver tecdsa.NodeIndex,
	receiverKey, shared ecc.Point) (ecc.Scalar, error) {
	mask, err := encryptionMask(assocData, dealer, receiver, 0,
		receiverKey, c.Ephemeral, shared)
	if err != nil {
		return ecc.Scalar{}, err
	}
	return c.Values[receiver].Sub(mask)
}

// EphemeralKey implements Ciphertext.
func (c *PairsCiphertext) EphemeralKey() ecc.Point { return c.Ephemeral }

// Curve implements Ciphertext.
func (c *PairsCiphertext) Curve() ecc.CurveType { return c.Ephemeral.Curve() }

// Receivers implements Ciphertext.
func (c *PairsCiphertext) Receivers() int { return len(c.Values) }

// Decrypt recovers the receiver's (value, mask) pair using its secret
// key.
func (c *PairsCiphertext) Decrypt(assocData []byte, dealer, receiver tecdsa.NodeIndex,
	sk *PrivateKey, pk *PublicKey) (ScalarPair, error) {
	if int(receiver) >= len(c.Values) {
		return ScalarPair{}, xerrors.Errorf("mega: receiver index %d out of range", receiver)
	}
	shared, err := c.Ephemeral.Mul(sk.Scalar())
	if err != nil {
		return ScalarPair{}, err
	}
	return c.unmask(assocData, dealer, receiver, pk.Point(), shared)
}

// DecryptAndCheck decrypts the receiver's pair and checks it against
// the commitment of the dealing.
func (c *PairsCiphertext) DecryptAndCheck(commitment poly.Commitment,
	assocData []byte, dealer, receiver tecdsa.NodeIndex,
	sk *PrivateKey, pk *PublicKey) (poly.Opening, error) {
	pair, err := c.Decrypt(assocData, dealer, receiver, sk, pk)
	if err != nil {
		return nil, err
	}
	opening := poly.PedersenOpening{Value: pair.Value, Mask: pair.Mask}
	ok, err := commitment.CheckOpening(receiver, opening)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidCiphertext
	}
	return opening, nil
}

// DecryptFromSharedSecret recovers the complainer's pair from a
// proven shared secret.
func (c *PairsCiphertext) DecryptFromSharedSecret(ver *zk.Verification,
	assocData []byte, dealer, complainer tecdsa.NodeIndex,
	complainerKey *PublicKey) (ScalarPair, error) {
	if int(complainer) >= len(c.Values) {
		return ScalarPair{}, xerrors.Errorf("mega: receiver index %d out of range", complainer)
	}
	return c.unmask(assocData, dealer, complainer, complainerKey.Point(),
		ver.SharedSecret())
}

func (c *PairsCiphertext) unmask(assocData []byte, dealer, receiver tecdsa.NodeIndex,
	receiverKey, shared ecc.Point) (ScalarPair, error) {
	vMask, err := encryptionMask(assocData, dealer, receiver, 0,
		receiverKey, c.Ephemeral, shared)
	if err != nil {
		return ScalarPair{}, err
	}
	mMask, err := encryptionMask(assocData, dealer, receiver, 1,
		receiverKey, c.Ephemeral, shared)
	if err != nil {
		return ScalarPair{}, err
	}
	v, err := c.Values[receiver].Value.Sub(vMask)
	if err != nil {
		return ScalarPair{}, err
	}
	m, err := c.Values[receiver].Mask.Sub(mMask)
	if err != nil {
		return ScalarPair{}, err
	}
	return ScalarPair{Value: v, Mask: m}, nil
}
