// Package dealings ties a dealer's published commitment to the
// encrypted openings delivered to the receivers. A dealing is created
// once and read-only afterwards; the ciphertext and commitment
// variants are fixed together at creation (Single with Simple, Pairs
// with Pedersen).
package dealings

import (
	"go.dedis.ch/tecdsa"
	"go.dedis.ch/tecdsa/ecc"
	"go.dedis.ch/tecdsa/mega"
	"go.dedis.ch/tecdsa/poly"
	"go.dedis.ch/tecdsa/seed"
	"golang.org/x/xerrors"
)

const (
	valuesLabel     = "tecdsa-dealing-polynomial"
	masksLabel      = "tecdsa-dealing-mask-polynomial"
	encryptionLabel = "tecdsa-dealing-encryption"
)

// Dealing is one dealer's contribution to an IDKG round.
type Dealing struct {
	Ciphertext mega.Ciphertext
	Commitment poly.Commitment
}

// New shares secret among len(recipients) receivers with the given
// reconstruction threshold, committing with the requested variant.
func New(sd seed.Seed, variant poly.Type, threshold int, dealer tecdsa.NodeIndex,
	recipients []*mega.PublicKey, secret ecc.Scalar, assocData []byte) (*Dealing, error) {
	if threshold < 1 || threshold > len(recipients) {
		return nil, xerrors.Errorf("dealings: threshold %d out of range for %d recipients",
			threshold, len(recipients))
	}
	degree := threshold - 1

	values, err := poly.NewRandomWithSecret(secret, degree,
		sd.Derive(valuesLabel).Stream())
	if err != nil {
		return nil, err
	}
	shares := make([]ecc.Scalar, len(recipients))
	for i := range recipients {
		shares[i], err = values.EvalAt(tecdsa.NodeIndex(i))
		if err != nil {
			return nil, err
		}
	}

	switch variant {
	case poly.Simple:
		commitment, err := poly.NewSimpleCommitment(values)
		if err != nil {
			return nil, err
		}
		ciphertext, err := mega.EncryptSingle(sd.Derive(encryptionLabel),
			shares, recipients, dealer, assocData)
		if err != nil {
			return nil, err
		}
		return &Dealing{Ciphertext: ciphertext, Commitment: commitment}, nil

	case poly.Pedersen:
		masks, err := poly.NewRandom(secret.Curve(), degree,
			sd.Derive(masksLabel).Stream())
		if err != nil {
			return nil, err
		}
		commitment, err := poly.NewPedersenCommitment(values, masks)
		if err != nil {
			return nil, err
		}
		pairs := make([]mega.ScalarPair, len(recipients))
		for i := range recipients {
			mask, err := masks.EvalAt(tecdsa.NodeIndex(i))
			if err != nil {
				return nil, err
			}
			pairs[i] = mega.ScalarPair{Value: shares[i], Mask: mask}
		}
		ciphertext, err := mega.EncryptPairs(sd.Derive(encryptionLabel),
			pairs, recipients, dealer, assocData)
		if err != nil {
			return nil, err
		}
		return &Dealing{Ciphertext: ciphertext, Commitment: commitment}, nil

	default:
		return nil, xerrors.Errorf("dealings: unknown commitment variant %v", variant)
	}
}

// DecryptAndCheck opens the dealing for one receiver: it decrypts the
// receiver's share and checks it against the commitment. Any error
// means the dealing did not open for this receiver.
func (d *Dealing) DecryptAndCheck(assocData []byte, dealer, receiver tecdsa.NodeIndex,
	sk *mega.PrivateKey, pk *mega.PublicKey) (poly.Opening, error) {
	switch c := d.Ciphertext.(type) {
	case *mega.SingleCiphertext:
		return c.DecryptAndCheck(d.Commitment, assocData, dealer, receiver, sk, pk)
	case *mega.PairsCiphertext:
		return c.DecryptAndCheck(d.Commitment, assocData, dealer, receiver, sk, pk)
	default:
		return nil, xerrors.Errorf("dealings: unknown ciphertext type %T", d.Ciphertext)
	}
}
