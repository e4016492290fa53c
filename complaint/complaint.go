// Package complaint implements the complaint sub-protocol of the
// IDKG: a receiver that cannot open a dealing publishes the
// Diffie-Hellman shared secret it used for decryption together with a
// zero-knowledge proof that this secret really is the one its key
// produces. Any party can then redo the decryption with the proven
// secret and see for itself that the dealing does not open.
package complaint

import (
	"sort"
	"strconv"

	"go.dedis.ch/tecdsa"
	"go.dedis.ch/tecdsa/dealings"
	"go.dedis.ch/tecdsa/ecc"
	"go.dedis.ch/tecdsa/mega"
	"go.dedis.ch/tecdsa/poly"
	"go.dedis.ch/tecdsa/ro"
	"go.dedis.ch/tecdsa/seed"
	"go.dedis.ch/tecdsa/zk"
	"golang.org/x/xerrors"
)

const (
	proofDomain      = "tecdsa-complaint-proof-assoc-data"
	derivationPrefix = "tecdsa-complaint-against-"
)

var (
	// ErrNoComplaints is returned by Generate when every dealing
	// opened: callers must only ask for complaints when they know at
	// least one dealing is bad.
	ErrNoComplaints = xerrors.New("complaint: no dealing failed to open")
	// ErrUnexpectedCommitmentType is returned when the ciphertext and
	// commitment variants of the accused dealing do not match.
	ErrUnexpectedCommitmentType = xerrors.New("complaint: ciphertext and commitment types do not match")
	// ErrInvalidComplaint is returned when the proven shared secret
	// decrypts an opening that does match the commitment: the dealing
	// was fine and the complaint is dishonest.
	ErrInvalidComplaint = xerrors.New("complaint: decrypted opening matches the commitment")
)

// Complaint is the evidence a receiver publishes against a dealing.
// SharedSecret is attacker-supplied data until Proof has been
// verified; nothing may decrypt with it before that.
type Complaint struct {
	Proof        *zk.Proof
	SharedSecret ecc.Point
}

// Generate attempts to open every verified dealing with the
// receiver's key and returns a complaint for each one that failed,
// keyed by dealer index. Dealings that open are skipped. Dealers are
// processed in ascending index order and every complaint's randomness
// is derived under a per-dealer label, so identical inputs give
// identical output. If every dealing opened, the precondition of the
// call was violated and ErrNoComplaints is returned.
func Generate(verified map[tecdsa.NodeIndex]*dealings.Dealing, assocData []byte,
	receiver tecdsa.NodeIndex, sk *mega.PrivateKey, pk *mega.PublicKey,
	sd seed.Seed) (map[tecdsa.NodeIndex]*Complaint, error) {

	dealers := make([]tecdsa.NodeIndex, 0, len(verified))
	for dealer := range verified {
		dealers = append(dealers, dealer)
	}
	sort.Slice(dealers, func(i, j int) bool { return dealers[i] < dealers[j] })

	complaints := make(map[tecdsa.NodeIndex]*Complaint)
	for _, dealer := range dealers {
		dealing := verified[dealer]
		if _, err := dealing.DecryptAndCheck(assocData, dealer, receiver, sk, pk); err == nil {
			continue
		}

		complaintSeed := sd.Derive(derivationPrefix +
			strconv.FormatUint(uint64(dealer), 10))
		c, err := New(complaintSeed, dealing, dealer, receiver, sk, pk, assocData)
		if err != nil {
			return nil, err
		}
		complaints[dealer] = c
	}

	if len(complaints) == 0 {
		return nil, ErrNoComplaints
	}
	return complaints, nil
}

// New creates a complaint against a dealing. It should only be called
// after the dealing failed to decrypt to a valid opening of its
// commitment: the shared secret is the receiver's view of the
// Diffie-Hellman secret, and the proof ties it to the receiver's
// public key without revealing the private key.
func New(sd seed.Seed, dealing *dealings.Dealing, dealer, receiver tecdsa.NodeIndex,
	sk *mega.PrivateKey, pk *mega.PublicKey, assocData []byte) (*Complaint, error) {

	shared, err := dealing.Ciphertext.EphemeralKey().Mul(sk.Scalar())
	if err != nil {
		return nil, err
	}

	digest, err := proofAssocData(assocData, receiver, dealer, pk)
	if err != nil {
		return nil, err
	}

	g, err := ecc.Generator(sk.Curve())
	if err != nil {
		return nil, err
	}
	proof, err := zk.Create(sd, sk.Scalar(), g,
		dealing.Ciphertext.EphemeralKey(), digest)
	if err != nil {
		return nil, err
	}

	return &Complaint{Proof: proof, SharedSecret: shared}, nil
}

// Verify checks a complaint raised by the complainer against the
// dealing of the given dealer. The proof is verified first: only its
// Verification token lets the shared secret near the decryption.
// Then the opening is re-derived and checked against the commitment;
// if it matches, the dealing was valid and the complaint itself is
// rejected with ErrInvalidComplaint.
func (c *Complaint) Verify(dealing *dealings.Dealing, dealer, complainer tecdsa.NodeIndex,
	complainerKey *mega.PublicKey, assocData []byte) error {

	digest, err := proofAssocData(assocData, complainer, dealer, complainerKey)
	if err != nil {
		return err
	}

	g, err := ecc.Generator(c.SharedSecret.Curve())
	if err != nil {
		return err
	}
	ver, err := c.Proof.Verify(g, dealing.Ciphertext.EphemeralKey(),
		complainerKey.Point(), c.SharedSecret, digest)
	if err != nil {
		return err
	}

	var opening poly.Opening
	switch ciphertext := dealing.Ciphertext.(type) {
	case *mega.SingleCiphertext:
		if _, ok := dealing.Commitment.(*poly.SimpleCommitment); !ok {
			return ErrUnexpectedCommitmentType
		}
		value, err := ciphertext.DecryptFromSharedSecret(ver, assocData,
			dealer, complainer, complainerKey)
		if err != nil {
			return err
		}
		opening = poly.SimpleOpening{Value: value}
	case *mega.PairsCiphertext:
		if _, ok := dealing.Commitment.(*poly.PedersenCommitment); !ok {
			return ErrUnexpectedCommitmentType
		}
		pair, err := ciphertext.DecryptFromSharedSecret(ver, assocData,
			dealer, complainer, complainerKey)
		if err != nil {
			return err
		}
		opening = poly.PedersenOpening{Value: pair.Value, Mask: pair.Mask}
	default:
		return ErrUnexpectedCommitmentType
	}

	ok, err := dealing.Commitment.CheckOpening(complainer, opening)
	if err != nil {
		return err
	}
	if ok {
		return ErrInvalidComplaint
	}
	return nil
}

// proofAssocData binds the proof to its protocol context. Creation
// and verification build this digest identically, field for field.
func proofAssocData(assocData []byte, receiver, dealer tecdsa.NodeIndex,
	receiverKey *mega.PublicKey) ([]byte, error) {
	oracle := ro.New(proofDomain)
	if err := oracle.AddBytes("associated-data", assocData); err != nil {
		return nil, err
	}
	if err := oracle.AddUint32("receiver-index", uint32(receiver)); err != nil {
		return nil, err
	}
	if err := oracle.AddUint32("dealer-index", uint32(dealer)); err != nil {
		return nil, err
	}
	if err := oracle.AddPoint("receiver-public-key", receiverKey.Point()); err != nil {
		return nil, err
	}
	return oracle.Digest(), nil
}
