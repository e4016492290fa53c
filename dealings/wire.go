package dealings

import (
	"go.dedis.ch/protobuf"
	"go.dedis.ch/tecdsa/ecc"
	"go.dedis.ch/tecdsa/mega"
	"go.dedis.ch/tecdsa/poly"
	"golang.org/x/xerrors"
)

// ErrMalformed is returned when a dealing encoding cannot be decoded.
var ErrMalformed = xerrors.New("dealings: malformed encoding")

const (
	wireSingle = uint32(1)
	wirePairs  = uint32(2)
)

// dealingWire is the wire layout of a dealing. Scalars and points use
// the tagged ecc encoding; a Pairs ciphertext stores value then mask
// per receiver, flattened.
type dealingWire struct {
	CiphertextType uint32
	EphemeralKey   []byte
	Values         [][]byte
	CommitmentType uint32
	Commitments    [][]byte
}

// Serialize encodes the dealing into a self-describing byte string.
func (d *Dealing) Serialize() ([]byte, error) {
	w := dealingWire{}

	switch c := d.Ciphertext.(type) {
	case *mega.SingleCiphertext:
		w.CiphertextType = wireSingle
		eph, err := c.Ephemeral.Marshal()
		if err != nil {
			return nil, err
		}
		w.EphemeralKey = eph
		for _, v := range c.Values {
			buf, err := v.Marshal()
			if err != nil {
				return nil, err
			}
			w.Values = append(w.Values, buf)
		}
	case *mega.PairsCiphertext:
		w.CiphertextType = wirePairs
		eph, err := c.Ephemeral.Marshal()
		if err != nil {
			return nil, err
		}
		w.EphemeralKey = eph
		for _, p := range c.Values {
			vBuf, err := p.Value.Marshal()
			if err != nil {
				return nil, err
			}
			mBuf, err := p.Mask.Marshal()
			if err != nil {
				return nil, err
			}
			w.Values = append(w.Values, vBuf, mBuf)
		}
	default:
		return nil, xerrors.Errorf("dealings: unknown ciphertext type %T", d.Ciphertext)
	}

	w.CommitmentType = uint32(d.Commitment.Type())
	for _, p := range d.Commitment.Points() {
		buf, err := p.Marshal()
		if err != nil {
			return nil, err
		}
		w.Commitments = append(w.Commitments, buf)
	}

	buf, err := protobuf.Encode(&w)
	if err != nil {
		return nil, xerrors.Errorf("dealings: encoding: %v", err)
	}
	return buf, nil
}

// Deserialize decodes a dealing produced by Serialize, validating
// every point and scalar.
func Deserialize(data []byte) (*Dealing, error) {
	var w dealingWire
	if err := protobuf.Decode(data, &w); err != nil {
		return nil, xerrors.Errorf("%w: %v", ErrMalformed, err)
	}

	eph, err := ecc.UnmarshalPoint(w.EphemeralKey)
	if err != nil {
		return nil, xerrors.Errorf("%w: %v", ErrMalformed, err)
	}
	scalars := make([]ecc.Scalar, len(w.Values))
	for i, buf := range w.Values {
		scalars[i], err = ecc.UnmarshalScalar(buf)
		if err != nil {
			return nil, xerrors.Errorf("%w: %v", ErrMalformed, err)
		}
	}

	d := &Dealing{}
	switch w.CiphertextType {
	case wireSingle:
		d.Ciphertext = &mega.SingleCiphertext{Ephemeral: eph, Values: scalars}
	case wirePairs:
		if len(scalars)%2 != 0 {
			return nil, xerrors.Errorf("%w: odd number of pair scalars", ErrMalformed)
		}
		pairs := make([]mega.ScalarPair, len(scalars)/2)
		for i := range pairs {
			pairs[i] = mega.ScalarPair{Value: scalars[2*i], Mask: scalars[2*i+1]}
		}
		d.Ciphertext = &mega.PairsCiphertext{Ephemeral: eph, Values: pairs}
	default:
		return nil, xerrors.Errorf("%w: unknown ciphertext type %d", ErrMalformed, w.CiphertextType)
	}

	if len(w.Commitments) == 0 {
		return nil, xerrors.Errorf("%w: empty commitment", ErrMalformed)
	}
	points := make([]ecc.Point, len(w.Commitments))
	for i, buf := range w.Commitments {
		points[i], err = ecc.UnmarshalPoint(buf)
		if err != nil {
			return nil, xerrors.Errorf("%w: %v", ErrMalformed, err)
		}
	}
	switch poly.Type(w.CommitmentType) {
	case poly.Simple:
		d.Commitment = &poly.SimpleCommitment{Commitments: points}
	case poly.Pedersen:
		d.Commitment = &poly.PedersenCommitment{Commitments: points}
	default:
		return nil, xerrors.Errorf("%w: unknown commitment type %d", ErrMalformed, w.CommitmentType)
	}

	return d, nil
}
