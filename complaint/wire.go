package complaint

import (
	"go.dedis.ch/protobuf"
	"go.dedis.ch/tecdsa/ecc"
	"go.dedis.ch/tecdsa/zk"
	"golang.org/x/xerrors"
)

// ErrMalformed is returned when a complaint encoding cannot be
// decoded into a valid complaint.
var ErrMalformed = xerrors.New("complaint: malformed encoding")

// complaintWire is the wire layout of a complaint. All three fields
// use the tagged ecc encoding, so the bytes are self-describing.
type complaintWire struct {
	SharedSecret []byte
	Challenge    []byte
	Response     []byte
}

// Serialize encodes the complaint into a compact byte string. The
// encoding is deterministic: equal complaints give equal bytes.
func (c *Complaint) Serialize() ([]byte, error) {
	shared, err := c.SharedSecret.Marshal()
	if err != nil {
		return nil, err
	}
	challenge, err := c.Proof.Challenge.Marshal()
	if err != nil {
		return nil, err
	}
	response, err := c.Proof.Response.Marshal()
	if err != nil {
		return nil, err
	}
	buf, err := protobuf.Encode(&complaintWire{
		SharedSecret: shared,
		Challenge:    challenge,
		Response:     response,
	})
	if err != nil {
		return nil, xerrors.Errorf("complaint: encoding: %v", err)
	}
	return buf, nil
}

// Deserialize decodes a complaint produced by Serialize. Malformed
// bytes give ErrMalformed, never a panic.
func Deserialize(data []byte) (*Complaint, error) {
	var w complaintWire
	if err := protobuf.Decode(data, &w); err != nil {
		return nil, xerrors.Errorf("%w: %v", ErrMalformed, err)
	}
	shared, err := ecc.UnmarshalPoint(w.SharedSecret)
	if err != nil {
		return nil, xerrors.Errorf("%w: %v", ErrMalformed, err)
	}
	challenge, err := ecc.UnmarshalScalar(w.Challenge)
	if err != nil {
		return nil, xerrors.Errorf("%w: %v", ErrMalformed, err)
	}
	response, err := ecc.UnmarshalScalar(w.Response)
	if err != nil {
		return nil, xerrors.Errorf("%w: %v", ErrMalformed, err)
	}
	if challenge.Curve() != shared.Curve() || response.Curve() != shared.Curve() {
		return nil, xerrors.Errorf("%w: mixed curve tags", ErrMalformed)
	}
	return &Complaint{
		Proof:        &zk.Proof{Challenge: challenge, Response: response},
		SharedSecret: shared,
	}, nil
}

// Message is an opaque wire record carrying a serialized complaint
// inside a signed protocol message. The envelope and its versioning
// belong to the surrounding protocol.
type Message struct {
	Complaint []byte
}

// FromMessage deserializes and validates the complaint carried by a
// wire record.
func FromMessage(m *Message) (*Complaint, error) {
	return Deserialize(m.Complaint)
}

// Equal reports whether two complaints carry the same shared secret
// and proof.
func (c *Complaint) Equal(o *Complaint) bool {
	return c.SharedSecret.Equal(o.SharedSecret) &&
		c.Proof.Challenge.Equal(o.Proof.Challenge) &&
		c.Proof.Response.Equal(o.Proof.Response)
}
