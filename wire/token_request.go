package wire

import (
	"fmt"

	"golang.org/x/crypto/cryptobyte"

	"github.com/privacypass/p256token/errs"
	"github.com/privacypass/p256token/internal/curve"
)

// TokenRequest is the outbound batch issuance request: one commitment
// selector byte and a count-prefixed sequence of SEC1-compressed blinded
// points. This is the natural encode side of the batch-proof response a
// client receives back, letting a client serialize what it sends without
// an external issuance server to compare against.
type TokenRequest struct {
	KeyID   uint8
	Blinded [][]byte // each element is a 33-byte SEC1-compressed point
}

// NewTokenRequest builds a TokenRequest from a batch of blinded points.
func NewTokenRequest(keyID uint8, points []curve.Point) TokenRequest {
	blinded := make([][]byte, len(points))
	for i, p := range points {
		blinded[i] = p.CompressPoint()
	}
	return TokenRequest{KeyID: keyID, Blinded: blinded}
}

// Marshal encodes the request as key_id || uint16 element count ||
// (33-byte element)*.
func (r TokenRequest) Marshal() []byte {
	b := cryptobyte.NewBuilder(nil)
	b.AddUint8(r.KeyID)
	b.AddUint16(uint16(len(r.Blinded)))
	for _, el := range r.Blinded {
		b.AddBytes(el)
	}
	return b.BytesOrPanic()
}

// UnmarshalTokenRequest parses the wire form Marshal produces.
func UnmarshalTokenRequest(data []byte) (TokenRequest, error) {
	s := cryptobyte.String(data)

	var r TokenRequest
	var count uint16
	if !s.ReadUint8(&r.KeyID) || !s.ReadUint16(&count) {
		return TokenRequest{}, errs.New(errs.MalformedInput, "invalid TokenRequest header")
	}

	r.Blinded = make([][]byte, count)
	for i := 0; i < int(count); i++ {
		var el []byte
		if !s.ReadBytes(&el, curve.CompressedLen) {
			return TokenRequest{}, errs.New(errs.MalformedInput, fmt.Sprintf("invalid TokenRequest element %d", i))
		}
		r.Blinded[i] = el
	}
	if !s.Empty() {
		return TokenRequest{}, errs.New(errs.MalformedInput, "trailing bytes in TokenRequest")
	}
	return r, nil
}

// Points decompresses every blinded element back into a curve.Point.
func (r TokenRequest) Points() ([]curve.Point, error) {
	out := make([]curve.Point, len(r.Blinded))
	for i, el := range r.Blinded {
		if len(el) != curve.CompressedLen {
			return nil, errs.New(errs.MalformedInput, fmt.Sprintf("element %d has wrong length", i))
		}
		p, ok := curve.DecompressPoint(el[1:], el[0])
		if !ok {
			return nil, errs.New(errs.OffCurve, fmt.Sprintf("element %d is not a valid point", i))
		}
		out[i] = p
	}
	return out, nil
}
