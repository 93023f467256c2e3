package wire

import (
	"encoding/base64"

	"github.com/privacypass/p256token/errs"
	"github.com/privacypass/p256token/internal/curve"
)

// PersistPoint returns the base64 encoding of X||Y — the affine
// coordinates with no leading SEC1 tag — for storing a point outside the
// process (e.g. a browser's localStorage). This is intentionally distinct
// from Sec1Encode, which always carries the 0x04 tag; the two MUST NOT be
// used interchangeably with the issuer.
func PersistPoint(p curve.Point) string {
	sec1 := p.Sec1Encode() // 0x04 || X || Y
	return base64.StdEncoding.EncodeToString(sec1[1:])
}

// ParsePersistedPoint decodes the tag-less X||Y form written by
// PersistPoint back into a point, by re-attaching the 0x04 tag before
// handing it to the SEC1 decoder.
func ParsePersistedPoint(encoded string) (curve.Point, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return curve.Point{}, errs.Wrap(errs.MalformedInput, err)
	}
	if len(raw) != 2*curve.ScalarLen {
		return curve.Point{}, errs.New(errs.MalformedInput, "persisted point has wrong length")
	}
	tagged := append([]byte{0x04}, raw...)
	p, err := curve.Sec1Decode(tagged)
	if err != nil {
		return curve.Point{}, errs.Wrap(errs.OffCurve, err)
	}
	return p, nil
}
