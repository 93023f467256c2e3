// Package wire implements the JSON/base64 framing this client's issuance
// responses and outbound token requests use.
package wire

import (
	"bytes"
	"encoding/base64"
	"encoding/json"

	"github.com/privacypass/p256token/errs"
	"github.com/privacypass/p256token/internal/curve"
	"github.com/privacypass/p256token/internal/dleq"
)

// batchProofPrefix precedes the JSON payload inside the decoded blob. It
// is stripped, not parsed, before the JSON object is unmarshaled.
var batchProofPrefix = []byte("batch-proof=")

// outerEnvelope is the top-level JSON object carrying the inner,
// separately base64-encoded proof.
type outerEnvelope struct {
	P string `json:"P"`
}

// innerProof is the JSON object the P field of outerEnvelope base64-decodes
// to: the proof's two scalar fields, themselves base64 of a big-endian
// integer.
type innerProof struct {
	R string `json:"R"`
	C string `json:"C"`
}

// ParseBatchProof decodes a batch-proof blob as received in an issuance
// response: base64 to UTF-8 text, an optional batch-proof= prefix, an
// outer JSON object whose P field is itself base64 of an inner JSON object
// holding base64-encoded big-endian R and C scalars.
func ParseBatchProof(blob []byte) (dleq.Proof, error) {
	decoded := make([]byte, base64.StdEncoding.DecodedLen(len(blob)))
	n, err := base64.StdEncoding.Decode(decoded, blob)
	if err != nil {
		return dleq.Proof{}, errs.Wrap(errs.MalformedInput, err)
	}
	decoded = decoded[:n]
	decoded = bytes.TrimPrefix(decoded, batchProofPrefix)

	var outer outerEnvelope
	if err := json.Unmarshal(decoded, &outer); err != nil {
		return dleq.Proof{}, errs.Wrap(errs.MalformedInput, err)
	}

	innerJSON, err := base64.StdEncoding.DecodeString(outer.P)
	if err != nil {
		return dleq.Proof{}, errs.Wrap(errs.MalformedInput, err)
	}

	var inner innerProof
	if err := json.Unmarshal(innerJSON, &inner); err != nil {
		return dleq.Proof{}, errs.Wrap(errs.MalformedInput, err)
	}

	rBytes, err := base64.StdEncoding.DecodeString(inner.R)
	if err != nil {
		return dleq.Proof{}, errs.Wrap(errs.MalformedInput, err)
	}
	cBytes, err := base64.StdEncoding.DecodeString(inner.C)
	if err != nil {
		return dleq.Proof{}, errs.Wrap(errs.MalformedInput, err)
	}

	r, err := curve.ScalarFromBytes(rBytes)
	if err != nil {
		return dleq.Proof{}, errs.Wrap(errs.InvalidScalar, err)
	}
	c, err := curve.ScalarFromBytes(cBytes)
	if err != nil {
		return dleq.Proof{}, errs.Wrap(errs.InvalidScalar, err)
	}

	return dleq.Proof{R: r, C: c}, nil
}

// MarshalBatchProof is the encoding counterpart of ParseBatchProof, used by
// tests to round-trip a proof this module produced itself without needing
// a live issuance server.
func MarshalBatchProof(p dleq.Proof) ([]byte, error) {
	inner := innerProof{
		R: base64.StdEncoding.EncodeToString(p.R.Bytes()),
		C: base64.StdEncoding.EncodeToString(p.C.Bytes()),
	}
	innerJSON, err := json.Marshal(inner)
	if err != nil {
		return nil, err
	}

	outer := outerEnvelope{P: base64.StdEncoding.EncodeToString(innerJSON)}
	outerJSON, err := json.Marshal(outer)
	if err != nil {
		return nil, err
	}

	payload := append(append([]byte{}, batchProofPrefix...), outerJSON...)
	out := make([]byte, base64.StdEncoding.EncodedLen(len(payload)))
	base64.StdEncoding.Encode(out, payload)
	return out, nil
}
