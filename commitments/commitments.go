// Package commitments implements the process-wide (G, H) commitment
// snapshot: an external loader publishes a pair atomically, and a
// verification in progress observes one stable pair for its entire
// duration regardless of concurrent republishing.
package commitments

import (
	"encoding/base64"
	"encoding/json"
	"sync/atomic"

	"github.com/privacypass/p256token/errs"
	"github.com/privacypass/p256token/internal/curve"
)

// Selector picks which entry of the commitment file to load, mirroring
// a build-time "1.0" vs "dev" choice.
type Selector string

const (
	Production Selector = "1.0"
	Dev        Selector = "dev"
)

// Pair is a validated (G, H) commitment: G is the agreed base point (the
// curve generator, in this scheme) and H = k*G for the issuer's secret k.
type Pair struct {
	G curve.Point
	H curve.Point
}

// commitmentEntry mirrors one selector's worth of the commitment file's
// JSON shape: base64 SEC1-uncompressed points.
type commitmentEntry struct {
	G string `json:"G"`
	H string `json:"H"`
}

// ParseCommitmentFile decodes the commitment file's JSON body (keyed by an
// implementation-defined top-level commitments key, whose value is a map
// from Selector to {G, H}) and returns the validated Pair for sel.
func ParseCommitmentFile(body []byte, commitmentsKey string, sel Selector) (Pair, error) {
	var doc map[string]map[Selector]commitmentEntry
	if err := json.Unmarshal(body, &doc); err != nil {
		return Pair{}, errs.Wrap(errs.MalformedInput, err)
	}

	entries, ok := doc[commitmentsKey]
	if !ok {
		return Pair{}, errs.New(errs.MalformedInput, "commitments key not present")
	}
	entry, ok := entries[sel]
	if !ok {
		return Pair{}, errs.New(errs.Unavailable, "no commitment for selector "+string(sel))
	}

	return decodePair(entry)
}

func decodePair(entry commitmentEntry) (Pair, error) {
	gBytes, err := base64.StdEncoding.DecodeString(entry.G)
	if err != nil {
		return Pair{}, errs.Wrap(errs.MalformedInput, err)
	}
	hBytes, err := base64.StdEncoding.DecodeString(entry.H)
	if err != nil {
		return Pair{}, errs.Wrap(errs.MalformedInput, err)
	}

	// A wrong leading SEC1 tag is malformed input; anything else
	// Sec1Decode rejects is an off-curve point.
	decodeErr := func(err error) error {
		if err == curve.ErrTag {
			return errs.Wrap(errs.MalformedInput, err)
		}
		return errs.Wrap(errs.OffCurve, err)
	}

	g, err := curve.Sec1Decode(gBytes)
	if err != nil {
		return Pair{}, decodeErr(err)
	}
	h, err := curve.Sec1Decode(hBytes)
	if err != nil {
		return Pair{}, decodeErr(err)
	}

	return Pair{G: g, H: h}, nil
}

// Store holds the process-wide active commitment pair. The zero Store has
// no pair loaded; Snapshot on it returns Unavailable.
type Store struct {
	active atomic.Pointer[Pair]
}

// Set atomically publishes a new commitment pair. Readers that have
// already taken a Snapshot are unaffected; only subsequent Snapshot calls
// observe the new pair.
func (s *Store) Set(p Pair) {
	cp := p
	s.active.Store(&cp)
}

// Snapshot returns the currently active commitment pair. It fails with
// Unavailable if none has been published yet.
func (s *Store) Snapshot() (Pair, error) {
	p := s.active.Load()
	if p == nil {
		return Pair{}, errs.New(errs.Unavailable, "no active commitment snapshot")
	}
	return *p, nil
}
