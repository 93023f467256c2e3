// Package pptoken is the client-side core of a Privacy Pass-style
// anonymous token scheme built on the 2HashDH VOPRF over P-256: token
// generation, blinding, unblinding, batch DLEQ proof verification, and
// redemption key derivation. The browser/extension UI, persistence, the
// commitment-file fetch, and redemption HTTP wrapping are external
// collaborators.
package pptoken

import (
	"crypto/rand"

	"github.com/privacypass/p256token/internal/curve"
)

// TokenLen is the fixed length, in bytes, of a token's random preimage.
const TokenLen = 32

// Token pairs the 32 random bytes a client drew with their curve image
// T = HashToCurve(token bytes).
type Token struct {
	Bytes []byte
	Point curve.Point
}

// NewToken draws 32 CSPRNG bytes and hashes them to a curve point,
// retrying with a fresh draw on the (roughly 1 in 1000) event that
// hash-to-curve exhausts its try-and-increment budget, rather than
// silently dropping the failed draw and returning a degenerate token.
func NewToken() (Token, error) {
	for {
		raw := make([]byte, TokenLen)
		if _, err := rand.Read(raw); err != nil {
			return Token{}, err
		}

		p, err := curve.HashToCurve(raw)
		if err != nil {
			continue
		}
		return Token{Bytes: raw, Point: p}, nil
	}
}
