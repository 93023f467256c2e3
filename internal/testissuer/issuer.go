// Package testissuer is a minimal reference prover used only by this
// module's own tests, to produce completeness fixtures without an
// external issuance server. Server-side issuance is out of scope for the
// shipped client API; this package is not imported by anything outside
// _test.go files.
package testissuer

import (
	"crypto/sha256"

	"github.com/privacypass/p256token/commitments"
	"github.com/privacypass/p256token/internal/curve"
	"github.com/privacypass/p256token/internal/dleq"
)

// Issuer holds a secret scalar k and the public commitment H = k*G.
type Issuer struct {
	k curve.Scalar
}

// New draws a fresh secret scalar for the issuer.
func New() Issuer {
	return Issuer{k: curve.RandomScalar()}
}

// FromScalar builds an Issuer around a specific secret scalar, for tests
// that need a fixed, reproducible key.
func FromScalar(k curve.Scalar) Issuer {
	return Issuer{k: k}
}

// Commitment returns the public (G, H) pair for this issuer's key.
func (iss Issuer) Commitment() commitments.Pair {
	return commitments.Pair{
		G: curve.Generator(),
		H: curve.Generator().ScalarMult(iss.k),
	}
}

// Sign computes k*p for each blinded point in m, the issuer-side half of
// the VOPRF evaluation.
func (iss Issuer) Sign(m []curve.Point) []curve.Point {
	z := make([]curve.Point, len(m))
	for i, p := range m {
		z[i] = p.ScalarMult(iss.k)
	}
	return z
}

// Prove produces a batch Chaum-Pedersen proof that every element of z was
// produced as k*m[i] for the same k underlying this issuer's commitment,
// using the exact per-index derivation dleq.Verify checks against.
func (iss Issuer) Prove(m, z []curve.Point) dleq.Proof {
	pair := iss.Commitment()
	c := dleq.PerIndexChallenges(pair.G, pair.H, m, z)

	mc, zc := curve.Identity(), curve.Identity()
	for i := range c {
		mc = mc.Add(m[i].ScalarMult(c[i]))
		zc = zc.Add(z[i].ScalarMult(c[i]))
	}

	t := curve.RandomScalar()
	a := curve.Generator().ScalarMult(t)
	b := mc.ScalarMult(t)

	h := sha256.New()
	h.Write(pair.G.Sec1Encode())
	h.Write(pair.H.Sec1Encode())
	h.Write(mc.Sec1Encode())
	h.Write(zc.Sec1Encode())
	h.Write(a.Sec1Encode())
	h.Write(b.Sec1Encode())

	challenge, err := curve.ScalarFromBytes(h.Sum(nil))
	if err != nil {
		// The SHA-256 digest landed on or above the group order — a
		// ~2^-32 event for P-256. Test-only code, so just fail loudly
		// rather than looping for a fresh t.
		panic("testissuer: challenge digest exceeded group order: " + err.Error())
	}

	r := t.Sub(challenge.Mul(iss.k))
	return dleq.Proof{C: challenge, R: r}
}
