package dleq

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/sha3"

	"github.com/privacypass/p256token/errs"
	"github.com/privacypass/p256token/internal/curve"
)

// PerIndexChallenges derives the per-index scalars c_0..c_{n-1} that batch
// (M[i], Z[i]) into the single Chaum-Pedersen instance Verify checks. A
// prover must derive these identically — same seed digest, same
// hex-reseeded SHAKE-256 state, same iteration order — for the resulting
// proof to validate, so this is exported rather than duplicated inside a
// reference prover.
func PerIndexChallenges(g, h curve.Point, m, z []curve.Point) []curve.Scalar {
	n := len(m)

	seed := sha256.New()
	seed.Write(g.Sec1Encode())
	seed.Write(h.Sec1Encode())
	for i := 0; i < n; i++ {
		seed.Write(m[i].Sec1Encode())
		seed.Write(z[i].Sec1Encode())
	}
	seedDigest := seed.Sum(nil)

	// The XOF is seeded with the hex-encoded string of the digest, not
	// its raw bytes — a deliberate quirk of the issuer this client must
	// interoperate with, distinct from the raw-bytes SEC1 encoding used
	// to build the digest itself above.
	shake := sha3.NewShake256()
	shake.Write([]byte(hex.EncodeToString(seedDigest)))

	out := make([]curve.Scalar, n)
	for i := 0; i < n; i++ {
		out[i] = getShakeScalar(shake)
	}
	return out
}

// accumulate folds per-index scalars into the two composite points the
// batched instance is defined over: Mc = sum(c_i * M[i]), Zc = sum(c_i * Z[i]).
func accumulate(c []curve.Scalar, m, z []curve.Point) (mc, zc curve.Point) {
	mc, zc = curve.Identity(), curve.Identity()
	for i := range c {
		mc = mc.Add(m[i].ScalarMult(c[i]))
		zc = zc.Add(z[i].ScalarMult(c[i]))
	}
	return mc, zc
}

// Verify checks a batch Chaum-Pedersen DLEQ proof over the commitment pair
// (g, h) against parallel sequences of blinded tokens m and signed points
// z. It returns nil on success and an *errs.Error otherwise; every failure
// path — length mismatch, empty batch, or challenge mismatch — reports
// through the same taxonomy.
func Verify(proof Proof, g, h curve.Point, m, z []curve.Point) error {
	n := len(m)
	if n == 0 || n != len(z) {
		return errs.New(errs.MalformedInput, "batch must be non-empty with |M| = |Z|")
	}

	c := PerIndexChallenges(g, h, m, z)
	mc, zc := accumulate(c, m, z)

	// A = C*H + R*G, B = C*Zc + R*Mc
	a := h.ScalarMult(proof.C).Add(g.ScalarMult(proof.R))
	b := zc.ScalarMult(proof.C).Add(mc.ScalarMult(proof.R))

	challenge := sha256.New()
	challenge.Write(g.Sec1Encode())
	challenge.Write(h.Sec1Encode())
	challenge.Write(mc.Sec1Encode())
	challenge.Write(zc.Sec1Encode())
	challenge.Write(a.Sec1Encode())
	challenge.Write(b.Sec1Encode())
	recomputed := challenge.Sum(nil)

	if !hmac.Equal(recomputed, proof.C.Bytes()) {
		return errs.New(errs.VerificationFailed, "dleq challenge mismatch")
	}
	return nil
}
