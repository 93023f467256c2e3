// Package dleq verifies the non-interactive Chaum-Pedersen batch proof
// that a set of signed points were all produced with the same secret
// scalar as a public commitment pair (G, H). The batching, per-index
// scalar derivation, and Fiat-Shamir challenge recomputation must match
// the issuer bit-for-bit.
package dleq

import "github.com/privacypass/p256token/internal/curve"

// Proof is a Chaum-Pedersen response/challenge pair {C, R}, as returned in
// the issuance response's batch-proof blob.
type Proof struct {
	C curve.Scalar
	R curve.Scalar
}
