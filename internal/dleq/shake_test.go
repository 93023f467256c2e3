package dleq

import (
	"math/big"
	"testing"

	"golang.org/x/crypto/sha3"

	"github.com/privacypass/p256token/internal/curve"
)

func TestGetShakeScalarStaysBelowOrder(t *testing.T) {
	shake := sha3.NewShake256()
	shake.Write([]byte("fixed shake seed for testing"))

	for i := 0; i < 8; i++ {
		s := getShakeScalar(shake)
		if new(big.Int).SetBytes(s.Bytes()).Cmp(curve.Order) >= 0 {
			t.Fatalf("getShakeScalar produced a scalar not below the group order: %x", s.Bytes())
		}
		if s.IsZero() {
			// Not itself a failure, but flag it: a run of zero scalars
			// would be a sign the mask/rejection logic is broken.
			t.Log("getShakeScalar produced a zero scalar")
		}
	}
}

func TestGetShakeScalarAdvancesSpongeState(t *testing.T) {
	shakeA := sha3.NewShake256()
	shakeA.Write([]byte("same seed"))
	shakeB := sha3.NewShake256()
	shakeB.Write([]byte("same seed"))

	first := getShakeScalar(shakeA)
	firstAgain := getShakeScalar(shakeB)
	if !bytesEqualScalar(first, firstAgain) {
		t.Fatal("two freshly seeded sponges produced different first scalars")
	}

	second := getShakeScalar(shakeA)
	if bytesEqualScalar(first, second) {
		t.Fatal("consecutive draws from the same sponge produced the same scalar")
	}
}

// TestScalarMaskTableMatchesRecordedValues pins scalarMask against its
// literal expected contents. P-256's own order has bitLen 256, so index 0
// (the only index this package's other tests ever exercise through
// getShakeScalar) is the no-op mask 0xff; a corrupted entry at any other
// index would only bite a curve whose order isn't byte-aligned, and would
// otherwise go uncaught by every other test in this file.
func TestScalarMaskTableMatchesRecordedValues(t *testing.T) {
	want := [8]byte{0xff, 0x01, 0x03, 0x07, 0x0f, 0x1f, 0x3f, 0x7f}
	if scalarMask != want {
		t.Fatalf("scalarMask = %v, want %v", scalarMask, want)
	}
}

// TestScalarMaskClearsHighBitsForNonByteAlignedOrder exercises the
// masking arithmetic getShakeScalar performs — bitLen%8, table lookup,
// buf[0] &= mask — directly against every table entry, including the
// non-trivial ones P-256's byte-aligned order never reaches. This is the
// same computation getShakeScalar does inline, checked in isolation so an
// off-by-one in the table or the modulus can't hide behind P-256's
// no-op case.
func TestScalarMaskClearsHighBitsForNonByteAlignedOrder(t *testing.T) {
	for bitLen := 249; bitLen <= 256; bitLen++ {
		extra := bitLen % 8
		mask := scalarMask[extra]

		masked := byte(0xff) & mask
		wantSetBits := extra
		if extra == 0 {
			wantSetBits = 8
		}
		if popcount(masked) != wantSetBits {
			t.Fatalf("bitLen %d: scalarMask[%d]=0x%02x clears down to %d set bits, want %d", bitLen, extra, mask, popcount(masked), wantSetBits)
		}
		if masked|mask != mask {
			t.Fatalf("bitLen %d: scalarMask[%d]=0x%02x is not a prefix mask of the low bits", bitLen, extra, mask)
		}
	}
}

func popcount(b byte) int {
	n := 0
	for b != 0 {
		n += int(b & 1)
		b >>= 1
	}
	return n
}

func bytesEqualScalar(a, b curve.Scalar) bool {
	ab, bb := a.Bytes(), b.Bytes()
	if len(ab) != len(bb) {
		return false
	}
	for i := range ab {
		if ab[i] != bb[i] {
			return false
		}
	}
	return true
}
