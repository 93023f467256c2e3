package dleq

import (
	"math/big"

	"golang.org/x/crypto/sha3"

	"github.com/privacypass/p256token/internal/curve"
)

// scalarMask holds, at index (bitLen mod 8), the bitmask that clears the
// unused high bits of the top byte of a squeezed scalar candidate before
// it is compared against the group order. For P-256 (bitLen = 256, extra
// = 0) the mask is a no-op (0xff); the table is carried in full so the
// derivation generalizes cleanly to curves whose order isn't byte-aligned.
var scalarMask = [8]byte{0xff, 0x01, 0x03, 0x07, 0x0f, 0x1f, 0x3f, 0x7f}

// getShakeScalar squeezes 32-byte blocks from an already-initialized
// SHAKE-256 sponge until one, after masking, encodes an integer strictly
// less than the group order. The sponge is not reset between calls: the
// n-th call for a batch of size n continues the same XOF state, so call
// order across a verification is significant.
func getShakeScalar(shake sha3.ShakeHash) curve.Scalar {
	bitLen := curve.Order.BitLen()
	extra := bitLen % 8
	mask := scalarMask[extra]

	buf := make([]byte, curve.ScalarLen)
	for {
		if _, err := shake.Read(buf); err != nil {
			panic("dleq: shake squeeze failed: " + err.Error())
		}
		buf[0] &= mask

		v := new(big.Int).SetBytes(buf)
		if v.Cmp(curve.Order) >= 0 {
			continue
		}

		s, err := curve.ScalarFromBytes(buf)
		if err != nil {
			continue
		}
		return s
	}
}
