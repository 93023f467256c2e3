package curve

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"
)

// pointGenerationSeed is the ASN.1 OID-derived separator string used by the
// try-and-increment map, taken verbatim (as raw ASCII bytes, not any
// Unicode-normalized form) from the issuer implementation this client must
// match bit-for-bit.
var pointGenerationSeed = []byte("1.2.840.100045.3.1.7 point generation seed")

// maxHashToCurveIterations bounds the try-and-increment loop. Each attempt
// fails about half the time (when the digest is not the X coordinate of a
// curve point), so ten attempts leave a failure probability of ~2^-10 per
// seed. Exhaustion is reported as an error at this layer; token
// generation supplies the retry with a fresh seed, one level up.
const maxHashToCurveIterations = 10

// ErrHashToCurveExhausted is returned when ten successive SHA-256 rounds
// fail to land on a valid curve point.
var ErrHashToCurveExhausted = errors.New("curve: hash-to-curve exhausted all iterations")

// HashToCurve maps a 32-byte seed onto a P-256 point using try-and-increment
// decompression. It is bit-exact with the issuer's implementation: every
// attempt hashes separator || seed || counter in a fresh SHA-256 context,
// the counter is little-endian, and the even-tag (0x02) candidate is tried
// before the odd-tag (0x03) candidate at each iteration.
func HashToCurve(seed []byte) (Point, error) {
	cur := seed
	for i := 0; i < maxHashToCurveIterations; i++ {
		var ctr [4]byte
		binary.LittleEndian.PutUint32(ctr[:], uint32(i))

		h := sha256.New()
		h.Write(pointGenerationSeed)
		h.Write(cur)
		h.Write(ctr[:])
		d := h.Sum(nil)

		if p, ok := DecompressPoint(d, 0x02); ok {
			return p, nil
		}
		if p, ok := DecompressPoint(d, 0x03); ok {
			return p, nil
		}
		cur = d
	}
	return Point{}, ErrHashToCurveExhausted
}
