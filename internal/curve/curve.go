// Package curve implements the P-256 point and scalar primitives the
// 2HashDH token scheme is built on: SEC1 encoding, compression, and the
// try-and-increment hash-to-curve map. Arithmetic is delegated to
// circl/group's constant-time P-256 backend; this package only adds the
// SEC1 framing and rejection-sampling rules the wire protocol requires.
package curve

import (
	"crypto/elliptic"
	"crypto/rand"
	"errors"
	"math/big"

	"github.com/cloudflare/circl/group"
)

// ErrTag is returned when a supposedly-uncompressed SEC1 buffer does not
// begin with the 0x04 tag.
var ErrTag = errors.New("curve: invalid SEC1 tag")

// ErrOffCurve is returned when a decoded (x, y) pair fails the curve
// equation, or the group rejects a candidate element outright.
var ErrOffCurve = errors.New("curve: point not on curve")

// ErrInvalidScalar is returned when a scalar is zero where an inverse is
// required, or is not less than the group order where that is required.
var ErrInvalidScalar = errors.New("curve: invalid scalar")

// Group is the P-256 instantiation every operation in this package binds
// to; nothing here is curve-generic.
var Group = group.P256

// Order is the P-256 base point order, r, as used by the range check in
// ScalarFromBytes and the rejection sampling in getShakeScalar. circl/group does not
// expose the order as a big.Int directly, so it is read once from the
// standard library's curve parameters.
var Order = elliptic.P256().Params().N

// ScalarLen is the fixed byte length of a P-256 scalar or field element.
const ScalarLen = 32

// UncompressedLen is the length of a SEC1-uncompressed point: 0x04 || X || Y.
const UncompressedLen = 1 + 2*ScalarLen

// CompressedLen is the length of a SEC1-compressed point: tag || X.
const CompressedLen = 1 + ScalarLen

// Point is a P-256 affine point, backed by a circl/group Element.
type Point struct {
	e group.Element
}

// Scalar is an integer mod the P-256 group order, backed by a circl/group
// Scalar.
type Scalar struct {
	s group.Scalar
}

// Generator returns the P-256 base point.
func Generator() Point {
	return Point{e: Group.Generator()}
}

// Identity returns the point at infinity.
func Identity() Point {
	return Point{e: Group.Identity()}
}

// IsIdentity reports whether p is the identity element.
func (p Point) IsIdentity() bool {
	return p.e.IsIdentity()
}

// Equal reports whether p and q represent the same point.
func (p Point) Equal(q Point) bool {
	return p.e.IsEqual(q.e)
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	out := Group.NewElement()
	out.Add(p.e, q.e)
	return Point{e: out}
}

// ScalarMult returns k*p.
func (p Point) ScalarMult(k Scalar) Point {
	out := Group.NewElement()
	out.Mul(p.e, k.s)
	return Point{e: out}
}

// GeneratorMult returns k*G.
func GeneratorMult(k Scalar) Point {
	return Generator().ScalarMult(k)
}

// Sec1Encode returns the SEC1 uncompressed encoding 0x04 || X || Y.
func (p Point) Sec1Encode() []byte {
	enc, err := p.e.MarshalBinary()
	if err != nil {
		// circl only fails to marshal a value that was never a valid
		// Element to begin with; every Point in this package is
		// constructed from a validated Element.
		panic("curve: marshal of a validated point failed: " + err.Error())
	}
	return enc
}

// Sec1Decode parses a SEC1 uncompressed point (0x04 || X || Y). It fails
// with ErrTag if the leading byte is not 0x04, and with ErrOffCurve if the
// coordinates do not satisfy the curve equation.
func Sec1Decode(data []byte) (Point, error) {
	if len(data) == 0 || data[0] != 0x04 {
		return Point{}, ErrTag
	}
	e := Group.NewElement()
	if err := e.UnmarshalBinary(data); err != nil {
		return Point{}, ErrOffCurve
	}
	return Point{e: e}, nil
}

// CompressPoint returns the SEC1 compressed encoding {0x02,0x03} || X.
func (p Point) CompressPoint() []byte {
	enc, err := p.e.MarshalBinaryCompress()
	if err != nil {
		panic("curve: compress of a validated point failed: " + err.Error())
	}
	return enc
}

// DecompressPoint reinterprets x as an X coordinate and tag as the SEC1
// compression tag (0x02 even-y, 0x03 odd-y), recovering the corresponding
// on-curve point. It returns ok=false (never an error) on any failure —
// non-residue X, off-curve result, or malformed length — since
// hash-to-curve relies on this failing silently and retrying.
func DecompressPoint(x []byte, tag byte) (p Point, ok bool) {
	if len(x) != ScalarLen || (tag != 0x02 && tag != 0x03) {
		return Point{}, false
	}
	buf := make([]byte, 0, CompressedLen)
	buf = append(buf, tag)
	buf = append(buf, x...)

	e := Group.NewElement()
	if err := e.UnmarshalBinary(buf); err != nil {
		return Point{}, false
	}
	return Point{e: e}, true
}

// RandomScalar draws a scalar uniformly from [1, r) using the OS CSPRNG.
func RandomScalar() Scalar {
	return Scalar{s: Group.RandomNonZeroScalar(rand.Reader)}
}

// ScalarFromBytes interprets data as a big-endian integer and returns it as
// a Scalar, failing with ErrInvalidScalar if the value is >= the group
// order. data need not be exactly ScalarLen bytes; it is treated as an
// arbitrary-length big-endian integer and zero-padded/truncated-checked
// before being handed to the group.
func ScalarFromBytes(data []byte) (Scalar, error) {
	v := new(big.Int).SetBytes(data)
	if v.Sign() < 0 || v.Cmp(Order) >= 0 {
		return Scalar{}, ErrInvalidScalar
	}
	padded := make([]byte, ScalarLen)
	v.FillBytes(padded)

	s := Group.NewScalar()
	if err := s.UnmarshalBinary(padded); err != nil {
		return Scalar{}, ErrInvalidScalar
	}
	return Scalar{s: s}, nil
}

// Bytes returns the fixed-length big-endian encoding of the scalar.
func (s Scalar) Bytes() []byte {
	enc, err := s.s.MarshalBinary()
	if err != nil {
		panic("curve: marshal of a validated scalar failed: " + err.Error())
	}
	return enc
}

// IsZero reports whether s is the zero scalar.
func (s Scalar) IsZero() bool {
	return s.s.IsZero()
}

// Inverse returns s^-1 mod r, failing with ErrInvalidScalar if s is zero.
func (s Scalar) Inverse() (Scalar, error) {
	if s.s.IsZero() {
		return Scalar{}, ErrInvalidScalar
	}
	out := Group.NewScalar()
	out.Inv(s.s)
	return Scalar{s: out}, nil
}

// Add returns s + o mod r.
func (s Scalar) Add(o Scalar) Scalar {
	out := Group.NewScalar()
	out.Add(s.s, o.s)
	return Scalar{s: out}
}

// Sub returns s - o mod r.
func (s Scalar) Sub(o Scalar) Scalar {
	out := Group.NewScalar()
	out.Sub(s.s, o.s)
	return Scalar{s: out}
}

// Mul returns s * o mod r.
func (s Scalar) Mul(o Scalar) Scalar {
	out := Group.NewScalar()
	out.Mul(s.s, o.s)
	return Scalar{s: out}
}
