// Package blind implements the client-side blinding step of the 2HashDH
// VOPRF: hiding a token's curve image from the issuer behind a random
// scalar, then removing that scalar from the issuer's signed response.
package blind

import "github.com/privacypass/p256token/internal/curve"

// Blinded is the result of blinding a point: the point sent to the issuer,
// and the scalar retained by the client to unblind the response.
type Blinded struct {
	Point curve.Point
	Blind curve.Scalar
}

// Blind draws a fresh scalar b uniformly from [1, r) and returns (b*P, b).
func Blind(p curve.Point) Blinded {
	b := curve.RandomScalar()
	return Blinded{
		Point: p.ScalarMult(b),
		Blind: b,
	}
}

// Unblind removes the blinding factor b from a signed point Q, returning
// b^-1 * Q. It fails with curve.ErrInvalidScalar if b is zero.
func Unblind(b curve.Scalar, q curve.Point) (curve.Point, error) {
	bInv, err := b.Inverse()
	if err != nil {
		return curve.Point{}, err
	}
	return q.ScalarMult(bInv), nil
}
