package pptoken

import (
	"github.com/privacypass/p256token/commitments"
	"github.com/privacypass/p256token/errs"
	"github.com/privacypass/p256token/internal/blind"
	"github.com/privacypass/p256token/internal/curve"
	"github.com/privacypass/p256token/internal/dleq"
	"github.com/privacypass/p256token/internal/mac"
	"github.com/privacypass/p256token/wire"
)

// Client composes token generation, blinding, batch DLEQ verification, and
// key derivation into the two calls a caller needs: CreateBatchRequest to
// start an issuance, and FinalizeBatch to turn the issuer's response into
// redeemable tokens. Client carries no state of its own; every method is
// safe for concurrent use, and a single issuance batch is expected to be
// driven start-to-finish by one caller.
type Client struct{}

// NewClient returns a ready-to-use Client.
func NewClient() Client {
	return Client{}
}

// IssuanceState holds the per-batch secrets a client must retain between
// sending a TokenRequest and processing its response: the tokens it drew
// and the blinding scalar for each.
type IssuanceState struct {
	tokens  []Token
	blinds  []curve.Scalar
	Request wire.TokenRequest
}

// CreateBatchRequest draws n fresh tokens, blinds each one's curve image,
// and returns both the wire request to send and the state needed to
// finalize the response.
func (c Client) CreateBatchRequest(keyID uint8, n int) (IssuanceState, error) {
	tokens := make([]Token, n)
	blinds := make([]curve.Scalar, n)
	points := make([]curve.Point, n)

	for i := 0; i < n; i++ {
		t, err := NewToken()
		if err != nil {
			return IssuanceState{}, err
		}
		b := blind.Blind(t.Point)

		tokens[i] = t
		blinds[i] = b.Blind
		points[i] = b.Point
	}

	return IssuanceState{
		tokens:  tokens,
		blinds:  blinds,
		Request: wire.NewTokenRequest(keyID, points),
	}, nil
}

// RedeemableToken is a token whose issuance has been verified: N is the
// unblinded signed point k*T, and Key is the redemption MAC key derived
// from it.
type RedeemableToken struct {
	Token Token
	N     curve.Point
	Key   []byte
}

// FinalizeBatch verifies the batch DLEQ proof in proofBlob against the
// commitment pair and the (blinded-token, signed-point) pairs from this
// batch, then unblinds each signed point and derives its redemption key.
// signed must be in the same order as the points sent in state.Request.
func (c Client) FinalizeBatch(state IssuanceState, pair commitments.Pair, signed []curve.Point, proofBlob []byte) ([]RedeemableToken, error) {
	n := len(state.tokens)
	if len(signed) != n {
		return nil, errs.New(errs.MalformedInput, "signed point count does not match request")
	}

	blindedPoints, err := state.Request.Points()
	if err != nil {
		return nil, err
	}

	proof, err := wire.ParseBatchProof(proofBlob)
	if err != nil {
		return nil, err
	}

	if err := dleq.Verify(proof, pair.G, pair.H, blindedPoints, signed); err != nil {
		return nil, err
	}

	out := make([]RedeemableToken, n)
	for i := 0; i < n; i++ {
		nPoint, err := blind.Unblind(state.blinds[i], signed[i])
		if err != nil {
			return nil, err
		}

		key := mac.DeriveKey(nPoint, state.tokens[i].Bytes)
		out[i] = RedeemableToken{
			Token: state.tokens[i],
			N:     nPoint,
			Key:   key,
		}
	}
	return out, nil
}
