package pptoken

import (
	"fmt"

	"golang.org/x/crypto/cryptobyte"

	"github.com/privacypass/p256token/errs"
	"github.com/privacypass/p256token/internal/mac"
)

// RedemptionToken is the wire-encoded payload a client presents when
// redeeming a token: the original preimage bytes plus the request-binding
// MAC computed with the key DeriveKey produced. It has a fixed 32-byte
// preimage and 32-byte HMAC-SHA256 authenticator.
type RedemptionToken struct {
	Preimage      []byte // 32 bytes, TokenLen
	Authenticator []byte // 32 bytes, HMAC-SHA256 output
}

// Marshal encodes preimage || authenticator.
func (t RedemptionToken) Marshal() []byte {
	b := cryptobyte.NewBuilder(nil)
	b.AddBytes(t.Preimage)
	b.AddBytes(t.Authenticator)
	return b.BytesOrPanic()
}

// UnmarshalRedemptionToken parses the wire form Marshal produces.
func UnmarshalRedemptionToken(data []byte) (RedemptionToken, error) {
	s := cryptobyte.String(data)

	var t RedemptionToken
	if !s.ReadBytes(&t.Preimage, TokenLen) || !s.ReadBytes(&t.Authenticator, 32) || !s.Empty() {
		return RedemptionToken{}, errs.New(errs.MalformedInput, fmt.Sprintf("invalid RedemptionToken encoding (%d bytes)", len(data)))
	}
	return t, nil
}

// Redeem builds the RedemptionToken for t, binding its MAC to bindingData
// (in order) using the key derived from t's unblinded signed point.
func (t RedeemableToken) Redeem(bindingData ...[]byte) RedemptionToken {
	return RedemptionToken{
		Preimage:      t.Token.Bytes,
		Authenticator: mac.RequestBinding(t.Key, bindingData...),
	}
}
