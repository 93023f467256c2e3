package pptoken

import (
	"strings"

	"golang.org/x/crypto/cryptobyte"

	"github.com/privacypass/p256token/errs"
)

// RedemptionContext describes the request a token is being redeemed for:
// the host and path the token authenticates, plus any extra
// application-defined fields the redeemer wants bound into the MAC.
type RedemptionContext struct {
	Host  string
	Path  string
	Extra []string
}

// Data returns the ordered byte slices RequestBinding/CheckRequestBinding
// should be fed: host, then path, then each Extra field in order.
func (c RedemptionContext) Data() [][]byte {
	out := make([][]byte, 0, 2+len(c.Extra))
	out = append(out, []byte(c.Host), []byte(c.Path))
	for _, e := range c.Extra {
		out = append(out, []byte(e))
	}
	return out
}

// Marshal encodes the context for transport alongside a redemption
// request: length-prefixed host, length-prefixed path, comma-joined extra
// fields length-prefixed as a whole.
func (c RedemptionContext) Marshal() []byte {
	b := cryptobyte.NewBuilder(nil)
	b.AddUint16LengthPrefixed(func(b *cryptobyte.Builder) {
		b.AddBytes([]byte(c.Host))
	})
	b.AddUint16LengthPrefixed(func(b *cryptobyte.Builder) {
		b.AddBytes([]byte(c.Path))
	})
	b.AddUint16LengthPrefixed(func(b *cryptobyte.Builder) {
		b.AddBytes([]byte(strings.Join(c.Extra, ",")))
	})
	return b.BytesOrPanic()
}

// UnmarshalRedemptionContext parses the wire form Marshal produces.
func UnmarshalRedemptionContext(data []byte) (RedemptionContext, error) {
	s := cryptobyte.String(data)

	var host, path, extra cryptobyte.String
	if !s.ReadUint16LengthPrefixed(&host) ||
		!s.ReadUint16LengthPrefixed(&path) ||
		!s.ReadUint16LengthPrefixed(&extra) ||
		!s.Empty() {
		return RedemptionContext{}, errs.New(errs.MalformedInput, "invalid RedemptionContext encoding")
	}

	c := RedemptionContext{
		Host: string(host),
		Path: string(path),
	}
	if len(extra) > 0 {
		c.Extra = strings.Split(string(extra), ",")
	}
	return c, nil
}
