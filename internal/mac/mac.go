// Package mac derives the redemption MAC key from an unblinded signed
// point and binds it to request data using HMAC-SHA256.
package mac

import (
	"crypto/hmac"
	"crypto/sha256"

	"github.com/privacypass/p256token/internal/curve"
)

// deriveKeyLabel is used both as the HMAC key and as the first message
// update for DeriveKey. It looks like a bug, but the issuance server this
// client talks to replicates it, so "fixing" it would break interop.
var deriveKeyLabel = []byte("hash_derive_key")

var requestBindingLabel = []byte("hash_request_binding")

// DeriveKey computes the 32-byte redemption key from an unblinded signed
// point N and the original token bytes. The HMAC key is the literal label
// bytes hash_derive_key; those same bytes are also fed as the first
// message update, ahead of token and Sec1Encode(N).
func DeriveKey(n curve.Point, token []byte) []byte {
	h := hmac.New(sha256.New, deriveKeyLabel)
	h.Write(deriveKeyLabel)
	h.Write(token)
	h.Write(n.Sec1Encode())
	return h.Sum(nil)
}

// RequestBinding computes an HMAC-SHA256 over the label hash_request_binding
// followed by each element of data in order, keyed by the redemption key
// returned from DeriveKey.
func RequestBinding(key []byte, data ...[]byte) []byte {
	h := hmac.New(sha256.New, key)
	h.Write(requestBindingLabel)
	for _, d := range data {
		h.Write(d)
	}
	return h.Sum(nil)
}

// CheckRequestBinding recomputes RequestBinding(key, data...) and compares
// it against mac in constant time.
func CheckRequestBinding(key []byte, mac []byte, data ...[]byte) bool {
	expected := RequestBinding(key, data...)
	return hmac.Equal(expected, mac)
}

// RedemptionBindingData builds the request-data list the original Privacy
// Pass browser extension bound its redemption MAC to: the request host and
// path, in that order. The MAC binding accepts an arbitrary ordered list of
// byte strings; this is the concrete shape used to authenticate an HTTP
// redemption rather than some other application-defined value.
func RedemptionBindingData(host, path string) [][]byte {
	return [][]byte{[]byte(host), []byte(path)}
}
