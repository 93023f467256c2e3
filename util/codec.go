// Package util collects the small "must succeed or fail the test"
// encode/decode helpers this module's fixture-driven tests lean on.
package util

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"testing"
)

func fatalOnError(t *testing.T, err error, msg string) {
	if err != nil {
		realMsg := fmt.Sprintf("%s: %v", msg, err)
		if t != nil {
			t.Fatalf(realMsg)
		} else {
			panic(realMsg)
		}
	}
}

// MustUnhex decodes a hex fixture string, failing the test on error.
func MustUnhex(t *testing.T, h string) []byte {
	out, err := hex.DecodeString(h)
	fatalOnError(t, err, "Unhex failed")
	return out
}

// MustHex encodes bytes as a hex string, for writing fixture literals.
func MustHex(d []byte) string {
	return hex.EncodeToString(d)
}

// MustUnbase64 decodes a standard-base64 fixture string, failing the test
// on error.
func MustUnbase64(t *testing.T, s string) []byte {
	out, err := base64.StdEncoding.DecodeString(s)
	fatalOnError(t, err, "Unbase64 failed")
	return out
}

// MustBase64 encodes bytes as standard base64, for writing fixture
// literals or building blobs by hand in tests.
func MustBase64(d []byte) string {
	return base64.StdEncoding.EncodeToString(d)
}
