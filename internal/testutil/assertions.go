// Package testutil provides shared test assertions for the codec's
// byte/bit level round-trip checks, in the style of the teacher's
// internal/testutil (testing.TB helpers, t.Helper()).
package testutil

import (
	"bytes"
	"fmt"
	"testing"
)

// AssertBytesEqual fails with a hex dump of both sides when expected and
// actual differ.
func AssertBytesEqual(t testing.TB, expected, actual []byte, msg string) {
	t.Helper()

	if bytes.Equal(expected, actual) {
		return
	}
	t.Fatalf("%s: bytes mismatch\nexpected: %s\nactual:   %s", msg, DumpBytes(expected), DumpBytes(actual))
}

// AssertBytesEqualModuloTrailingZeroBits compares two byte buffers after
// dropping every trailing zero byte from each, so buffers that differ only
// in trailing zero padding compare equal (spec P1's trailing-padding
// caveat).
func AssertBytesEqualModuloTrailingZeroBits(t testing.TB, expected, actual []byte, msg string) {
	t.Helper()

	trimmed := func(b []byte) []byte {
		out := append([]byte(nil), b...)
		for len(out) > 0 && out[len(out)-1] == 0 {
			out = out[:len(out)-1]
		}
		return out
	}

	e, a := trimmed(expected), trimmed(actual)
	if !bytes.Equal(e, a) {
		t.Fatalf("%s: bytes mismatch after trimming trailing zero bytes\nexpected: %s\nactual:   %s", msg, DumpBytes(e), DumpBytes(a))
	}
}

// DumpBytes renders a byte slice as space-separated hex, for readable
// test failure output.
func DumpBytes(b []byte) string {
	var buf bytes.Buffer
	for i, v := range b {
		if i > 0 {
			buf.WriteByte(' ')
		}
		fmt.Fprintf(&buf, "%02x", v)
	}
	return buf.String()
}

// RequireNoError fails immediately with context when err is non-nil.
func RequireNoError(t testing.TB, err error, context string) {
	t.Helper()
	if err != nil {
		t.Fatalf("%s: %v", context, err)
	}
}
