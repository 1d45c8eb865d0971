package weavetest

import (
	"testing"

	settle "github.com/iov-one/settle"
)

// ParseAddress takes an address in a human readable format and returns its
// binary representation. This function is a test helper that is using
// settle.ParseAddress function functionality.
func ParseAddress(t testing.TB, encodedAddress string) settle.Address {
	t.Helper()

	addr, err := settle.ParseAddress(encodedAddress)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encodedAddress, err)
	}
	return addr
}

// Derive is a test helper for settle.Derive that fails the test instead of
// returning an error.
func Derive(t testing.TB, tag string, owner settle.Address, nonce []byte) settle.Address {
	t.Helper()

	addr, err := settle.Derive(tag, owner, nonce)
	if err != nil {
		t.Fatalf("cannot derive %q address: %s", tag, err)
	}
	return addr
}
