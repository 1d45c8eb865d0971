package weavetest

import (
	"crypto/rand"

	settle "github.com/iov-one/settle"
	"golang.org/x/crypto/ed25519"
)

// NewKey generates a new ed25519 private key.
func NewKey() ed25519.PrivateKey {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		panic(err)
	}
	return priv
}

// NewCondition returns a signature condition of a freshly generated key.
// Each call returns a different condition.
func NewCondition() settle.Condition {
	return KeyCondition(NewKey())
}

// KeyCondition returns the condition fulfilled by a signature of the given
// key.
func KeyCondition(key ed25519.PrivateKey) settle.Condition {
	pub := key.Public().(ed25519.PublicKey)
	return settle.NewCondition("sigs", "ed25519", pub)
}
