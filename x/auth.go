package x

import (
	settle "github.com/iov-one/settle"
	"github.com/iov-one/settle/errors"
)

// Authenticator is an interface we can use to extract authentication info
// from the context. This should be passed into the constructor of
// handlers, so we can plug in another authentication system,
// rather than hard-coding x/auth for all extensions.
type Authenticator interface {
	// GetConditions reveals all Conditions fulfilled by the request, the
	// main signer first.
	GetConditions(settle.Context) []settle.Condition
	// HasAddress checks if any condition matches this address
	HasAddress(settle.Context, settle.Address) bool
}

// MainSigner returns the first permission if any, otherwise nil
func MainSigner(ctx settle.Context, auth Authenticator) settle.Condition {
	signers := auth.GetConditions(ctx)
	if len(signers) == 0 {
		return nil
	}
	return signers[0]
}

// Caller returns the address of the main signer. It fails with
// ErrUnauthorized when the request carries no identity.
func Caller(ctx settle.Context, auth Authenticator) (settle.Address, error) {
	signer := MainSigner(ctx, auth)
	if signer == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "no caller identity")
	}
	return signer.Address(), nil
}
