package weavetest

import (
	"context"
	"fmt"

	settle "github.com/iov-one/settle"
)

// Auth is a mock implementing x.Authenticator interface.
//
// This structure authenticates any of referenced conditions.
// You can use either Signer or Signers (or both) attributes to reference
// conditions. This is for the convinience and each time all signers
// (regardless which attribute) are considered.
type Auth struct {
	// Signer represents an authentication of a single signer. This is a
	// convinience attribute when creating an authentication method for a
	// single signer.
	// When authenticating all signers declared on this structure are
	// considered.
	Signer settle.Condition

	// Signers represents an authentication of multiple signers.
	Signers []settle.Condition
}

// GetConditions returns Signer first, followed by Signers, so that Signer
// is the main signer of the request.
func (a *Auth) GetConditions(settle.Context) []settle.Condition {
	if a.Signer == nil {
		return a.Signers
	}
	return append([]settle.Condition{a.Signer}, a.Signers...)
}

func (a *Auth) HasAddress(ctx settle.Context, addr settle.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}

// CtxAuth is a mock implementing x.Authenticator interface.
//
// This implementation is using context to store and retrieve permissions.
type CtxAuth struct {
	// Key used to set and retrieve conditions from the context. For
	// convinience only string type keys are allowed.
	Key string
}

func (a *CtxAuth) SetConditions(ctx settle.Context, permissions ...settle.Condition) settle.Context {
	return context.WithValue(ctx, a.Key, permissions)
}

func (a *CtxAuth) GetConditions(ctx settle.Context) []settle.Condition {
	val := ctx.Value(a.Key)
	if val == nil {
		return nil
	}
	conds, ok := val.([]settle.Condition)
	if !ok {
		panic(fmt.Sprintf("instead of []settle.Condition got %T", ctx.Value(a.Key)))
	}
	return conds
}

func (a *CtxAuth) HasAddress(ctx settle.Context, addr settle.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}
