package auth

import (
	"context"

	settle "github.com/iov-one/settle"
	"github.com/iov-one/settle/x"
)

//------------------- Context --------
// Add context information specific to this package

type contextKey int // local to the auth module

const (
	contextKeyConditions contextKey = iota
)

// WithConditions returns a context carrying the given conditions as the
// verified identities of the request. The first condition is the main
// signer.
//
// Only the host may call this, after the conditions were verified. Handlers
// read them back through Authenticate.
func WithConditions(ctx settle.Context, conds ...settle.Condition) settle.Context {
	return context.WithValue(ctx, contextKeyConditions, conds)
}

// GetConditions returns the conditions placed in the context, may be empty.
func GetConditions(ctx settle.Context) []settle.Condition {
	// (val, ok) form to return nil instead of panic if unset
	val, _ := ctx.Value(contextKeyConditions).([]settle.Condition)
	return val
}

// Authenticate implements x.Authenticator using the conditions stored in the
// context.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

// GetConditions returns the conditions placed in the context by the host.
func (Authenticate) GetConditions(ctx settle.Context) []settle.Condition {
	return GetConditions(ctx)
}

// HasAddress returns true if any condition in the context matches addr.
func (a Authenticate) HasAddress(ctx settle.Context, addr settle.Address) bool {
	for _, c := range GetConditions(ctx) {
		if addr.Equals(c.Address()) {
			return true
		}
	}
	return false
}
