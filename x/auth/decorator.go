/*
Package auth carries the identities of the caller through the request
context.

Signature verification is done by the host before the request reaches the
application. The host places every verified condition in the context with
WithConditions and the Decorator rejects any request that arrives without
one.
*/
package auth

import (
	settle "github.com/iov-one/settle"
	"github.com/iov-one/settle/errors"
)

//----------------- Decorator ----------------
//
// This is just a binding from the functionality into the
// Application stack, not much business logic here.

// Decorator requires every request to carry at least one well formed
// condition.
type Decorator struct{}

var _ settle.Decorator = Decorator{}

func NewDecorator() Decorator {
	return Decorator{}
}

// Check verifies the identities before calling down the stack
func (d Decorator) Check(ctx settle.Context, store settle.KVStore, tx settle.Tx, next settle.Checker) (*settle.CheckResult, error) {
	if err := requireConditions(ctx); err != nil {
		return nil, err
	}
	return next.Check(ctx, store, tx)
}

// Deliver verifies the identities before calling down the stack
func (d Decorator) Deliver(ctx settle.Context, store settle.KVStore, tx settle.Tx, next settle.Deliverer) (*settle.DeliverResult, error) {
	if err := requireConditions(ctx); err != nil {
		return nil, err
	}
	return next.Deliver(ctx, store, tx)
}

func requireConditions(ctx settle.Context) error {
	conds := GetConditions(ctx)
	if len(conds) == 0 {
		return errors.Wrap(errors.ErrUnauthorized, "no caller identity")
	}
	for i, c := range conds {
		if err := c.Validate(); err != nil {
			return errors.Wrapf(err, "condition %d", i)
		}
	}
	return nil
}
