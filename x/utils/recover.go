package utils

import (
	settle "github.com/iov-one/settle"
	"github.com/iov-one/settle/errors"
)

// Recovery turns a panic raised while processing a request into an
// ErrPanic error and logs it.
type Recovery struct{}

var _ settle.Decorator = Recovery{}

// NewRecovery creates a Recovery decorator
func NewRecovery() Recovery {
	return Recovery{}
}

func (Recovery) Check(ctx settle.Context, db settle.KVStore, tx settle.Tx, next settle.Checker) (_ *settle.CheckResult, err error) {
	defer recoverRequest(ctx, tx, &err)
	return next.Check(ctx, db, tx)
}

func (Recovery) Deliver(ctx settle.Context, db settle.KVStore, tx settle.Tx, next settle.Deliverer) (_ *settle.DeliverResult, err error) {
	defer recoverRequest(ctx, tx, &err)
	return next.Deliver(ctx, db, tx)
}

// recoverRequest must be deferred directly.
func recoverRequest(ctx settle.Context, tx settle.Tx, err *error) {
	if p := recover(); p != nil {
		*err = errors.Wrapf(errors.ErrPanic, "%v", p)
		settle.GetLogger(ctx).Error("request panicked", "path", pathOf(tx), "panic", p)
	}
}
