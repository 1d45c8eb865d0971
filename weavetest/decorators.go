package weavetest

import settle "github.com/iov-one/settle"

// Decorator is a settle.Decorator mock that records every request. It
// returns CheckErr or DeliverErr without calling the next handler when set.
type Decorator struct {
	calls
	CheckErr   error
	DeliverErr error
}

var _ settle.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx settle.Context, db settle.KVStore, tx settle.Tx, next settle.Checker) (*settle.CheckResult, error) {
	d.record(tx, false)
	if d.CheckErr != nil {
		return &settle.CheckResult{}, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx settle.Context, db settle.KVStore, tx settle.Tx, next settle.Deliverer) (*settle.DeliverResult, error) {
	d.record(tx, true)
	if d.DeliverErr != nil {
		return &settle.DeliverResult{}, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

// Decorate returns a handler that passes every request through d before h.
func Decorate(h settle.Handler, d settle.Decorator) settle.Handler {
	return decorated{next: h, d: d}
}

type decorated struct {
	next settle.Handler
	d    settle.Decorator
}

func (w decorated) Check(ctx settle.Context, db settle.KVStore, tx settle.Tx) (*settle.CheckResult, error) {
	return w.d.Check(ctx, db, tx, w.next)
}

func (w decorated) Deliver(ctx settle.Context, db settle.KVStore, tx settle.Tx) (*settle.DeliverResult, error) {
	return w.d.Deliver(ctx, db, tx, w.next)
}
