package utils

import (
	settle "github.com/iov-one/settle"
	"github.com/iov-one/settle/errors"
)

// Savepoint runs the wrapped handler against a cache of the store. The cache
// is written to the store only when the handler succeeds, so a failed
// request leaves no trace.
//
// The zero value is disabled for both calls, use OnCheck and OnDeliver to
// select where it applies.
type Savepoint struct {
	onCheck   bool
	onDeliver bool
}

var _ settle.Decorator = Savepoint{}

// NewSavepoint returns a Savepoint that is not active for any call.
func NewSavepoint() Savepoint {
	return Savepoint{}
}

// OnCheck returns a copy of the savepoint that is also active for Check.
func (s Savepoint) OnCheck() Savepoint {
	s.onCheck = true
	return s
}

// OnDeliver returns a copy of the savepoint that is also active for Deliver.
func (s Savepoint) OnDeliver() Savepoint {
	s.onDeliver = true
	return s
}

func (s Savepoint) Check(ctx settle.Context, db settle.KVStore, tx settle.Tx, next settle.Checker) (*settle.CheckResult, error) {
	if !s.onCheck {
		return next.Check(ctx, db, tx)
	}
	var res *settle.CheckResult
	err := staged(ctx, db, tx, func(cache settle.KVStore) (err error) {
		res, err = next.Check(ctx, cache, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s Savepoint) Deliver(ctx settle.Context, db settle.KVStore, tx settle.Tx, next settle.Deliverer) (*settle.DeliverResult, error) {
	if !s.onDeliver {
		return next.Deliver(ctx, db, tx)
	}
	var res *settle.DeliverResult
	err := staged(ctx, db, tx, func(cache settle.KVStore) (err error) {
		res, err = next.Deliver(ctx, cache, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// staged calls fn with a cache wrap of db and writes the cache only if fn
// succeeds. Stores that cannot be cached are passed through unchanged.
func staged(ctx settle.Context, db settle.KVStore, tx settle.Tx, fn func(settle.KVStore) error) error {
	cacheable, ok := db.(settle.CacheableKVStore)
	if !ok {
		return fn(db)
	}

	cache := cacheable.CacheWrap()
	if err := fn(cache); err != nil {
		cache.Discard()
		settle.GetLogger(ctx).Debug("savepoint discarded", "path", pathOf(tx), "err", err)
		return err
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(err, "writing savepoint")
	}
	return nil
}
