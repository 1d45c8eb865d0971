package weavetest

import (
	"testing"

	settle "github.com/iov-one/settle"
	"github.com/iov-one/settle/errors"
	"github.com/stretchr/testify/assert"
)

func TestDecoratorPassesThrough(t *testing.T) {
	var (
		d Decorator
		h Handler
	)
	tx := &Tx{Msg: &Msg{RoutePath: "swap/accept"}}

	_, err := d.Check(nil, nil, tx, &h)
	assert.NoError(t, err)
	_, err = d.Deliver(nil, nil, nil, &h)
	assert.NoError(t, err)

	assert.Equal(t, 1, d.CheckCallCount())
	assert.Equal(t, 1, d.DeliverCallCount())
	assert.Equal(t, 2, h.CallCount())
	assert.Equal(t, []string{"swap/accept", "(missing)"}, d.Paths())
	assert.Equal(t, d.Paths(), h.Paths())
}

func TestDecoratorWithError(t *testing.T) {
	d := Decorator{
		CheckErr:   errors.ErrUnauthorized,
		DeliverErr: errors.ErrNotFound,
	}

	// The next handler is never reached, a nil one would panic.
	var next settle.Handler

	_, err := d.Check(nil, nil, nil, next)
	assert.True(t, errors.ErrUnauthorized.Is(err), "%+v", err)
	_, err = d.Deliver(nil, nil, nil, next)
	assert.True(t, errors.ErrNotFound.Is(err), "%+v", err)

	// Failing calls are counted as well.
	assert.Equal(t, 2, d.CallCount())
}

func TestDecorate(t *testing.T) {
	var (
		d Decorator
		h Handler
	)
	wrapped := Decorate(&h, &d)
	tx := &Tx{Msg: &Msg{RoutePath: "multisig/execute"}}

	_, err := wrapped.Check(nil, nil, tx)
	assert.NoError(t, err)
	_, err = wrapped.Deliver(nil, nil, tx)
	assert.NoError(t, err)

	assert.Equal(t, 2, d.CallCount())
	assert.Equal(t, 1, h.CheckCallCount())
	assert.Equal(t, 1, h.DeliverCallCount())

	d.DeliverErr = errors.ErrState
	_, err = wrapped.Deliver(nil, nil, tx)
	assert.True(t, errors.ErrState.Is(err), "%+v", err)
	assert.Equal(t, 1, h.DeliverCallCount())
}
