package utils

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	settle "github.com/iov-one/settle"
	"github.com/iov-one/settle/errors"
	"github.com/iov-one/settle/store"
	"github.com/iov-one/settle/weavetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

func TestSavepoint(t *testing.T) {
	// always write ok, ov before calling functions
	ok, ov := []byte("demo"), []byte("data")
	// some key, value to try to write
	nk, nv := []byte{1, 2, 3}, []byte{4, 5, 6}
	// a default error if desired
	derr := fmt.Errorf("something went wrong")

	cases := map[string]struct {
		save    settle.Decorator // decorator at savepoint
		handler settle.Handler
		check   bool // whether to call Check or Deliver
		isError bool // true iff we expect errors

		writen  [][]byte // keys to find
		missing [][]byte // keys not to find
	}{
		"savepoint disactivated, returns error, both writen": {
			save:    NewSavepoint(),
			handler: &weavetest.WriteHandler{Key: nk, Value: nv, Err: derr},
			check:   true,
			isError: true,
			writen:  [][]byte{ok, nk},
		},
		"savepoint activated, returns error, one writen": {
			save:    NewSavepoint().OnCheck(),
			handler: &weavetest.WriteHandler{Key: nk, Value: nv, Err: derr},
			check:   true,
			isError: true,
			writen:  [][]byte{ok},
			missing: [][]byte{nk},
		},
		"savepoint activated for deliver, returns error, one writen": {
			save:    NewSavepoint().OnDeliver(),
			handler: &weavetest.WriteHandler{Key: nk, Value: nv, Err: derr},
			isError: true,
			writen:  [][]byte{ok},
			missing: [][]byte{nk},
		},
		"double-activation maintains both behaviors": {
			save:    NewSavepoint().OnDeliver().OnCheck(),
			handler: &weavetest.WriteHandler{Key: nk, Value: nv, Err: derr},
			isError: true,
			writen:  [][]byte{ok},
			missing: [][]byte{nk},
		},
		"savepoint check doesn't affect deliver": {
			save:    NewSavepoint().OnCheck(),
			handler: &weavetest.WriteHandler{Key: nk, Value: nv, Err: derr},
			isError: true,
			writen:  [][]byte{ok, nk},
		},
		"don't rollback when success returned": {
			save:    NewSavepoint().OnCheck().OnDeliver(),
			handler: &weavetest.WriteHandler{Key: nk, Value: nv},
			writen:  [][]byte{ok, nk},
		},
		"panic is not written": {
			save:    NewSavepoint().OnDeliver(),
			handler: weavetest.Decorate(weavetest.PanicHandler{Msg: "boom"}, NewRecovery()),
			isError: true,
			writen:  [][]byte{ok},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			ctx := context.Background()
			kv := store.MemStore()
			require.NoError(t, kv.Set(ok, ov))

			var err error
			if tc.check {
				_, err = tc.save.Check(ctx, kv, nil, tc.handler)
			} else {
				_, err = tc.save.Deliver(ctx, kv, nil, tc.handler)
			}

			if tc.isError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			for _, k := range tc.writen {
				has, err := kv.Has(k)
				require.NoError(t, err)
				assert.True(t, has, "%x", k)
			}
			for _, k := range tc.missing {
				has, err := kv.Has(k)
				require.NoError(t, err)
				assert.False(t, has, "%x", k)
			}
		})
	}
}

func TestSavepointLogsDiscard(t *testing.T) {
	var buf bytes.Buffer
	ctx := settle.WithLogger(context.Background(), log.NewTMLogger(&buf))
	kv := store.MemStore()
	tx := &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "treasury/deposit"}}

	key := []byte("key")
	failing := &weavetest.WriteHandler{Key: key, Value: []byte("value"), Err: errors.ErrInsufficientAmount}
	_, err := NewSavepoint().OnDeliver().Deliver(ctx, kv, tx, failing)
	assert.True(t, errors.ErrInsufficientAmount.Is(err), "%+v", err)

	has, err := kv.Has(key)
	require.NoError(t, err)
	assert.False(t, has)
	assert.Contains(t, buf.String(), "savepoint discarded")
	assert.Contains(t, buf.String(), "path=treasury/deposit")
}
