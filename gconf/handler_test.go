package gconf

import (
	"context"
	"encoding/json"
	"testing"

	settle "github.com/iov-one/settle"
	"github.com/iov-one/settle/errors"
	"github.com/iov-one/settle/store"
	"github.com/iov-one/settle/weavetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateConfigurationHandler(t *testing.T) {
	cond := weavetest.NewCondition()
	admin := weavetest.NewCondition()

	cases := map[string]struct {
		// If Init is provided, initialize the database before running
		// handler code. This should represent the configuration's
		// initial state. Use nil to not provide initial state.
		Init ValidMarshaler

		Msg            settle.Msg
		MsgConditions  []settle.Condition
		WantCheckErr   *errors.Error
		WantDeliverErr *errors.Error

		// When not nil database state will be tested to contain the
		// exact version of the configuration.
		WantConfig *myconfig
	}{
		"success": {
			Init: &myconfig{
				Owner: cond.Address(),
				Num:   5125,
				Str:   "foobar",
			},
			Msg: &myconfigMsg{
				Patch: &myconfig{
					Owner: cond.Address(),
					Num:   333,
					Str:   "boing!",
				},
			},
			MsgConditions: []settle.Condition{cond},
			WantConfig: &myconfig{
				Owner: cond.Address(),
				Num:   333,
				Str:   "boing!",
			},
		},
		"message must be signed by the configuration owner": {
			Init: &myconfig{
				Owner: cond.Address(),
				Num:   5125,
				Str:   "foobar",
			},
			MsgConditions: []settle.Condition{
				// A random condition - for sure not the same as the Owner.
				weavetest.NewCondition(),
			},
			Msg: &myconfigMsg{
				Patch: &myconfig{Owner: cond.Address(), Num: 1},
			},
			WantCheckErr:   errors.ErrUnauthorized,
			WantDeliverErr: errors.ErrUnauthorized,
		},
		"zero values are not updating the configuration": {
			Init: &myconfig{
				Owner: cond.Address(),
				Num:   5125,
				Str:   "foobar",
			},
			Msg: &myconfigMsg{
				Patch: &myconfig{
					Owner: cond.Address(),
					Num:   0,
					Str:   "",
				},
			},
			MsgConditions: []settle.Condition{cond},
			WantConfig: &myconfig{
				Owner: cond.Address(),
				Num:   5125,
				Str:   "foobar",
			},
		},
		"invalid configuration is not accepted": {
			Init: &myconfig{
				Owner: cond.Address(),
				Num:   5125,
				Str:   "foobar",
			},
			Msg: &myconfigMsg{
				Patch: &myconfig{
					Owner: cond.Address(),
					Num:   -1,
				},
			},
			MsgConditions:  []settle.Condition{cond},
			WantCheckErr:   errors.ErrInput,
			WantDeliverErr: errors.ErrInput,
		},
		"missing configuration can be created by the init admin": {
			Msg: &myconfigMsg{
				Patch: &myconfig{
					Owner: cond.Address(),
					Num:   1,
				},
			},
			MsgConditions: []settle.Condition{admin},
			WantConfig: &myconfig{
				Owner: cond.Address(),
				Num:   1,
			},
		},
		"message without a patch is rejected": {
			Init: &myconfig{
				Owner: cond.Address(),
				Num:   5125,
			},
			Msg:            &weavetest.Msg{RoutePath: "myconfig"},
			MsgConditions:  []settle.Condition{cond},
			WantCheckErr:   errors.ErrType,
			WantDeliverErr: errors.ErrType,
			WantConfig: &myconfig{
				Owner: cond.Address(),
				Num:   5125,
			},
		},
		"missing configuration cannot be created by anyone else": {
			Msg: &myconfigMsg{
				Patch: &myconfig{
					Owner: cond.Address(),
					Num:   1,
				},
			},
			MsgConditions:  []settle.Condition{cond},
			WantCheckErr:   errors.ErrUnauthorized,
			WantDeliverErr: errors.ErrUnauthorized,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()

			if tc.Init != nil {
				if err := Save(db, "mypkg", tc.Init); err != nil {
					t.Fatalf("cannot save initial configuration: %s", err)
				}
			}

			auth := &weavetest.CtxAuth{Key: "auth"}
			initAdmin := func(settle.ReadOnlyKVStore) (settle.Address, error) {
				return admin.Address(), nil
			}
			handler := NewUpdateConfigurationHandler("mypkg", newMyconfig, auth, initAdmin)

			ctx := auth.SetConditions(context.Background(), tc.MsgConditions...)

			tx := &weavetest.Tx{Msg: tc.Msg}

			cache := db.CacheWrap()
			if _, err := handler.Check(ctx, cache, tx); !tc.WantCheckErr.Is(err) {
				t.Fatal(err)
			}
			cache.Discard()

			if _, err := handler.Deliver(ctx, db, tx); !tc.WantDeliverErr.Is(err) {
				t.Fatal(err)
			}

			if tc.WantConfig != nil {
				var got myconfig
				if err := Load(db, "mypkg", &got); err != nil {
					t.Fatalf("cannot load configuration from the database: %s", err)
				}
				assert.Equal(t, tc.WantConfig, &got)
			}
		})
	}
}

type myconfig struct {
	Owner settle.Address
	Num   int64
	Str   string
}

func (c *myconfig) GetOwner() settle.Address   { return c.Owner }
func (c *myconfig) Marshal() ([]byte, error)   { return json.Marshal(c) }
func (c *myconfig) Unmarshal(raw []byte) error { return json.Unmarshal(raw, &c) }

func (c *myconfig) Validate() error {
	if err := c.Owner.Validate(); err != nil {
		return errors.Wrap(err, "address")
	}
	if c.Num < 0 {
		return errors.Wrap(errors.ErrInput, "negative num")
	}
	return nil
}

func newMyconfig() OwnedConfig { return &myconfig{} }

type myconfigMsg struct {
	Patch *myconfig
}

var _ PatchMsg = (*myconfigMsg)(nil)

func (msg *myconfigMsg) ConfigPatch() OwnedConfig { return msg.Patch }

func (msg *myconfigMsg) Marshal() ([]byte, error)   { return json.Marshal(msg) }
func (msg *myconfigMsg) Unmarshal(raw []byte) error { return json.Unmarshal(raw, &msg) }
func (msg *myconfigMsg) Path() string               { return "myconfig" }
func (msg *myconfigMsg) Validate() error            { return msg.Patch.Validate() }

func TestUpdateConfigurationCheckDoesNotWrite(t *testing.T) {
	owner := weavetest.NewCondition()
	db := store.MemStore()
	require.NoError(t, Save(db, "mypkg", &myconfig{Owner: owner.Address(), Num: 1}))

	handler := NewUpdateConfigurationHandler("mypkg", newMyconfig, &weavetest.Auth{Signer: owner}, nil)
	tx := &weavetest.Tx{Msg: &myconfigMsg{Patch: &myconfig{Owner: owner.Address(), Num: 2}}}

	_, err := handler.Check(context.Background(), db, tx)
	require.NoError(t, err)
	var got myconfig
	require.NoError(t, Load(db, "mypkg", &got))
	assert.Equal(t, int64(1), got.Num)

	_, err = handler.Deliver(context.Background(), db, tx)
	require.NoError(t, err)
	require.NoError(t, Load(db, "mypkg", &got))
	assert.Equal(t, myconfig{Owner: owner.Address(), Num: 2}, got)
}
