package treasury

import (
	"encoding/json"
	"testing"

	settle "github.com/iov-one/settle"
	"github.com/iov-one/settle/errors"
	"github.com/iov-one/settle/store"
	"github.com/iov-one/settle/weavetest"
	"github.com/stretchr/testify/require"
)

func TestGenesis(t *testing.T) {
	alice := weavetest.NewCondition().Address()
	bob := weavetest.NewCondition().Address()

	raw, err := json.Marshal([]GenesisAccount{
		{Address: alice, Balance: 100},
		{Address: bob, Balance: 7},
	})
	require.NoError(t, err)

	db := store.MemStore()
	var init Initializer
	require.NoError(t, init.FromGenesis(settle.Options{"cash": raw}, db))

	ctrl := NewController(NewAccountBucket())
	assertBalance(t, db, ctrl, alice, 100)
	assertBalance(t, db, ctrl, bob, 7)
}

func TestGenesisInvalidAddress(t *testing.T) {
	db := store.MemStore()
	var init Initializer
	opts := settle.Options{"cash": json.RawMessage(`[{"address": "", "balance": 1}]`)}
	err := init.FromGenesis(opts, db)
	require.True(t, errors.ErrInput.Is(err), "%+v", err)
}
