package multisig

import (
	"encoding/json"
	"testing"

	settle "github.com/iov-one/settle"
	"github.com/iov-one/settle/errors"
	"github.com/iov-one/settle/gconf"
	"github.com/iov-one/settle/store"
	"github.com/iov-one/settle/weavetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenesis(t *testing.T) {
	creator := weavetest.NewCondition().Address()
	a := weavetest.NewCondition().Address()
	b := weavetest.NewCondition().Address()

	wallets, err := json.Marshal([]GenesisWallet{
		{Creator: creator, Signers: []settle.Address{a, b}, Quorum: 2},
	})
	require.NoError(t, err)
	conf, err := json.Marshal(map[string]interface{}{
		pkgName: Configuration{Owner: creator, MaxSigners: 5},
	})
	require.NoError(t, err)

	db := store.MemStore()
	opts := settle.Options{pkgName: wallets, "conf": conf}
	require.NoError(t, Initializer{}.FromGenesis(opts, db))

	addr, err := WalletAddress(creator)
	require.NoError(t, err)
	w, err := NewWalletBucket().GetWallet(db, addr)
	require.NoError(t, err)
	assert.Equal(t, settle.AddressSet{a, b}, w.Signers)
	assert.Equal(t, uint32(2), w.Quorum)

	var c Configuration
	require.NoError(t, gconf.Load(db, pkgName, &c))
	assert.Equal(t, uint32(5), c.MaxSigners)
}

func TestGenesisConfiguration(t *testing.T) {
	owner := weavetest.NewCondition().Address()
	wallets, err := json.Marshal([]GenesisWallet{{
		Creator: weavetest.NewCondition().Address(),
		Signers: []settle.Address{
			weavetest.NewCondition().Address(),
			weavetest.NewCondition().Address(),
		},
		Quorum: 1,
	}})
	require.NoError(t, err)

	cases := map[string]struct {
		conf    string
		wantErr *errors.Error
	}{
		"no configuration": {
			conf: `{}`,
		},
		"limit is respected": {
			conf:    `{"multisig": {"owner": "` + owner.String() + `", "max_signers": 1}}`,
			wantErr: errors.ErrInput,
		},
		"configuration without owner": {
			conf:    `{"multisig": {"owner": "", "max_signers": 5}}`,
			wantErr: errors.ErrInput,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			opts := settle.Options{pkgName: wallets, "conf": json.RawMessage(tc.conf)}
			err := Initializer{}.FromGenesis(opts, store.MemStore())
			require.True(t, tc.wantErr.Is(err), "%+v", err)
		})
	}
}
