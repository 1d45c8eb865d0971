package multisig

import (
	"context"
	"testing"

	"github.com/iov-one/settle/errors"
	"github.com/iov-one/settle/gconf"
	"github.com/iov-one/settle/store"
	"github.com/iov-one/settle/weavetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMaxSigners(t *testing.T) {
	db := store.MemStore()
	max, err := loadMaxSigners(db)
	require.NoError(t, err)
	assert.Equal(t, MaxSigners, max)

	owner := weavetest.NewCondition().Address()
	require.NoError(t, gconf.Save(db, pkgName, &Configuration{Owner: owner, MaxSigners: 7}))
	max, err = loadMaxSigners(db)
	require.NoError(t, err)
	assert.Equal(t, 7, max)

	err = gconf.Save(db, pkgName, &Configuration{Owner: owner, MaxSigners: MaxSigners + 1})
	assert.True(t, errors.ErrInput.Is(err), "%+v", err)
}

func TestConfigurationUnmarshalResets(t *testing.T) {
	owner := weavetest.NewCondition().Address()
	raw, err := (&Configuration{Owner: owner, MaxSigners: 4}).Marshal()
	require.NoError(t, err)

	conf := Configuration{MaxSigners: 9, Owner: weavetest.NewCondition().Address()}
	require.NoError(t, conf.Unmarshal(raw))
	assert.Equal(t, Configuration{Owner: owner, MaxSigners: 4}, conf)
}

func TestUpdateConfiguration(t *testing.T) {
	owner := weavetest.NewCondition()
	db := store.MemStore()
	require.NoError(t, gconf.Save(db, pkgName, &Configuration{Owner: owner.Address(), MaxSigners: 10}))

	h := gconf.NewUpdateConfigurationHandler(pkgName, newConfiguration, &weavetest.Auth{Signer: owner}, nil)
	tx := &weavetest.Tx{Msg: &UpdateConfigurationMsg{Patch: &Configuration{MaxSigners: 3}}}
	_, err := h.Deliver(context.Background(), db, tx)
	require.NoError(t, err)

	var conf Configuration
	require.NoError(t, gconf.Load(db, pkgName, &conf))
	assert.Equal(t, Configuration{Owner: owner.Address(), MaxSigners: 3}, conf)

	other := gconf.NewUpdateConfigurationHandler(pkgName, newConfiguration, &weavetest.Auth{Signer: weavetest.NewCondition()}, nil)
	_, err = other.Deliver(context.Background(), db, tx)
	assert.True(t, errors.ErrUnauthorized.Is(err), "%+v", err)
}
