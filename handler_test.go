package settle_test

import (
	"encoding/json"
	"testing"

	settle "github.com/iov-one/settle"
	"github.com/iov-one/settle/errors"
	"github.com/iov-one/settle/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadOptions(t *testing.T) {
	var opts settle.Options
	require.NoError(t, json.Unmarshal([]byte(`{"list": [{"key": 1}, {"key": 2}], "bad": "x"}`), &opts))

	var list []struct{ Key int }
	require.NoError(t, opts.ReadOptions("list", &list))
	assert.Equal(t, 2, len(list))
	assert.Equal(t, 2, list[1].Key)

	var missing []struct{ Key int }
	require.NoError(t, opts.ReadOptions("missing", &missing))
	assert.Equal(t, 0, len(missing))

	var bad []struct{ Key int }
	if err := opts.ReadOptions("bad", &bad); err == nil {
		t.Fatal("want an error for a malformed value")
	}
}

type recordInit struct {
	name  string
	err   error
	calls *[]string
}

func (r recordInit) FromGenesis(settle.Options, settle.KVStore) error {
	*r.calls = append(*r.calls, r.name)
	return r.err
}

func TestChainInitializers(t *testing.T) {
	var calls []string
	chain := settle.ChainInitializers(
		recordInit{name: "a", calls: &calls},
		recordInit{name: "b", calls: &calls, err: errors.ErrInput},
		recordInit{name: "c", calls: &calls},
	)
	err := chain.FromGenesis(settle.Options{}, store.MemStore())
	assert.True(t, errors.ErrInput.Is(err), "%+v", err)
	assert.Equal(t, []string{"a", "b"}, calls)
}
