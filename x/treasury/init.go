package treasury

import (
	settle "github.com/iov-one/settle"
	"github.com/iov-one/settle/errors"
)

const optKey = "cash"

// GenesisAccount is used to parse the json from genesis file
// use settle.Address, so address in base58, not base64
type GenesisAccount struct {
	Address settle.Address `json:"address"`
	Balance uint64         `json:"balance"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ settle.Initializer = Initializer{}

// FromGenesis will parse initial general balances from genesis
// and credit them
func (Initializer) FromGenesis(opts settle.Options, kv settle.KVStore) error {
	var accts []GenesisAccount
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	ctrl := NewController(NewAccountBucket())
	for i, acct := range accts {
		if err := acct.Address.Validate(); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
		if err := ctrl.Credit(kv, acct.Address, acct.Balance); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
	}
	return nil
}
