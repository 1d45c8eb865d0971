package multisig

import (
	settle "github.com/iov-one/settle"
	"github.com/iov-one/settle/errors"
	"github.com/iov-one/settle/gconf"
)

// GenesisWallet is a wallet declared in the genesis file. The wallet is
// stored under the address derived from Creator.
type GenesisWallet struct {
	Creator settle.Address   `json:"creator"`
	Signers []settle.Address `json:"signers"`
	Quorum  uint32           `json:"quorum"`
}

// Initializer fulfils the Initializer interface to load data from the genesis
// file
type Initializer struct{}

var _ settle.Initializer = Initializer{}

// FromGenesis stores the configuration, if any, and creates all declared
// wallets.
func (Initializer) FromGenesis(opts settle.Options, kv settle.KVStore) error {
	if err := gconf.InitConfig(kv, opts, pkgName, &Configuration{}); err != nil && !errors.ErrNotFound.Is(err) {
		return errors.Wrap(err, "configuration")
	}

	var wallets []GenesisWallet
	if err := opts.ReadOptions(pkgName, &wallets); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	max, err := loadMaxSigners(kv)
	if err != nil {
		return err
	}
	bucket := NewWalletBucket()
	for i, w := range wallets {
		if err := validateSigners(w.Signers, w.Quorum, max); err != nil {
			return errors.Wrapf(err, "wallet %d", i)
		}
		addr, err := WalletAddress(w.Creator)
		if err != nil {
			return errors.Wrapf(err, "wallet %d", i)
		}
		wallet := &Wallet{Signers: w.Signers, Quorum: w.Quorum}
		if err := bucket.Create(kv, addr, wallet); err != nil {
			return errors.Wrapf(err, "cannot save wallet %d", i)
		}
	}
	return nil
}
