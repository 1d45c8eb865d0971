package app

import (
	"encoding/json"

	settle "github.com/iov-one/settle"
	"github.com/iov-one/settle/errors"
)

// Genesis file format
type Genesis struct {
	ChainID  string         `json:"chain_id"`
	AppState settle.Options `json:"app_state"`
}

// ParseGenesis decodes a genesis document.
func ParseGenesis(raw []byte) (*Genesis, error) {
	var gen Genesis
	if err := json.Unmarshal(raw, &gen); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "cannot decode genesis: %s", err)
	}
	if len(gen.AppState) == 0 {
		return nil, errors.Wrap(errors.ErrEmpty, "app_state not set in genesis")
	}
	return &gen, nil
}

// InitChain loads the genesis document into the ledger. The chain
// identifier of the document must match the configuration.
func (l *Ledger) InitChain(raw []byte) error {
	gen, err := ParseGenesis(raw)
	if err != nil {
		return err
	}
	if gen.ChainID != l.conf.ChainID {
		return errors.Wrapf(errors.ErrInput, "genesis for chain %q, running %q", gen.ChainID, l.conf.ChainID)
	}
	return l.InitGenesis(gen.AppState)
}
