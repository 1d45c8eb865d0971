package multisig

import (
	settle "github.com/iov-one/settle"
	"github.com/iov-one/settle/errors"
	"github.com/iov-one/settle/gconf"
)

const pkgName = "multisig"

// Configuration is the on-store configuration of the multisig extension.
type Configuration struct {
	// Owner can update the configuration.
	Owner settle.Address `json:"owner"`
	// MaxSigners lowers the number of signers a new wallet may declare.
	// It cannot be raised above the MaxSigners constant.
	MaxSigners uint32 `json:"max_signers"`
}

var _ gconf.OwnedConfig = (*Configuration)(nil)

func newConfiguration() gconf.OwnedConfig {
	return &Configuration{}
}

func (c *Configuration) Marshal() ([]byte, error) {
	return settle.MarshalBinary(c)
}

func (c *Configuration) Unmarshal(raw []byte) error {
	*c = Configuration{}
	return settle.UnmarshalBinary(raw, c)
}

func (c *Configuration) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Owner", c.Owner.Validate())
	if c.MaxSigners == 0 || c.MaxSigners > MaxSigners {
		errs = errors.AppendField(errs, "MaxSigners",
			errors.Wrapf(errors.ErrInput, "must be between 1 and %d", MaxSigners))
	}
	return errs
}

func (c *Configuration) GetOwner() settle.Address {
	return c.Owner
}

// loadMaxSigners returns the configured signers limit or MaxSigners when
// nothing is configured.
func loadMaxSigners(db gconf.ReadStore) (int, error) {
	var conf Configuration
	switch err := gconf.Load(db, pkgName, &conf); {
	case err == nil:
		return int(conf.MaxSigners), nil
	case errors.ErrNotFound.Is(err):
		return MaxSigners, nil
	default:
		return 0, errors.Wrap(err, "load configuration")
	}
}
