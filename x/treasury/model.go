package treasury

import (
	settle "github.com/iov-one/settle"
	"github.com/iov-one/settle/errors"
	"github.com/iov-one/settle/orm"
)

const (
	// BucketName is where we store the accounts
	BucketName = "account"

	// TreasuryTag is the namespace of treasury account addresses.
	TreasuryTag = "treasury"
)

// Account is the balance record of a single owner.
type Account struct {
	// Owner is the identity the balance belongs to.
	Owner settle.Address
	// Balance is never negative and never overflows.
	Balance uint64
}

var _ orm.Model = (*Account)(nil)

func (a *Account) Marshal() ([]byte, error) {
	return settle.MarshalBinary(a)
}

func (a *Account) Unmarshal(raw []byte) error {
	return settle.UnmarshalBinary(raw, a)
}

// Validate ensures the account has an owner.
func (a *Account) Validate() error {
	if err := a.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	return nil
}

// TreasuryAddress returns the address of the treasury account of the given
// owner.
func TreasuryAddress(owner settle.Address) (settle.Address, error) {
	return settle.Derive(TreasuryTag, owner, nil)
}

// AccountBucket is a type-safe wrapper around orm.ModelBucket
type AccountBucket struct {
	orm.ModelBucket
}

// NewAccountBucket initializes an AccountBucket with default name.
func NewAccountBucket() AccountBucket {
	return AccountBucket{
		ModelBucket: orm.NewModelBucket(BucketName),
	}
}

// GetAccount returns the account stored under the given address. It returns
// ErrNotFound if the account does not exist.
func (b AccountBucket) GetAccount(db settle.ReadOnlyKVStore, addr settle.Address) (*Account, error) {
	var acc Account
	if err := b.One(db, addr, &acc); err != nil {
		return nil, errors.Wrapf(err, "account %s", addr)
	}
	return &acc, nil
}
