package treasury

import (
	"math"

	settle "github.com/iov-one/settle"
	"github.com/iov-one/settle/errors"
)

// Controller is the only way the balances should be changed. It is the
// balance primitive used by the other extensions.
type Controller interface {
	// Balance returns the balance held under the given address. A missing
	// account has a zero balance.
	Balance(db settle.ReadOnlyKVStore, addr settle.Address) (uint64, error)

	// Credit increases the balance held under the given address, creating
	// the account if needed. It fails with ErrOverflow if the result does
	// not fit.
	Credit(db settle.KVStore, addr settle.Address, amount uint64) error

	// Debit decreases the balance held under the given address. It fails
	// with ErrInsufficientAmount if the balance is lower than amount.
	Debit(db settle.KVStore, addr settle.Address, amount uint64) error

	// Move transfers amount from src to dest as one unit.
	Move(db settle.KVStore, src, dest settle.Address, amount uint64) error

	// Settle applies all given transfers as one unit.
	Settle(db settle.KVStore, transfers ...Transfer) error

	// OpenTreasury returns the address of the treasury account of the
	// owner, creating an empty account if it does not exist yet. An
	// account that received funds before it was opened is claimed by the
	// owner with its balance.
	OpenTreasury(db settle.KVStore, owner settle.Address) (settle.Address, error)
}

// Transfer moves Amount from the balance held under From to the balance held
// under To.
type Transfer struct {
	From   settle.Address
	To     settle.Address
	Amount uint64
}

// BaseController is a simple implementation of Controller.
type BaseController struct {
	bucket AccountBucket
}

var _ Controller = BaseController{}

// NewController returns a controller using the given bucket.
func NewController(bucket AccountBucket) BaseController {
	return BaseController{bucket: bucket}
}

func (c BaseController) Balance(db settle.ReadOnlyKVStore, addr settle.Address) (uint64, error) {
	acc, err := c.load(db, addr)
	if err != nil {
		return 0, err
	}
	return acc.Balance, nil
}

func (c BaseController) Credit(db settle.KVStore, addr settle.Address, amount uint64) error {
	return c.Settle(db, Transfer{To: addr, Amount: amount})
}

func (c BaseController) Debit(db settle.KVStore, addr settle.Address, amount uint64) error {
	return c.Settle(db, Transfer{From: addr, Amount: amount})
}

func (c BaseController) Move(db settle.KVStore, src, dest settle.Address, amount uint64) error {
	if src == nil || dest == nil {
		return errors.Wrap(errors.ErrEmpty, "source and destination are required")
	}
	return c.Settle(db, Transfer{From: src, To: dest, Amount: amount})
}

// Settle applies all transfers as one unit. A nil From mints the amount and a
// nil To burns it.
//
// Balances of all touched accounts are read before anything is written and
// new balances are computed from those snapshots. An account is short when
// its balance together with everything it receives does not cover
// everything it sends. Nothing is written if any account would be short or
// would overflow.
func (c BaseController) Settle(db settle.KVStore, transfers ...Transfer) error {
	type entry struct {
		addr settle.Address
		acc  *Account
		in   uint64
		out  uint64
	}
	var entries []*entry
	get := func(addr settle.Address) (*entry, error) {
		for _, e := range entries {
			if e.addr.Equals(addr) {
				return e, nil
			}
		}
		if err := addr.Validate(); err != nil {
			return nil, err
		}
		acc, err := c.load(db, addr)
		if err != nil {
			return nil, err
		}
		e := &entry{addr: addr, acc: acc}
		entries = append(entries, e)
		return e, nil
	}

	for _, t := range transfers {
		if t.From != nil {
			e, err := get(t.From)
			if err != nil {
				return errors.Wrap(err, "source")
			}
			if e.out, err = add(e.out, t.Amount); err != nil {
				return err
			}
		}
		if t.To != nil {
			e, err := get(t.To)
			if err != nil {
				return errors.Wrap(err, "destination")
			}
			if e.in, err = add(e.in, t.Amount); err != nil {
				return err
			}
		}
	}

	// Compute every new balance before writing anything.
	for _, e := range entries {
		switch {
		case e.in >= e.out:
			bal, err := add(e.acc.Balance, e.in-e.out)
			if err != nil {
				return errors.Wrapf(err, "account %s", e.addr)
			}
			e.acc.Balance = bal
		case e.acc.Balance < e.out-e.in:
			return errors.Wrapf(errors.ErrInsufficientAmount,
				"account %s holds %d, needs %d", e.addr, e.acc.Balance, e.out-e.in)
		default:
			e.acc.Balance -= e.out - e.in
		}
	}

	for _, e := range entries {
		if err := c.bucket.Put(db, e.addr, e.acc); err != nil {
			return errors.Wrapf(err, "cannot save account %s", e.addr)
		}
	}
	return nil
}

func (c BaseController) OpenTreasury(db settle.KVStore, owner settle.Address) (settle.Address, error) {
	addr, err := TreasuryAddress(owner)
	if err != nil {
		return nil, errors.Wrap(err, "treasury address")
	}
	switch acc, err := c.bucket.GetAccount(db, addr); {
	case err == nil:
		if acc.Owner.Equals(owner) {
			return addr, nil
		}
		// Funds sent to an unopened treasury create an account owned by
		// its own address. The owner claims it together with the balance.
		if !acc.Owner.Equals(addr) {
			return nil, errors.Wrapf(ErrNotOwner, "treasury %s", addr)
		}
		acc.Owner = owner.Clone()
		if err := c.bucket.Put(db, addr, acc); err != nil {
			return nil, errors.Wrap(err, "cannot claim treasury")
		}
		return addr, nil
	case errors.ErrNotFound.Is(err):
		acc := &Account{Owner: owner, Balance: 0}
		if err := c.bucket.Create(db, addr, acc); err != nil {
			return nil, errors.Wrap(err, "cannot create treasury")
		}
		return addr, nil
	default:
		return nil, err
	}
}

// load returns the account stored under addr or an empty account owned by
// addr if it does not exist.
func (c BaseController) load(db settle.ReadOnlyKVStore, addr settle.Address) (*Account, error) {
	acc, err := c.bucket.GetAccount(db, addr)
	switch {
	case err == nil:
		return acc, nil
	case errors.ErrNotFound.Is(err):
		return &Account{Owner: addr.Clone()}, nil
	default:
		return nil, err
	}
}

func add(a, b uint64) (uint64, error) {
	if a > math.MaxUint64-b {
		return 0, errors.Wrapf(errors.ErrOverflow, "%d + %d", a, b)
	}
	return a + b, nil
}
