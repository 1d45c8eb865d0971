package multisig

import (
	settle "github.com/iov-one/settle"
	"github.com/iov-one/settle/errors"
	"github.com/iov-one/settle/orm"
)

const (
	// WalletTag is the namespace of wallet addresses.
	WalletTag = "wallet"
	// ProposalTag is the namespace of transaction proposal addresses.
	ProposalTag = "transaction"

	// MaxSigners is the hard limit of signers a wallet can declare. It
	// is also the capacity of the approvals set.
	MaxSigners = 30
)

// Wallet declares who can move the funds held under the wallet address.
type Wallet struct {
	Signers settle.AddressSet
	Quorum  uint32
}

var _ orm.Model = (*Wallet)(nil)

func (w *Wallet) Marshal() ([]byte, error) {
	return settle.MarshalBinary(w)
}

func (w *Wallet) Unmarshal(raw []byte) error {
	return settle.UnmarshalBinary(raw, w)
}

// Validate ensures 1 <= quorum <= number of signers <= MaxSigners.
func (w *Wallet) Validate() error {
	if err := validateSigners(w.Signers, w.Quorum, MaxSigners); err != nil {
		return errors.Wrap(errors.ErrModel, err.Error())
	}
	return nil
}

// IsSigner returns true if addr is one of the wallet signers.
func (w *Wallet) IsSigner(addr settle.Address) bool {
	return w.Signers.Contains(addr)
}

// validateSigners is shared by the wallet model and the initialization
// message. All failures are input errors.
func validateSigners(signers []settle.Address, quorum uint32, max int) error {
	switch n := len(signers); {
	case quorum == 0:
		return errors.Wrap(errors.ErrInput, "quorum must be greater than zero")
	case n > max:
		return errors.Wrapf(errors.ErrInput, "%d signers, at most %d allowed", n, max)
	case uint64(n) < uint64(quorum):
		return errors.Wrapf(errors.ErrInput, "%d signers cannot meet quorum %d", n, quorum)
	}
	var errs error
	for i, s := range signers {
		if err := s.Validate(); err != nil {
			errs = errors.AppendField(errs, fieldIndex("Signers", i), err)
			continue
		}
		for _, prev := range signers[:i] {
			if prev.Equals(s) {
				errs = errors.AppendField(errs, fieldIndex("Signers", i),
					errors.Wrapf(errors.ErrInput, "duplicated signer %s", s))
				break
			}
		}
	}
	return errs
}

// ProposalState is the lifecycle of a transaction proposal. It only moves
// forward: Proposed -> Executed.
type ProposalState uint32

const (
	ProposalStateInvalid ProposalState = iota
	ProposalStateProposed
	ProposalStateExecuted
)

func (s ProposalState) String() string {
	switch s {
	case ProposalStateProposed:
		return "proposed"
	case ProposalStateExecuted:
		return "executed"
	default:
		return "invalid"
	}
}

// Validate returns an error for the zero value and unknown states.
func (s ProposalState) Validate() error {
	switch s {
	case ProposalStateProposed, ProposalStateExecuted:
		return nil
	}
	return errors.Wrapf(errors.ErrState, "unknown proposal state %d", s)
}

// Execute returns the state following a successful execution.
func (s ProposalState) Execute() (ProposalState, error) {
	if s != ProposalStateProposed {
		return s, errors.Wrapf(ErrAlreadyExecuted, "proposal is %s", s)
	}
	return ProposalStateExecuted, nil
}

// Proposal is a request to move Amount from the wallet balance to
// Destination.
type Proposal struct {
	Wallet      settle.Address
	Proposer    settle.Address
	Destination settle.Address
	Amount      uint64
	Approvals   settle.AddressSet
	State       ProposalState
}

var _ orm.Model = (*Proposal)(nil)

func (p *Proposal) Marshal() ([]byte, error) {
	return settle.MarshalBinary(p)
}

func (p *Proposal) Unmarshal(raw []byte) error {
	return settle.UnmarshalBinary(raw, p)
}

func (p *Proposal) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Wallet", p.Wallet.Validate())
	errs = errors.AppendField(errs, "Proposer", p.Proposer.Validate())
	errs = errors.AppendField(errs, "Destination", p.Destination.Validate())
	errs = errors.AppendField(errs, "State", p.State.Validate())
	if len(p.Approvals) > MaxSigners {
		errs = errors.AppendField(errs, "Approvals",
			errors.Wrapf(errors.ErrOverflow, "%d approvals", len(p.Approvals)))
	}
	errs = errors.AppendField(errs, "Approvals", p.Approvals.Validate())
	return errs
}

// IsExecuted returns true once the transfer was done.
func (p *Proposal) IsExecuted() bool {
	return p.State == ProposalStateExecuted
}

// WalletAddress returns the address of the wallet created by the given
// identity.
func WalletAddress(creator settle.Address) (settle.Address, error) {
	return settle.Derive(WalletTag, creator, nil)
}

// ProposalAddress returns the address of the proposal the given proposer
// creates for the wallet.
func ProposalAddress(wallet, proposer settle.Address) (settle.Address, error) {
	if err := proposer.Validate(); err != nil {
		return nil, errors.Wrap(err, "proposer")
	}
	return settle.Derive(ProposalTag, wallet, proposer)
}

// WalletBucket is a type-safe wrapper around orm.ModelBucket
type WalletBucket struct {
	orm.ModelBucket
}

// NewWalletBucket returns a bucket for wallets.
func NewWalletBucket() WalletBucket {
	return WalletBucket{ModelBucket: orm.NewModelBucket("wallet")}
}

// GetWallet returns the wallet stored under addr or ErrNotFound.
func (b WalletBucket) GetWallet(db settle.ReadOnlyKVStore, addr settle.Address) (*Wallet, error) {
	var w Wallet
	if err := b.One(db, addr, &w); err != nil {
		return nil, errors.Wrapf(err, "wallet %s", addr)
	}
	return &w, nil
}

// ProposalBucket is a type-safe wrapper around orm.ModelBucket
type ProposalBucket struct {
	orm.ModelBucket
}

// NewProposalBucket returns a bucket for transaction proposals.
func NewProposalBucket() ProposalBucket {
	return ProposalBucket{ModelBucket: orm.NewModelBucket("proposal")}
}

// GetProposal returns the proposal stored under addr or ErrNotFound.
func (b ProposalBucket) GetProposal(db settle.ReadOnlyKVStore, addr settle.Address) (*Proposal, error) {
	var p Proposal
	if err := b.One(db, addr, &p); err != nil {
		return nil, errors.Wrapf(err, "proposal %s", addr)
	}
	return &p, nil
}
