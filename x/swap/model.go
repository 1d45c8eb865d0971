package swap

import (
	settle "github.com/iov-one/settle"
	"github.com/iov-one/settle/errors"
	"github.com/iov-one/settle/orm"
)

const (
	// BucketName is where we store the swaps
	BucketName = "swap"

	// SwapTag is the namespace of swap addresses.
	SwapTag = "swap"
)

// SwapState is the lifecycle of a swap. It only moves forward:
// Proposed -> Accepted -> Executed.
type SwapState uint32

const (
	SwapStateInvalid SwapState = iota
	SwapStateProposed
	SwapStateAccepted
	SwapStateExecuted
)

func (s SwapState) String() string {
	switch s {
	case SwapStateProposed:
		return "proposed"
	case SwapStateAccepted:
		return "accepted"
	case SwapStateExecuted:
		return "executed"
	default:
		return "invalid"
	}
}

func (s SwapState) Validate() error {
	switch s {
	case SwapStateProposed, SwapStateAccepted, SwapStateExecuted:
		return nil
	}
	return errors.Wrapf(errors.ErrState, "unknown swap state %d", s)
}

// Accept returns the state following an acceptance. Accepting an accepted
// or executed swap does not change it.
func (s SwapState) Accept() (SwapState, error) {
	switch s {
	case SwapStateProposed:
		return SwapStateAccepted, nil
	case SwapStateAccepted, SwapStateExecuted:
		return s, nil
	}
	return s, s.Validate()
}

// Execute returns the state following an execution.
func (s SwapState) Execute() (SwapState, error) {
	switch s {
	case SwapStateAccepted:
		return SwapStateExecuted, nil
	case SwapStateExecuted:
		return s, ErrAlreadyExecuted
	case SwapStateProposed:
		return s, ErrNotAccepted
	}
	return s, s.Validate()
}

// Swap is an offer of the proposer to exchange ProposerAmount for
// AccepterAmount with the accepter.
type Swap struct {
	Proposer       settle.Address
	Accepter       settle.Address
	ProposerAmount uint64
	AccepterAmount uint64
	State          SwapState
}

var _ orm.Model = (*Swap)(nil)

func (s *Swap) Marshal() ([]byte, error) {
	return settle.MarshalBinary(s)
}

func (s *Swap) Unmarshal(raw []byte) error {
	return settle.UnmarshalBinary(raw, s)
}

func (s *Swap) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Proposer", s.Proposer.Validate())
	errs = errors.AppendField(errs, "Accepter", s.Accepter.Validate())
	errs = errors.AppendField(errs, "State", s.State.Validate())
	return errs
}

// SwapAddress returns the address of the swap between the two parties.
func SwapAddress(proposer, accepter settle.Address) (settle.Address, error) {
	if err := accepter.Validate(); err != nil {
		return nil, errors.Wrap(err, "accepter")
	}
	return settle.Derive(SwapTag, proposer, accepter)
}

// Bucket is a type-safe wrapper around orm.ModelBucket
type Bucket struct {
	orm.ModelBucket
}

// NewBucket initializes a Bucket with default name.
func NewBucket() Bucket {
	return Bucket{ModelBucket: orm.NewModelBucket(BucketName)}
}

// GetSwap returns the swap stored under addr or ErrNotFound.
func (b Bucket) GetSwap(db settle.ReadOnlyKVStore, addr settle.Address) (*Swap, error) {
	var s Swap
	if err := b.One(db, addr, &s); err != nil {
		return nil, errors.Wrapf(err, "swap %s", addr)
	}
	return &s, nil
}
