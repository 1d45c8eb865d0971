package swap

import (
	"math"

	settle "github.com/iov-one/settle"
	"github.com/iov-one/settle/errors"
	"github.com/iov-one/settle/x"
	"github.com/iov-one/settle/x/treasury"
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r settle.Registry, auth x.Authenticator, ctrl treasury.Controller) {
	bucket := NewBucket()
	r.Handle(&ProposeSwapMsg{}, ProposeSwapHandler{auth: auth, bucket: bucket})
	r.Handle(&AcceptSwapMsg{}, AcceptSwapHandler{auth: auth, bucket: bucket})
	r.Handle(&ExecuteSwapMsg{}, ExecuteSwapHandler{auth: auth, bucket: bucket, ctrl: ctrl})
}

//---- propose

// ProposeSwapHandler creates a swap proposed by the caller.
type ProposeSwapHandler struct {
	auth   x.Authenticator
	bucket Bucket
}

var _ settle.Handler = ProposeSwapHandler{}

func (h ProposeSwapHandler) Check(ctx settle.Context, db settle.KVStore, tx settle.Tx) (*settle.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &settle.CheckResult{}, nil
}

// Deliver stores the swap and returns its address as the result data. No
// balance is checked or moved.
func (h ProposeSwapHandler) Deliver(ctx settle.Context, db settle.KVStore, tx settle.Tx) (*settle.DeliverResult, error) {
	addr, swap, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.bucket.Create(db, addr, swap); err != nil {
		return nil, errors.Wrap(err, "cannot store swap")
	}
	return &settle.DeliverResult{Data: addr}, nil
}

func (h ProposeSwapHandler) validate(ctx settle.Context, db settle.KVStore, tx settle.Tx) (settle.Address, *Swap, error) {
	var msg ProposeSwapMsg
	if err := settle.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	proposer, err := x.Caller(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	addr, err := SwapAddress(proposer, msg.Accepter)
	if err != nil {
		return nil, nil, err
	}
	switch err := h.bucket.Has(db, addr); {
	case err == nil:
		return nil, nil, errors.Wrapf(errors.ErrDuplicate, "swap %s", addr)
	case !errors.ErrNotFound.Is(err):
		return nil, nil, err
	}
	swap := &Swap{
		Proposer:       proposer,
		Accepter:       msg.Accepter,
		ProposerAmount: msg.ProposerAmount,
		AccepterAmount: msg.AccepterAmount,
		State:          SwapStateProposed,
	}
	return addr, swap, nil
}

//---- accept

// AcceptSwapHandler records the agreement of the accepter.
type AcceptSwapHandler struct {
	auth   x.Authenticator
	bucket Bucket
}

var _ settle.Handler = AcceptSwapHandler{}

func (h AcceptSwapHandler) Check(ctx settle.Context, db settle.KVStore, tx settle.Tx) (*settle.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &settle.CheckResult{}, nil
}

// Deliver marks the swap accepted. Accepting it again changes nothing.
func (h AcceptSwapHandler) Deliver(ctx settle.Context, db settle.KVStore, tx settle.Tx) (*settle.DeliverResult, error) {
	addr, swap, changed, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if changed {
		if err := h.bucket.Put(db, addr, swap); err != nil {
			return nil, errors.Wrap(err, "cannot store swap")
		}
	}
	return &settle.DeliverResult{}, nil
}

func (h AcceptSwapHandler) validate(ctx settle.Context, db settle.KVStore, tx settle.Tx) (settle.Address, *Swap, bool, error) {
	var msg AcceptSwapMsg
	if err := settle.LoadMsg(tx, &msg); err != nil {
		return nil, nil, false, errors.Wrap(err, "load msg")
	}
	caller, err := x.Caller(ctx, h.auth)
	if err != nil {
		return nil, nil, false, err
	}
	swap, err := h.bucket.GetSwap(db, msg.Swap)
	if err != nil {
		return nil, nil, false, err
	}
	if !swap.Accepter.Equals(caller) {
		return nil, nil, false, errors.Wrapf(ErrNotAccepter, "%s", caller)
	}
	next, err := swap.State.Accept()
	if err != nil {
		return nil, nil, false, err
	}
	changed := next != swap.State
	swap.State = next
	return msg.Swap, swap, changed, nil
}

//---- execute

// ExecuteSwapHandler settles an accepted swap between the two treasuries.
type ExecuteSwapHandler struct {
	auth   x.Authenticator
	bucket Bucket
	ctrl   treasury.Controller
}

var _ settle.Handler = ExecuteSwapHandler{}

func (h ExecuteSwapHandler) Check(ctx settle.Context, db settle.KVStore, tx settle.Tx) (*settle.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &settle.CheckResult{}, nil
}

// Deliver moves ProposerAmount to the accepter treasury and AccepterAmount
// to the proposer treasury and marks the swap executed.
func (h ExecuteSwapHandler) Deliver(ctx settle.Context, db settle.KVStore, tx settle.Tx) (*settle.DeliverResult, error) {
	addr, swap, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	// Treasuries must be opened by their owners before any balance is
	// written to them.
	pt, err := h.ctrl.OpenTreasury(db, swap.Proposer)
	if err != nil {
		return nil, errors.Wrap(err, "proposer treasury")
	}
	at, err := h.ctrl.OpenTreasury(db, swap.Accepter)
	if err != nil {
		return nil, errors.Wrap(err, "accepter treasury")
	}
	err = h.ctrl.Settle(db,
		treasury.Transfer{From: pt, To: at, Amount: swap.ProposerAmount},
		treasury.Transfer{From: at, To: pt, Amount: swap.AccepterAmount},
	)
	if err != nil {
		return nil, errors.Wrap(err, "cannot settle swap")
	}
	if err := h.bucket.Put(db, addr, swap); err != nil {
		return nil, errors.Wrap(err, "cannot store swap")
	}

	settle.GetLogger(ctx).Info("swap executed",
		"swap", addr,
		"proposer", swap.Proposer, "proposer_amount", swap.ProposerAmount,
		"accepter", swap.Accepter, "accepter_amount", swap.AccepterAmount)
	return &settle.DeliverResult{}, nil
}

// validate returns the swap already switched to the executed state.
func (h ExecuteSwapHandler) validate(ctx settle.Context, db settle.KVStore, tx settle.Tx) (settle.Address, *Swap, error) {
	var msg ExecuteSwapMsg
	if err := settle.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	if _, err := x.Caller(ctx, h.auth); err != nil {
		return nil, nil, err
	}
	swap, err := h.bucket.GetSwap(db, msg.Swap)
	if err != nil {
		return nil, nil, err
	}
	next, err := swap.State.Execute()
	if err != nil {
		return nil, nil, errors.Wrapf(err, "swap %s", msg.Swap)
	}
	if swap.Proposer.Equals(swap.Accepter) {
		// Both legs are debited from the same treasury before either is
		// credited back.
		if swap.ProposerAmount > math.MaxUint64-swap.AccepterAmount {
			return nil, nil, errors.Wrap(errors.ErrOverflow, "swap amounts")
		}
		total := swap.ProposerAmount + swap.AccepterAmount
		if err := h.ensureFunds(db, swap.Proposer, total); err != nil {
			return nil, nil, errors.Wrap(err, "proposer and accepter")
		}
	} else {
		if err := h.ensureFunds(db, swap.Proposer, swap.ProposerAmount); err != nil {
			return nil, nil, errors.Wrap(err, "proposer")
		}
		if err := h.ensureFunds(db, swap.Accepter, swap.AccepterAmount); err != nil {
			return nil, nil, errors.Wrap(err, "accepter")
		}
	}
	swap.State = next
	return msg.Swap, swap, nil
}

// ensureFunds returns ErrInsufficientAmount if the treasury of owner holds
// less than amount.
func (h ExecuteSwapHandler) ensureFunds(db settle.ReadOnlyKVStore, owner settle.Address, amount uint64) error {
	addr, err := treasury.TreasuryAddress(owner)
	if err != nil {
		return err
	}
	balance, err := h.ctrl.Balance(db, addr)
	if err != nil {
		return err
	}
	if balance < amount {
		return errors.Wrapf(errors.ErrInsufficientAmount,
			"treasury holds %d, swap needs %d", balance, amount)
	}
	return nil
}
