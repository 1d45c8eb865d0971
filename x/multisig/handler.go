package multisig

import (
	settle "github.com/iov-one/settle"
	"github.com/iov-one/settle/errors"
	"github.com/iov-one/settle/gconf"
	"github.com/iov-one/settle/orm"
	"github.com/iov-one/settle/x"
	"github.com/iov-one/settle/x/treasury"
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r settle.Registry, auth x.Authenticator, ctrl treasury.Controller) {
	wallets := NewWalletBucket()
	proposals := NewProposalBucket()
	r.Handle(&InitializeWalletMsg{}, InitializeWalletHandler{auth: auth, wallets: wallets})
	r.Handle(&ProposeTransactionMsg{}, ProposeTransactionHandler{auth: auth, wallets: wallets, proposals: proposals})
	r.Handle(&ApproveTransactionMsg{}, ApproveTransactionHandler{auth: auth, wallets: wallets, proposals: proposals})
	r.Handle(&ExecuteTransferMsg{}, ExecuteTransferHandler{auth: auth, wallets: wallets, proposals: proposals, ctrl: ctrl})
	r.Handle(&UpdateConfigurationMsg{}, gconf.NewUpdateConfigurationHandler(pkgName, newConfiguration, auth, nil))
}

// InitializeWalletHandler creates the wallet owned by the caller.
type InitializeWalletHandler struct {
	auth    x.Authenticator
	wallets WalletBucket
}

var _ settle.Handler = InitializeWalletHandler{}

func (h InitializeWalletHandler) Check(ctx settle.Context, db settle.KVStore, tx settle.Tx) (*settle.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &settle.CheckResult{}, nil
}

// Deliver stores the wallet and returns its address as the result data.
func (h InitializeWalletHandler) Deliver(ctx settle.Context, db settle.KVStore, tx settle.Tx) (*settle.DeliverResult, error) {
	addr, wallet, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.wallets.Create(db, addr, wallet); err != nil {
		return nil, errors.Wrap(err, "cannot store wallet")
	}
	settle.GetLogger(ctx).Info("wallet initialized",
		"wallet", addr, "signers", len(wallet.Signers), "quorum", wallet.Quorum)
	return &settle.DeliverResult{Data: addr}, nil
}

func (h InitializeWalletHandler) validate(ctx settle.Context, db settle.KVStore, tx settle.Tx) (settle.Address, *Wallet, error) {
	var msg InitializeWalletMsg
	if err := settle.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	caller, err := x.Caller(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	max, err := loadMaxSigners(db)
	if err != nil {
		return nil, nil, err
	}
	if len(msg.Signers) > max {
		return nil, nil, errors.Wrapf(errors.ErrInput,
			"%d signers, at most %d allowed", len(msg.Signers), max)
	}

	addr, err := WalletAddress(caller)
	if err != nil {
		return nil, nil, err
	}
	if err := ensureFree(db, h.wallets.ModelBucket, addr); err != nil {
		return nil, nil, errors.Wrap(err, "wallet")
	}
	wallet := &Wallet{
		Signers: settle.AddressSet(msg.Signers).Clone(),
		Quorum:  msg.Quorum,
	}
	return addr, wallet, nil
}

// ProposeTransactionHandler creates a transfer proposal for a wallet.
type ProposeTransactionHandler struct {
	auth      x.Authenticator
	wallets   WalletBucket
	proposals ProposalBucket
}

var _ settle.Handler = ProposeTransactionHandler{}

func (h ProposeTransactionHandler) Check(ctx settle.Context, db settle.KVStore, tx settle.Tx) (*settle.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &settle.CheckResult{}, nil
}

// Deliver stores the proposal and returns its address as the result data.
// No funds are moved.
func (h ProposeTransactionHandler) Deliver(ctx settle.Context, db settle.KVStore, tx settle.Tx) (*settle.DeliverResult, error) {
	addr, proposal, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.proposals.Create(db, addr, proposal); err != nil {
		return nil, errors.Wrap(err, "cannot store proposal")
	}
	return &settle.DeliverResult{Data: addr}, nil
}

func (h ProposeTransactionHandler) validate(ctx settle.Context, db settle.KVStore, tx settle.Tx) (settle.Address, *Proposal, error) {
	var msg ProposeTransactionMsg
	if err := settle.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	caller, err := x.Caller(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	if err := h.wallets.Has(db, msg.Wallet); err != nil {
		return nil, nil, errors.Wrap(err, "wallet")
	}

	addr, err := ProposalAddress(msg.Wallet, caller)
	if err != nil {
		return nil, nil, err
	}
	if err := ensureFree(db, h.proposals.ModelBucket, addr); err != nil {
		return nil, nil, errors.Wrap(err, "proposal")
	}
	proposal := &Proposal{
		Wallet:      msg.Wallet,
		Proposer:    caller,
		Destination: msg.Destination,
		Amount:      msg.Amount,
		State:       ProposalStateProposed,
	}
	return addr, proposal, nil
}

// ApproveTransactionHandler records the approval of a wallet signer.
type ApproveTransactionHandler struct {
	auth      x.Authenticator
	wallets   WalletBucket
	proposals ProposalBucket
}

var _ settle.Handler = ApproveTransactionHandler{}

func (h ApproveTransactionHandler) Check(ctx settle.Context, db settle.KVStore, tx settle.Tx) (*settle.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &settle.CheckResult{}, nil
}

func (h ApproveTransactionHandler) Deliver(ctx settle.Context, db settle.KVStore, tx settle.Tx) (*settle.DeliverResult, error) {
	addr, proposal, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.proposals.Put(db, addr, proposal); err != nil {
		return nil, errors.Wrap(err, "cannot store proposal")
	}
	return &settle.DeliverResult{}, nil
}

// validate returns the proposal with the approval of the caller added.
func (h ApproveTransactionHandler) validate(ctx settle.Context, db settle.KVStore, tx settle.Tx) (settle.Address, *Proposal, error) {
	var msg ApproveTransactionMsg
	if err := settle.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	caller, err := x.Caller(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	proposal, err := h.proposals.GetProposal(db, msg.Proposal)
	if err != nil {
		return nil, nil, err
	}
	if proposal.IsExecuted() {
		return nil, nil, errors.Wrapf(ErrAlreadyExecuted, "proposal %s", msg.Proposal)
	}
	wallet, err := h.wallets.GetWallet(db, proposal.Wallet)
	if err != nil {
		return nil, nil, err
	}
	if !wallet.IsSigner(caller) {
		return nil, nil, errors.Wrapf(ErrNotSigner, "%s in wallet %s", caller, proposal.Wallet)
	}
	if proposal.Approvals.Contains(caller) {
		return nil, nil, errors.Wrapf(ErrAlreadyApproved, "by %s", caller)
	}
	approvals, err := proposal.Approvals.Insert(caller, MaxSigners)
	if err != nil {
		return nil, nil, errors.Wrap(err, "approvals")
	}
	proposal.Approvals = approvals
	return msg.Proposal, proposal, nil
}

// ExecuteTransferHandler moves the funds of an approved proposal.
type ExecuteTransferHandler struct {
	auth      x.Authenticator
	wallets   WalletBucket
	proposals ProposalBucket
	ctrl      treasury.Controller
}

var _ settle.Handler = ExecuteTransferHandler{}

func (h ExecuteTransferHandler) Check(ctx settle.Context, db settle.KVStore, tx settle.Tx) (*settle.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &settle.CheckResult{}, nil
}

// Deliver debits the wallet, credits the destination and marks the
// proposal executed.
func (h ExecuteTransferHandler) Deliver(ctx settle.Context, db settle.KVStore, tx settle.Tx) (*settle.DeliverResult, error) {
	msg, proposal, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.Move(db, proposal.Wallet, proposal.Destination, proposal.Amount); err != nil {
		return nil, errors.Wrap(err, "cannot move funds")
	}
	if err := h.proposals.Put(db, msg.Proposal, proposal); err != nil {
		return nil, errors.Wrap(err, "cannot store proposal")
	}
	settle.GetLogger(ctx).Info("transfer executed",
		"wallet", proposal.Wallet, "destination", proposal.Destination, "amount", proposal.Amount)
	return &settle.DeliverResult{}, nil
}

// validate returns the proposal already switched to the executed state.
// Checks run in a fixed order and the first failure is returned.
func (h ExecuteTransferHandler) validate(ctx settle.Context, db settle.KVStore, tx settle.Tx) (*ExecuteTransferMsg, *Proposal, error) {
	var msg ExecuteTransferMsg
	if err := settle.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	caller, err := x.Caller(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	proposal, err := h.proposals.GetProposal(db, msg.Proposal)
	if err != nil {
		return nil, nil, err
	}
	next, err := proposal.State.Execute()
	if err != nil {
		return nil, nil, err
	}
	if !proposal.Wallet.Equals(msg.Wallet) {
		return nil, nil, errors.Wrapf(ErrWrongWallet, "proposal is for wallet %s", proposal.Wallet)
	}
	wallet, err := h.wallets.GetWallet(db, msg.Wallet)
	if err != nil {
		return nil, nil, err
	}
	if !wallet.IsSigner(caller) {
		return nil, nil, errors.Wrapf(ErrNotSigner, "%s in wallet %s", caller, msg.Wallet)
	}
	if !proposal.Approvals.Contains(caller) {
		return nil, nil, errors.Wrapf(ErrNotSigner, "%s did not approve", caller)
	}
	balance, err := h.ctrl.Balance(db, msg.Wallet)
	if err != nil {
		return nil, nil, err
	}
	if balance < proposal.Amount {
		return nil, nil, errors.Wrapf(errors.ErrInsufficientAmount,
			"wallet holds %d, transfer of %d", balance, proposal.Amount)
	}
	if uint64(len(proposal.Approvals)) < uint64(wallet.Quorum) {
		return nil, nil, errors.Wrapf(ErrQuorumNotMet,
			"%d of %d approvals", len(proposal.Approvals), wallet.Quorum)
	}
	proposal.State = next
	return &msg, proposal, nil
}

// ensureFree returns ErrDuplicate if key is in use.
func ensureFree(db settle.ReadOnlyKVStore, b orm.ModelBucket, key []byte) error {
	switch err := b.Has(db, key); {
	case err == nil:
		return errors.Wrapf(errors.ErrDuplicate, "%s already in use", settle.Address(key))
	case errors.ErrNotFound.Is(err):
		return nil
	default:
		return err
	}
}
