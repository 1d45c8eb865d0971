package treasury

import (
	settle "github.com/iov-one/settle"
	"github.com/iov-one/settle/errors"
	"github.com/iov-one/settle/x"
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r settle.Registry, auth x.Authenticator, ctrl Controller) {
	r.Handle(&DepositMsg{}, NewDepositHandler(auth, ctrl))
	r.Handle(&SendMsg{}, NewSendHandler(auth, ctrl))
}

// DepositHandler funds the treasury of the caller from the general balance
// of the caller.
type DepositHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ settle.Handler = DepositHandler{}

// NewDepositHandler creates a handler for DepositMsg
func NewDepositHandler(auth x.Authenticator, ctrl Controller) DepositHandler {
	return DepositHandler{auth: auth, ctrl: ctrl}
}

// Check verifies the message and that the caller can afford the deposit.
func (h DepositHandler) Check(ctx settle.Context, db settle.KVStore, tx settle.Tx) (*settle.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &settle.CheckResult{}, nil
}

// Deliver opens the treasury if needed and moves the funds. The address of
// the treasury is returned as the result data.
func (h DepositHandler) Deliver(ctx settle.Context, db settle.KVStore, tx settle.Tx) (*settle.DeliverResult, error) {
	caller, msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	treasury, err := h.ctrl.OpenTreasury(db, caller)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.Move(db, caller, treasury, msg.Amount); err != nil {
		return nil, errors.Wrap(err, "cannot move funds")
	}

	settle.GetLogger(ctx).Info("deposit",
		"owner", caller, "treasury", treasury, "amount", msg.Amount)
	return &settle.DeliverResult{Data: treasury}, nil
}

func (h DepositHandler) validate(ctx settle.Context, db settle.KVStore, tx settle.Tx) (settle.Address, *DepositMsg, error) {
	var msg DepositMsg
	if err := settle.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	caller, err := x.Caller(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	balance, err := h.ctrl.Balance(db, caller)
	if err != nil {
		return nil, nil, err
	}
	if balance < msg.Amount {
		return nil, nil, errors.Wrapf(errors.ErrInsufficientAmount,
			"general balance %d, deposit %d", balance, msg.Amount)
	}
	return caller, &msg, nil
}

// SendHandler will handle sending funds between general balances
type SendHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ settle.Handler = SendHandler{}

// NewSendHandler creates a handler for SendMsg
func NewSendHandler(auth x.Authenticator, ctrl Controller) SendHandler {
	return SendHandler{auth: auth, ctrl: ctrl}
}

// Check just verifies it is properly formed and signed
func (h SendHandler) Check(ctx settle.Context, db settle.KVStore, tx settle.Tx) (*settle.CheckResult, error) {
	if _, _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &settle.CheckResult{}, nil
}

// Deliver moves the funds from caller to the destination if
// all preconditions are met
func (h SendHandler) Deliver(ctx settle.Context, db settle.KVStore, tx settle.Tx) (*settle.DeliverResult, error) {
	caller, msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.Move(db, caller, msg.Destination, msg.Amount); err != nil {
		return nil, err
	}
	return &settle.DeliverResult{}, nil
}

func (h SendHandler) validate(ctx settle.Context, tx settle.Tx) (settle.Address, *SendMsg, error) {
	var msg SendMsg
	if err := settle.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	caller, err := x.Caller(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	return caller, &msg, nil
}
