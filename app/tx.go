package app

import (
	settle "github.com/iov-one/settle"
	"github.com/iov-one/settle/errors"
	"github.com/iov-one/settle/x/multisig"
	"github.com/iov-one/settle/x/swap"
	"github.com/iov-one/settle/x/treasury"
	amino "github.com/tendermint/go-amino"
)

// TxCodec serializes transactions. Every message the ledger routes is
// registered as a concrete implementation of settle.Msg.
var TxCodec = newTxCodec()

func newTxCodec() *amino.Codec {
	cdc := amino.NewCodec()
	cdc.RegisterInterface((*settle.Msg)(nil), nil)

	cdc.RegisterConcrete(&treasury.DepositMsg{}, "settle/treasury/Deposit", nil)
	cdc.RegisterConcrete(&treasury.SendMsg{}, "settle/treasury/Send", nil)

	cdc.RegisterConcrete(&multisig.InitializeWalletMsg{}, "settle/multisig/InitializeWallet", nil)
	cdc.RegisterConcrete(&multisig.ProposeTransactionMsg{}, "settle/multisig/ProposeTransaction", nil)
	cdc.RegisterConcrete(&multisig.ApproveTransactionMsg{}, "settle/multisig/ApproveTransaction", nil)
	cdc.RegisterConcrete(&multisig.ExecuteTransferMsg{}, "settle/multisig/ExecuteTransfer", nil)
	cdc.RegisterConcrete(&multisig.UpdateConfigurationMsg{}, "settle/multisig/UpdateConfiguration", nil)

	cdc.RegisterConcrete(&swap.ProposeSwapMsg{}, "settle/swap/Propose", nil)
	cdc.RegisterConcrete(&swap.AcceptSwapMsg{}, "settle/swap/Accept", nil)
	cdc.RegisterConcrete(&swap.ExecuteSwapMsg{}, "settle/swap/Execute", nil)

	cdc.Seal()
	return cdc
}

// Tx is the transaction format of the ledger. It carries exactly one
// message.
type Tx struct {
	Msg settle.Msg
}

var _ settle.Tx = (*Tx)(nil)

// NewTx wraps msg into a transaction.
func NewTx(msg settle.Msg) *Tx {
	return &Tx{Msg: msg}
}

// GetMsg returns the single message of this transaction.
func (tx *Tx) GetMsg() (settle.Msg, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrEmpty, "message")
	}
	return tx.Msg, nil
}

func (tx *Tx) Marshal() ([]byte, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrEmpty, "message")
	}
	bz, err := TxCodec.MarshalBinaryBare(tx)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrType, "cannot marshal transaction: %s", err)
	}
	return bz, nil
}

func (tx *Tx) Unmarshal(raw []byte) error {
	if err := TxCodec.UnmarshalBinaryBare(raw, tx); err != nil {
		return errors.Wrapf(errors.ErrType, "cannot unmarshal transaction: %s", err)
	}
	return nil
}

// DecodeTx is the settle.TxDecoder of the ledger.
func DecodeTx(raw []byte) (settle.Tx, error) {
	var tx Tx
	if err := tx.Unmarshal(raw); err != nil {
		return nil, err
	}
	return &tx, nil
}

var _ settle.TxDecoder = DecodeTx
