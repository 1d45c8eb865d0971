package treasury

import (
	settle "github.com/iov-one/settle"
	"github.com/iov-one/settle/errors"
)

const (
	pathDepositMsg = "treasury/deposit"
	pathSendMsg    = "treasury/send"
)

// DepositMsg moves Amount from the general balance of the caller into the
// treasury account of the caller.
type DepositMsg struct {
	Amount uint64
}

var _ settle.Msg = (*DepositMsg)(nil)

// Path fulfills settle.Msg interface to allow routing
func (DepositMsg) Path() string {
	return pathDepositMsg
}

// Validate accepts any amount, including zero which only opens the
// treasury.
func (m *DepositMsg) Validate() error {
	return nil
}

func (m *DepositMsg) Marshal() ([]byte, error) {
	return settle.MarshalBinary(m)
}

func (m *DepositMsg) Unmarshal(raw []byte) error {
	return settle.UnmarshalBinary(raw, m)
}

// SendMsg moves Amount from the general balance of the caller to the
// balance held under Destination.
type SendMsg struct {
	Destination settle.Address
	Amount      uint64
}

var _ settle.Msg = (*SendMsg)(nil)

// Path fulfills settle.Msg interface to allow routing
func (SendMsg) Path() string {
	return pathSendMsg
}

func (m *SendMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Destination", m.Destination.Validate())
	if m.Amount == 0 {
		errs = errors.AppendField(errs, "Amount", errors.ErrAmount)
	}
	return errs
}

func (m *SendMsg) Marshal() ([]byte, error) {
	return settle.MarshalBinary(m)
}

func (m *SendMsg) Unmarshal(raw []byte) error {
	return settle.UnmarshalBinary(raw, m)
}
