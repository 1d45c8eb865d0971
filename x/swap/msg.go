package swap

import (
	settle "github.com/iov-one/settle"
	"github.com/iov-one/settle/errors"
)

const (
	pathProposeSwapMsg = "swap/propose"
	pathAcceptSwapMsg  = "swap/accept"
	pathExecuteSwapMsg = "swap/execute"
)

// ProposeSwapMsg offers ProposerAmount from the treasury of the caller in
// exchange for AccepterAmount from the treasury of Accepter.
type ProposeSwapMsg struct {
	Accepter       settle.Address
	ProposerAmount uint64
	AccepterAmount uint64
}

var _ settle.Msg = (*ProposeSwapMsg)(nil)

// Path fulfills settle.Msg interface to allow routing
func (ProposeSwapMsg) Path() string {
	return pathProposeSwapMsg
}

func (m *ProposeSwapMsg) Validate() error {
	return errors.Field("Accepter", m.Accepter.Validate(), "")
}

func (m *ProposeSwapMsg) Marshal() ([]byte, error) {
	return settle.MarshalBinary(m)
}

func (m *ProposeSwapMsg) Unmarshal(raw []byte) error {
	return settle.UnmarshalBinary(raw, m)
}

// AcceptSwapMsg is sent by the accepter to agree to a swap.
type AcceptSwapMsg struct {
	Swap settle.Address
}

var _ settle.Msg = (*AcceptSwapMsg)(nil)

// Path fulfills settle.Msg interface to allow routing
func (AcceptSwapMsg) Path() string {
	return pathAcceptSwapMsg
}

func (m *AcceptSwapMsg) Validate() error {
	return errors.Field("Swap", m.Swap.Validate(), "")
}

func (m *AcceptSwapMsg) Marshal() ([]byte, error) {
	return settle.MarshalBinary(m)
}

func (m *AcceptSwapMsg) Unmarshal(raw []byte) error {
	return settle.UnmarshalBinary(raw, m)
}

// ExecuteSwapMsg settles an accepted swap.
type ExecuteSwapMsg struct {
	Swap settle.Address
}

var _ settle.Msg = (*ExecuteSwapMsg)(nil)

// Path fulfills settle.Msg interface to allow routing
func (ExecuteSwapMsg) Path() string {
	return pathExecuteSwapMsg
}

func (m *ExecuteSwapMsg) Validate() error {
	return errors.Field("Swap", m.Swap.Validate(), "")
}

func (m *ExecuteSwapMsg) Marshal() ([]byte, error) {
	return settle.MarshalBinary(m)
}

func (m *ExecuteSwapMsg) Unmarshal(raw []byte) error {
	return settle.UnmarshalBinary(raw, m)
}
