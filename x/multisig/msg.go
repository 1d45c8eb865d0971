package multisig

import (
	"fmt"

	settle "github.com/iov-one/settle"
	"github.com/iov-one/settle/errors"
	"github.com/iov-one/settle/gconf"
)

const (
	pathInitializeWalletMsg    = "multisig/initialize"
	pathProposeTransactionMsg  = "multisig/propose"
	pathApproveTransactionMsg  = "multisig/approve"
	pathExecuteTransferMsg     = "multisig/execute"
	pathUpdateConfigurationMsg = "multisig/update_configuration"
)

// InitializeWalletMsg creates the wallet of the caller.
type InitializeWalletMsg struct {
	Signers []settle.Address
	Quorum  uint32
}

var _ settle.Msg = (*InitializeWalletMsg)(nil)

// Path fulfills settle.Msg interface to allow routing
func (InitializeWalletMsg) Path() string {
	return pathInitializeWalletMsg
}

// Validate checks the signers against the hard MaxSigners limit. A lower
// configured limit is enforced by the handler.
func (m *InitializeWalletMsg) Validate() error {
	return validateSigners(m.Signers, m.Quorum, MaxSigners)
}

func (m *InitializeWalletMsg) Marshal() ([]byte, error) {
	return settle.MarshalBinary(m)
}

func (m *InitializeWalletMsg) Unmarshal(raw []byte) error {
	return settle.UnmarshalBinary(raw, m)
}

// ProposeTransactionMsg proposes moving Amount from Wallet to Destination.
type ProposeTransactionMsg struct {
	Wallet      settle.Address
	Destination settle.Address
	Amount      uint64
}

var _ settle.Msg = (*ProposeTransactionMsg)(nil)

// Path fulfills settle.Msg interface to allow routing
func (ProposeTransactionMsg) Path() string {
	return pathProposeTransactionMsg
}

func (m *ProposeTransactionMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Wallet", m.Wallet.Validate())
	errs = errors.AppendField(errs, "Destination", m.Destination.Validate())
	return errs
}

func (m *ProposeTransactionMsg) Marshal() ([]byte, error) {
	return settle.MarshalBinary(m)
}

func (m *ProposeTransactionMsg) Unmarshal(raw []byte) error {
	return settle.UnmarshalBinary(raw, m)
}

// ApproveTransactionMsg adds the approval of the caller to a proposal.
type ApproveTransactionMsg struct {
	Proposal settle.Address
}

var _ settle.Msg = (*ApproveTransactionMsg)(nil)

// Path fulfills settle.Msg interface to allow routing
func (ApproveTransactionMsg) Path() string {
	return pathApproveTransactionMsg
}

func (m *ApproveTransactionMsg) Validate() error {
	return errors.Field("Proposal", m.Proposal.Validate(), "")
}

func (m *ApproveTransactionMsg) Marshal() ([]byte, error) {
	return settle.MarshalBinary(m)
}

func (m *ApproveTransactionMsg) Unmarshal(raw []byte) error {
	return settle.UnmarshalBinary(raw, m)
}

// ExecuteTransferMsg executes an approved proposal. Wallet must be the
// wallet the proposal was created for.
type ExecuteTransferMsg struct {
	Wallet   settle.Address
	Proposal settle.Address
}

var _ settle.Msg = (*ExecuteTransferMsg)(nil)

// Path fulfills settle.Msg interface to allow routing
func (ExecuteTransferMsg) Path() string {
	return pathExecuteTransferMsg
}

func (m *ExecuteTransferMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Wallet", m.Wallet.Validate())
	errs = errors.AppendField(errs, "Proposal", m.Proposal.Validate())
	return errs
}

func (m *ExecuteTransferMsg) Marshal() ([]byte, error) {
	return settle.MarshalBinary(m)
}

func (m *ExecuteTransferMsg) Unmarshal(raw []byte) error {
	return settle.UnmarshalBinary(raw, m)
}

// UpdateConfigurationMsg patches the stored configuration with all non
// zero fields of Patch.
type UpdateConfigurationMsg struct {
	Patch *Configuration
}

var _ gconf.PatchMsg = (*UpdateConfigurationMsg)(nil)

// Path fulfills settle.Msg interface to allow routing
func (UpdateConfigurationMsg) Path() string {
	return pathUpdateConfigurationMsg
}

func (m *UpdateConfigurationMsg) Validate() error {
	if m.Patch == nil {
		return errors.Wrap(errors.ErrEmpty, "patch")
	}
	if m.Patch.MaxSigners > MaxSigners {
		return errors.Field("Patch.MaxSigners", errors.ErrInput, "at most %d", MaxSigners)
	}
	if len(m.Patch.Owner) != 0 {
		return errors.Field("Patch.Owner", m.Patch.Owner.Validate(), "")
	}
	return nil
}

// ConfigPatch returns the configuration fields to change.
func (m *UpdateConfigurationMsg) ConfigPatch() gconf.OwnedConfig {
	if m.Patch == nil {
		return nil
	}
	return m.Patch
}

func (m *UpdateConfigurationMsg) Marshal() ([]byte, error) {
	return settle.MarshalBinary(m)
}

func (m *UpdateConfigurationMsg) Unmarshal(raw []byte) error {
	return settle.UnmarshalBinary(raw, m)
}

func fieldIndex(name string, i int) string {
	return fmt.Sprintf("%s.%d", name, i)
}
