package multisig

import (
	"testing"

	settle "github.com/iov-one/settle"
	"github.com/iov-one/settle/errors"
	"github.com/iov-one/settle/weavetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeWalletMsgValidate(t *testing.T) {
	a := weavetest.NewCondition().Address()
	b := weavetest.NewCondition().Address()

	msg := &InitializeWalletMsg{Signers: []settle.Address{a, b, a, settle.Address("bad")}, Quorum: 2}
	err := msg.Validate()
	assert.True(t, errors.FieldIs(err, "Signers.0", nil), "%+v", err)
	assert.True(t, errors.FieldIs(err, "Signers.1", nil), "%+v", err)
	assert.True(t, errors.FieldIs(err, "Signers.2", errors.ErrInput), "%+v", err)
	assert.True(t, errors.FieldIs(err, "Signers.3", errors.ErrInput), "%+v", err)
}

func TestProposeTransactionMsgValidate(t *testing.T) {
	err := (&ProposeTransactionMsg{Destination: weavetest.NewCondition().Address()}).Validate()
	assert.True(t, errors.FieldIs(err, "Wallet", errors.ErrInput), "%+v", err)
	assert.True(t, errors.FieldIs(err, "Destination", nil), "%+v", err)
}

func TestExecuteTransferMsgValidate(t *testing.T) {
	err := (&ExecuteTransferMsg{Wallet: weavetest.NewCondition().Address()}).Validate()
	assert.True(t, errors.FieldIs(err, "Wallet", nil), "%+v", err)
	assert.True(t, errors.FieldIs(err, "Proposal", errors.ErrInput), "%+v", err)
}

func TestUpdateConfigurationMsgValidate(t *testing.T) {
	cases := map[string]struct {
		msg     *UpdateConfigurationMsg
		wantErr *errors.Error
	}{
		"patch is required": {
			msg:     &UpdateConfigurationMsg{},
			wantErr: errors.ErrEmpty,
		},
		"partial patch": {
			msg: &UpdateConfigurationMsg{Patch: &Configuration{MaxSigners: 3}},
		},
		"limit above the hard cap": {
			msg:     &UpdateConfigurationMsg{Patch: &Configuration{MaxSigners: MaxSigners + 1}},
			wantErr: errors.ErrInput,
		},
		"malformed owner": {
			msg:     &UpdateConfigurationMsg{Patch: &Configuration{Owner: settle.Address("x")}},
			wantErr: errors.ErrInput,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.True(t, tc.wantErr.Is(tc.msg.Validate()), "%+v", tc.msg.Validate())
		})
	}
}

func TestProposalStateTransition(t *testing.T) {
	next, err := ProposalStateProposed.Execute()
	require.NoError(t, err)
	assert.Equal(t, ProposalStateExecuted, next)

	_, err = ProposalStateExecuted.Execute()
	assert.True(t, ErrAlreadyExecuted.Is(err), "%+v", err)

	_, err = ProposalStateInvalid.Execute()
	assert.True(t, ErrAlreadyExecuted.Is(err), "%+v", err)
	assert.True(t, errors.ErrState.Is(ProposalStateInvalid.Validate()), "%+v", ProposalStateInvalid.Validate())
}
