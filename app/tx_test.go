package app

import (
	"testing"

	settle "github.com/iov-one/settle"
	"github.com/iov-one/settle/errors"
	"github.com/iov-one/settle/weavetest"
	"github.com/iov-one/settle/x/swap"
	"github.com/iov-one/settle/x/treasury"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTxEncoding(t *testing.T) {
	dest := weavetest.NewCondition().Address()

	cases := map[string]settle.Msg{
		"deposit": &treasury.DepositMsg{Amount: 12},
		"send":    &treasury.SendMsg{Destination: dest, Amount: 3},
		"swap":    &swap.ProposeSwapMsg{Accepter: dest, ProposerAmount: 1, AccepterAmount: 2},
	}
	for name, msg := range cases {
		t.Run(name, func(t *testing.T) {
			raw, err := NewTx(msg).Marshal()
			require.NoError(t, err)

			tx, err := DecodeTx(raw)
			require.NoError(t, err)
			got, err := tx.GetMsg()
			require.NoError(t, err)
			assert.Equal(t, msg, got)
			assert.Equal(t, msg.Path(), settle.GetPath(tx))
		})
	}
}

func TestTxErrors(t *testing.T) {
	_, err := (&Tx{}).Marshal()
	assert.True(t, errors.ErrEmpty.Is(err), "%+v", err)

	_, err = (&Tx{}).GetMsg()
	assert.True(t, errors.ErrEmpty.Is(err), "%+v", err)

	_, err = DecodeTx([]byte{0xde, 0xad, 0xbe, 0xef})
	assert.True(t, errors.ErrType.Is(err), "%+v", err)
}
