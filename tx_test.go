package settle_test

import (
	"testing"

	settle "github.com/iov-one/settle"
	"github.com/iov-one/settle/errors"
	"github.com/iov-one/settle/weavetest"
	"github.com/stretchr/testify/assert"
)

type demoMsg struct {
	Num  int
	Text string
}

func (demoMsg) Path() string               { return "demo/msg" }
func (demoMsg) Validate() error            { return nil }
func (demoMsg) Marshal() ([]byte, error)   { return []byte("foo"), nil }
func (*demoMsg) Unmarshal(bz []byte) error { return nil }

var _ settle.Msg = (*demoMsg)(nil)

func TestLoadMsg(t *testing.T) {
	cases := map[string]struct {
		Tx      settle.Tx
		Dest    interface{}
		WantMsg settle.Msg
		WantErr *errors.Error
	}{
		"success, weavetest message": {
			Tx:      &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "a/b", Serialized: []byte("x")}},
			Dest:    &weavetest.Msg{},
			WantMsg: &weavetest.Msg{RoutePath: "a/b", Serialized: []byte("x")},
		},
		"success, demo message": {
			Tx:      &weavetest.Tx{Msg: &demoMsg{Num: 102, Text: "foobar"}},
			Dest:    &demoMsg{},
			WantMsg: &demoMsg{Num: 102, Text: "foobar"},
		},
		"transaction without a message": {
			Tx:      &weavetest.Tx{Err: errors.ErrEmpty},
			Dest:    &demoMsg{},
			WantErr: errors.ErrEmpty,
		},
		"destination is not a pointer": {
			Tx:      &weavetest.Tx{Msg: &demoMsg{Num: 81421}},
			Dest:    demoMsg{},
			WantErr: errors.ErrType,
		},
		"wrong message type": {
			Tx:      &weavetest.Tx{Msg: &demoMsg{Num: 94151}},
			Dest:    &weavetest.Msg{},
			WantErr: errors.ErrType,
		},
		"nil destination": {
			Tx:      &weavetest.Tx{Msg: &demoMsg{Num: 45192}},
			Dest:    settle.Msg(nil),
			WantErr: errors.ErrType,
		},
		"random destination": {
			Tx:      &weavetest.Tx{Msg: &demoMsg{Num: 2914}},
			Dest:    "foobar",
			WantErr: errors.ErrType,
		},
		"message fails validation": {
			Tx:      &weavetest.Tx{Msg: &weavetest.Msg{Err: errors.ErrAmount}},
			Dest:    &weavetest.Msg{},
			WantErr: errors.ErrAmount,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if err := settle.LoadMsg(tc.Tx, tc.Dest); !tc.WantErr.Is(err) {
				t.Fatalf("want %q error, got %q", tc.WantErr, err)
			}
			if tc.WantErr == nil {
				assert.Equal(t, tc.WantMsg, tc.Dest)
			}
		})
	}
}

func TestGetPath(t *testing.T) {
	assert.Equal(t, "demo/msg", settle.GetPath(&weavetest.Tx{Msg: &demoMsg{}}))
	assert.Equal(t, "(missing)", settle.GetPath(&weavetest.Tx{}))
	assert.Equal(t, "(missing)", settle.GetPath(&weavetest.Tx{Err: errors.ErrHuman}))
}
