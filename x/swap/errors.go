package swap

import "github.com/iov-one/settle/errors"

// swap takes 1010-1019
var (
	ErrNotAccepter     = errors.ErrUnauthorized.Register(1010, "not the swap accepter")
	ErrNotAccepted     = errors.ErrState.Register(1011, "swap not accepted")
	ErrAlreadyExecuted = errors.ErrState.Register(1012, "swap already executed")
)
