package multisig

import "github.com/iov-one/settle/errors"

// multisig takes 1000-1009
var (
	ErrQuorumNotMet    = errors.ErrInput.Register(1000, "not enough approvals")
	ErrNotSigner       = errors.ErrUnauthorized.Register(1001, "not a signer")
	ErrWrongWallet     = errors.ErrUnauthorized.Register(1002, "wrong wallet")
	ErrAlreadyExecuted = errors.ErrState.Register(1003, "already executed")
	ErrAlreadyApproved = errors.ErrState.Register(1004, "already approved")
)
