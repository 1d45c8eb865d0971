package treasury

import "github.com/iov-one/settle/errors"

// treasury takes codes 1100-1109
var (
	// ErrNotOwner is returned when a treasury account is opened for an
	// address that is already used by a different owner.
	ErrNotOwner = errors.ErrUnauthorized.Register(1100, "not the account owner")
)
