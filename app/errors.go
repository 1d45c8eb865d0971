package app

import "github.com/iov-one/settle/errors"

// app takes 1200-1209
var (
	// ErrNoSuchPath is returned when no handler is registered for the
	// message path.
	ErrNoSuchPath = errors.ErrNotFound.Register(1200, "path not registered")
)
