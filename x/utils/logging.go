package utils

import (
	"time"

	settle "github.com/iov-one/settle"
	"github.com/iov-one/settle/x"
)

// Logging writes one entry for every request: failures at error level,
// deliveries at info and checks at debug. Each entry carries the request
// duration and, when known, the caller identity.
type Logging struct {
	auth x.Authenticator
}

var _ settle.Decorator = Logging{}

// NewLogging returns a Logging decorator that reads the caller identity
// through auth. auth may be nil.
func NewLogging(auth x.Authenticator) Logging {
	return Logging{auth: auth}
}

func (l Logging) Check(ctx settle.Context, db settle.KVStore, tx settle.Tx, next settle.Checker) (*settle.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, db, tx)
	var info string
	if err == nil {
		info = res.Log
	}
	l.log(ctx, start, info, err, true)
	return res, err
}

func (l Logging) Deliver(ctx settle.Context, db settle.KVStore, tx settle.Tx, next settle.Deliverer) (*settle.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, db, tx)
	var info string
	if err == nil {
		info = res.Log
	}
	l.log(ctx, start, info, err, false)
	return res, err
}

func (l Logging) log(ctx settle.Context, start time.Time, info string, err error, check bool) {
	logger := settle.GetLogger(ctx).With("duration", time.Since(start)/time.Microsecond)
	if l.auth != nil {
		if signer := x.MainSigner(ctx, l.auth); signer != nil {
			logger = logger.With("caller", signer.Address().String())
		}
	}

	// An entry is written even for an empty message, the keys carry the
	// information.
	switch {
	case err != nil:
		logger.Error(info, "err", err)
	case check:
		logger.Debug(info)
	default:
		logger.Info(info)
	}
}

// pathOf is settle.GetPath that accepts a nil transaction.
func pathOf(tx settle.Tx) string {
	if tx == nil {
		return "(missing)"
	}
	return settle.GetPath(tx)
}
