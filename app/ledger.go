package app

import (
	"sync"

	settle "github.com/iov-one/settle"
	"github.com/iov-one/settle/errors"
	"github.com/iov-one/settle/x"
	"github.com/iov-one/settle/x/auth"
	"github.com/iov-one/settle/x/multisig"
	"github.com/iov-one/settle/x/swap"
	"github.com/iov-one/settle/x/treasury"
	"github.com/iov-one/settle/x/utils"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// Routes registers the handlers of all extensions.
func Routes(r settle.Registry, authenticator x.Authenticator) {
	ctrl := treasury.NewController(treasury.NewAccountBucket())
	treasury.RegisterRoutes(r, authenticator, ctrl)
	multisig.RegisterRoutes(r, authenticator, ctrl)
	swap.RegisterRoutes(r, authenticator, ctrl)
}

// Stack returns the handler processing every transaction: the router
// wrapped with recovery, logging, authentication and a savepoint that
// discards all writes of a failed delivery.
func Stack() settle.Handler {
	r := NewRouter()
	Routes(r, auth.Authenticate{})
	return ChainDecorators(
		utils.NewRecovery(),
		utils.NewLogging(auth.Authenticate{}),
		auth.NewDecorator(),
		utils.NewSavepoint().OnDeliver(),
	).WithHandler(r)
}

// Initializers returns the genesis initializer of all extensions.
func Initializers() settle.Initializer {
	return settle.ChainInitializers(
		treasury.Initializer{},
		multisig.Initializer{},
	)
}

// Ledger processes transactions one at a time against a single store.
type Ledger struct {
	mu      sync.Mutex
	db      settle.CacheableKVStore
	handler settle.Handler
	logger  log.Logger
	conf    Config
}

// NewLedger returns a ledger keeping its state in db.
func NewLedger(conf Config, db settle.CacheableKVStore, logger log.Logger) *Ledger {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Ledger{
		db:      db,
		handler: Stack(),
		logger:  logger,
		conf:    conf,
	}
}

// InitGenesis loads the initial state. It must be called once, before any
// transaction is processed.
func (l *Ledger) InitGenesis(opts settle.Options) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	cache := l.db.CacheWrap()
	if err := Initializers().FromGenesis(opts, cache); err != nil {
		cache.Discard()
		return errors.Wrap(err, "genesis")
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(err, "write genesis")
	}
	l.logger.Info("genesis loaded")
	return nil
}

// Check validates tx against the current state without changing it.
func (l *Ledger) Check(ctx settle.Context, tx settle.Tx) (*settle.CheckResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	cache := l.db.CacheWrap()
	defer cache.Discard()
	return l.handler.Check(l.context(ctx, "check_tx", tx), cache, tx)
}

// Deliver executes tx. Either every write of the transaction is applied or
// none is.
func (l *Ledger) Deliver(ctx settle.Context, tx settle.Tx) (*settle.DeliverResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.handler.Deliver(l.context(ctx, "deliver_tx", tx), l.db, tx)
}

// CheckTx decodes and checks a serialized transaction.
func (l *Ledger) CheckTx(ctx settle.Context, raw []byte) abci.ResponseCheckTx {
	tx, err := l.loadTx(raw)
	if err != nil {
		return l.checkError(err)
	}
	res, err := l.Check(ctx, tx)
	if err != nil {
		return l.checkError(err)
	}
	return abci.ResponseCheckTx{Data: res.Data, Log: res.Log}
}

// DeliverTx decodes and executes a serialized transaction.
func (l *Ledger) DeliverTx(ctx settle.Context, raw []byte) abci.ResponseDeliverTx {
	tx, err := l.loadTx(raw)
	if err != nil {
		return l.deliverError(err)
	}
	res, err := l.Deliver(ctx, tx)
	if err != nil {
		return l.deliverError(err)
	}
	return abci.ResponseDeliverTx{Data: res.Data, Log: res.Log}
}

// View gives fn a read only access to the current state.
func (l *Ledger) View(fn func(db settle.ReadOnlyKVStore) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return fn(l.db)
}

// ChainID returns the configured chain identifier.
func (l *Ledger) ChainID() string {
	return l.conf.ChainID
}

func (l *Ledger) context(ctx settle.Context, call string, tx settle.Tx) settle.Context {
	ctx = settle.WithLogger(ctx, l.logger)
	return settle.WithLogInfo(ctx, "call", call, "path", settle.GetPath(tx))
}

// loadTx calls the decoder, and capture any panics
func (l *Ledger) loadTx(raw []byte) (tx settle.Tx, err error) {
	defer errors.Recover(&err)
	return DecodeTx(raw)
}

func (l *Ledger) checkError(err error) abci.ResponseCheckTx {
	code, msg := errors.ABCIInfo(err, l.conf.Debug)
	return abci.ResponseCheckTx{Code: code, Log: msg}
}

func (l *Ledger) deliverError(err error) abci.ResponseDeliverTx {
	code, msg := errors.ABCIInfo(err, l.conf.Debug)
	return abci.ResponseDeliverTx{Code: code, Log: msg}
}
