package weavetest

import settle "github.com/iov-one/settle"

// Handler is a settle.Handler mock that records every request and returns
// the configured result.
type Handler struct {
	calls
	CheckResult   settle.CheckResult
	CheckErr      error
	DeliverResult settle.DeliverResult
	DeliverErr    error
}

var _ settle.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx settle.Context, db settle.KVStore, tx settle.Tx) (*settle.CheckResult, error) {
	h.record(tx, false)
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx settle.Context, db settle.KVStore, tx settle.Tx) (*settle.DeliverResult, error) {
	h.record(tx, true)
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

// WriteHandler writes the configured key value pair to the store on every
// call and then returns Err.
type WriteHandler struct {
	Key   []byte
	Value []byte
	Err   error
}

var _ settle.Handler = (*WriteHandler)(nil)

func (h *WriteHandler) Check(ctx settle.Context, db settle.KVStore, tx settle.Tx) (*settle.CheckResult, error) {
	if err := db.Set(h.Key, h.Value); err != nil {
		return nil, err
	}
	if h.Err != nil {
		return nil, h.Err
	}
	return &settle.CheckResult{}, nil
}

func (h *WriteHandler) Deliver(ctx settle.Context, db settle.KVStore, tx settle.Tx) (*settle.DeliverResult, error) {
	if err := db.Set(h.Key, h.Value); err != nil {
		return nil, err
	}
	if h.Err != nil {
		return nil, h.Err
	}
	return &settle.DeliverResult{}, nil
}

// PanicHandler panics on every call.
type PanicHandler struct {
	Msg string
}

var _ settle.Handler = PanicHandler{}

func (h PanicHandler) Check(settle.Context, settle.KVStore, settle.Tx) (*settle.CheckResult, error) {
	panic(h.Msg)
}

func (h PanicHandler) Deliver(settle.Context, settle.KVStore, settle.Tx) (*settle.DeliverResult, error) {
	panic(h.Msg)
}
