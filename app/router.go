package app

import (
	"fmt"
	"regexp"

	settle "github.com/iov-one/settle"
	"github.com/iov-one/settle/errors"
)

// isPath is the validation rule for a message path.
var isPath = regexp.MustCompile(`^[a-zA-Z0-9_/]+$`).MatchString

// Router allows us to register many handlers with different paths and then
// direct each message to the proper handler.
//
// Minimal interface modeled after net/http.ServeMux
type Router struct {
	routes map[string]settle.Handler
}

var _ settle.Registry = (*Router)(nil)
var _ settle.Handler = (*Router)(nil)

// NewRouter returns a new empty router instance.
func NewRouter() *Router {
	return &Router{
		routes: make(map[string]settle.Handler, 16),
	}
}

// Handle adds a new handler for the path of given message. Registering an
// invalid path or the same path twice panics.
func (r *Router) Handle(m settle.Msg, h settle.Handler) {
	path := m.Path()
	if !isPath(path) {
		panic(fmt.Sprintf("invalid path: %q", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("re-registering route: %s", path))
	}
	r.routes[path] = h
}

// handler returns the handler registered for the message path. An error
// handler is returned if no handler is found.
func (r *Router) handler(tx settle.Tx) settle.Handler {
	msg, err := tx.GetMsg()
	if err != nil {
		return errorHandler{errors.Wrap(err, "cannot get message")}
	}
	if msg == nil {
		return errorHandler{errors.Wrap(errors.ErrEmpty, "transaction without message")}
	}
	path := msg.Path()
	if h, ok := r.routes[path]; ok {
		return h
	}
	return errorHandler{errors.Wrap(ErrNoSuchPath, path)}
}

// Check dispatches to the proper handler based on path
func (r *Router) Check(ctx settle.Context, store settle.KVStore, tx settle.Tx) (*settle.CheckResult, error) {
	return r.handler(tx).Check(ctx, store, tx)
}

// Deliver dispatches to the proper handler based on path
func (r *Router) Deliver(ctx settle.Context, store settle.KVStore, tx settle.Tx) (*settle.DeliverResult, error) {
	return r.handler(tx).Deliver(ctx, store, tx)
}

// errorHandler always returns the same error.
type errorHandler struct {
	err error
}

func (h errorHandler) Check(settle.Context, settle.KVStore, settle.Tx) (*settle.CheckResult, error) {
	return nil, h.err
}

func (h errorHandler) Deliver(settle.Context, settle.KVStore, settle.Tx) (*settle.DeliverResult, error) {
	return nil, h.err
}
