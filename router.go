package tide

import (
	"regexp"

	"github.com/iov-one/tide/errors"
)

var isRoute = regexp.MustCompile(`^[a-zA-Z0-9_/]+$`).MatchString

// Router is a plain Registry implementation dispatching messages to
// handlers by their path.
type Router struct {
	routes map[string]Handler
}

var _ Registry = (*Router)(nil)
var _ Handler = (*Router)(nil)

// NewRouter initializes a router with no routes.
func NewRouter() *Router {
	return &Router{
		routes: make(map[string]Handler),
	}
}

// Handle implements Registry interface. Path must be an alphanumeric
// string, optionally with "/" separators. Duplicate registration and an
// invalid path are considered a programmer error and panic.
func (r *Router) Handle(path string, h Handler) {
	if !isRoute(path) {
		panic("invalid route: " + path)
	}
	if _, ok := r.routes[path]; ok {
		panic("re-registering route: " + path)
	}
	r.routes[path] = h
}

// handler returns the registered Handler for this path, or a
// noSuchPathHandler when none was registered.
func (r *Router) handler(m Msg) Handler {
	if h, ok := r.routes[m.Path()]; ok {
		return h
	}
	return noSuchPathHandler{path: m.Path()}
}

// Check dispatches to the proper handler based on the message path.
func (r *Router) Check(ctx Context, store KVStore, tx Tx) (*CheckResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	return r.handler(msg).Check(ctx, store, tx)
}

// Deliver dispatches to the proper handler based on the message path.
func (r *Router) Deliver(ctx Context, store KVStore, tx Tx) (*DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	return r.handler(msg).Deliver(ctx, store, tx)
}

type noSuchPathHandler struct {
	path string
}

var _ Handler = noSuchPathHandler{}

func (h noSuchPathHandler) Check(Context, KVStore, Tx) (*CheckResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", h.path)
}

func (h noSuchPathHandler) Deliver(Context, KVStore, Tx) (*DeliverResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", h.path)
}
