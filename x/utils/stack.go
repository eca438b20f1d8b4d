package utils

import (
	tide "github.com/iov-one/tide"
)

// decoratedHandler binds a decorator to the handler it forwards to, so
// a decorator chain can be used wherever a plain Handler is expected.
type decoratedHandler struct {
	d    tide.Decorator
	next tide.Handler
}

var _ tide.Handler = decoratedHandler{}

func (h decoratedHandler) Check(ctx tide.Context, db tide.KVStore, tx tide.Tx) (*tide.CheckResult, error) {
	return h.d.Check(ctx, db, tx, h.next)
}

func (h decoratedHandler) Deliver(ctx tide.Context, db tide.KVStore, tx tide.Tx) (*tide.DeliverResult, error) {
	return h.d.Deliver(ctx, db, tx, h.next)
}

// Chain composes the decorators around the handler, first decorator
// outermost.
func Chain(h tide.Handler, decorators ...tide.Decorator) tide.Handler {
	for i := len(decorators) - 1; i >= 0; i-- {
		h = decoratedHandler{d: decorators[i], next: h}
	}
	return h
}

// NewStack wraps a handler, typically the message router, in the
// standard decorator stack: the savepoint sits outside the recovery, so
// a recovered panic surfaces as a regular error and the savepoint
// discards all writes of the failed operation.
func NewStack(h tide.Handler) tide.Handler {
	return Chain(h,
		NewSavepoint().OnCheck().OnDeliver(),
		NewRecovery(),
	)
}
