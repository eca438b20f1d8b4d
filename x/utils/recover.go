package utils

import (
	tide "github.com/iov-one/tide"
	"github.com/iov-one/tide/errors"
)

// Recovery is a decorator turning panics in the wrapped handler into
// regular errors.
type Recovery struct{}

var _ tide.Decorator = Recovery{}

// NewRecovery creates a Recovery decorator.
func NewRecovery() Recovery {
	return Recovery{}
}

func (r Recovery) Check(ctx tide.Context, store tide.KVStore, tx tide.Tx, next tide.Checker) (_ *tide.CheckResult, err error) {
	defer errors.Recover(&err)
	return next.Check(ctx, store, tx)
}

func (r Recovery) Deliver(ctx tide.Context, store tide.KVStore, tx tide.Tx, next tide.Deliverer) (_ *tide.DeliverResult, err error) {
	defer errors.Recover(&err)
	return next.Deliver(ctx, store, tx)
}
