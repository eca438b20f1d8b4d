package utils

import (
	tide "github.com/iov-one/tide"
	"github.com/iov-one/tide/errors"
)

// Savepoint isolates all writes of the wrapped handler inside a cache
// wrap. The cache is written through on success and discarded on error,
// so a failed operation leaves the store exactly as it was.
type Savepoint struct {
	onCheck   bool
	onDeliver bool
}

var _ tide.Decorator = Savepoint{}

// NewSavepoint creates a Savepoint decorator. Call OnCheck or OnDeliver
// to select when it triggers.
func NewSavepoint() Savepoint {
	return Savepoint{}
}

// OnCheck returns a savepoint that triggers on Check.
func (s Savepoint) OnCheck() Savepoint {
	return Savepoint{onCheck: true, onDeliver: s.onDeliver}
}

// OnDeliver returns a savepoint that triggers on Deliver.
func (s Savepoint) OnDeliver() Savepoint {
	return Savepoint{onCheck: s.onCheck, onDeliver: true}
}

func (s Savepoint) Check(ctx tide.Context, store tide.KVStore, tx tide.Tx, next tide.Checker) (*tide.CheckResult, error) {
	if !s.onCheck {
		return next.Check(ctx, store, tx)
	}
	cstore, ok := store.(tide.CacheableKVStore)
	if !ok {
		return next.Check(ctx, store, tx)
	}
	cache := cstore.CacheWrap()
	res, err := next.Check(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "writing savepoint")
	}
	return res, nil
}

func (s Savepoint) Deliver(ctx tide.Context, store tide.KVStore, tx tide.Tx, next tide.Deliverer) (*tide.DeliverResult, error) {
	if !s.onDeliver {
		return next.Deliver(ctx, store, tx)
	}
	cstore, ok := store.(tide.CacheableKVStore)
	if !ok {
		return next.Deliver(ctx, store, tx)
	}
	cache := cstore.CacheWrap()
	res, err := next.Deliver(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "writing savepoint")
	}
	return res, nil
}
