package token

import (
	tide "github.com/iov-one/tide"
	"github.com/iov-one/tide/errors"
	"github.com/iov-one/tide/orm"
	"github.com/iov-one/tide/x"
)

const registerTokenCost int64 = 100

// RegisterRoutes will instantiate and register all handlers in this
// package. When issuer is set only that address may register tokens,
// a nil issuer leaves registration open to any signer.
func RegisterRoutes(r tide.Registry, auth x.Authenticator, issuer tide.Address) {
	r.Handle(pathRegisterTokenMsg, RegisterHandler{auth: auth, issuer: issuer, bucket: NewInfoBucket()})
}

// RegisterQuery will register the token bucket as "/tokens".
func RegisterQuery(qr tide.QueryRouter) {
	NewInfoBucket().Register("tokens", qr)
}

// RegisterHandler makes new tokens known to the engine. Once
// registered, a token cannot be changed, amounts in the wild depend on
// the decimals staying stable.
type RegisterHandler struct {
	auth   x.Authenticator
	issuer tide.Address
	bucket orm.ModelBucket
}

var _ tide.Handler = RegisterHandler{}

func (h RegisterHandler) Check(ctx tide.Context, db tide.KVStore, tx tide.Tx) (*tide.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &tide.CheckResult{GasAllocated: registerTokenCost}, nil
}

func (h RegisterHandler) Deliver(ctx tide.Context, db tide.KVStore, tx tide.Tx) (*tide.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	info := Info{Name: msg.Name, Decimals: msg.Decimals}
	if _, err := h.bucket.Put(db, []byte(msg.Ticker), &info); err != nil {
		return nil, errors.Wrap(err, "cannot store token info")
	}
	return &tide.DeliverResult{Data: []byte(msg.Ticker)}, nil
}

func (h RegisterHandler) validate(ctx tide.Context, db tide.KVStore, tx tide.Tx) (*RegisterTokenMsg, error) {
	var msg RegisterTokenMsg
	if err := tide.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if x.MainSigner(ctx, h.auth) == nil {
		return nil, errors.ErrUnauthorized
	}
	if h.issuer != nil && !h.auth.HasAddress(ctx, h.issuer) {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "tokens are issued only by %s", h.issuer)
	}
	if err := h.bucket.Has(db, []byte(msg.Ticker)); err == nil {
		return nil, errors.Wrapf(errors.ErrDuplicate, "token %q", msg.Ticker)
	} else if !errors.ErrNotFound.Is(err) {
		return nil, err
	}
	return &msg, nil
}
