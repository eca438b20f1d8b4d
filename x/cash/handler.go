package cash

import (
	tide "github.com/iov-one/tide"
	"github.com/iov-one/tide/errors"
	"github.com/iov-one/tide/x"
)

const sendTxCost int64 = 100

// RegisterRoutes will instantiate and register all handlers in this
// package.
func RegisterRoutes(r tide.Registry, auth x.Authenticator, ctrl Controller) {
	r.Handle(pathSendMsg, SendHandler{auth: auth, ctrl: ctrl})
}

// RegisterQuery will register the wallet bucket as "/wallets".
func RegisterQuery(qr tide.QueryRouter) {
	NewWalletBucket().Register("wallets", qr)
}

// SendHandler moves tokens between wallets.
type SendHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ tide.Handler = SendHandler{}

// Check just verifies it is properly formed and returns the cost of
// executing it.
func (h SendHandler) Check(ctx tide.Context, db tide.KVStore, tx tide.Tx) (*tide.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &tide.CheckResult{GasAllocated: sendTxCost}, nil
}

// Deliver moves the tokens from source to destination if all
// preconditions are met.
func (h SendHandler) Deliver(ctx tide.Context, db tide.KVStore, tx tide.Tx) (*tide.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.MoveCoins(db, msg.Src, msg.Dest, msg.Amount); err != nil {
		return nil, err
	}
	return &tide.DeliverResult{}, nil
}

// validate does all common pre-processing between Check and Deliver.
func (h SendHandler) validate(ctx tide.Context, db tide.KVStore, tx tide.Tx) (*SendMsg, error) {
	var msg SendMsg
	if err := tide.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Src) {
		return nil, errors.ErrUnauthorized
	}
	return &msg, nil
}
