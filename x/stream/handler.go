package stream

import (
	tide "github.com/iov-one/tide"
	"github.com/iov-one/tide/coin"
	"github.com/iov-one/tide/errors"
	"github.com/iov-one/tide/orm"
	"github.com/iov-one/tide/x"
	"github.com/iov-one/tide/x/cash"
	"github.com/iov-one/tide/x/token"
)

const (
	createStreamCost   int64 = 300
	depositCost        int64 = 200
	withdrawCost       int64 = 200
	syncStreamCost     int64 = 100
	exitStreamCost     int64 = 200
	finalizeStreamCost int64 = 200
	cancelStreamCost   int64 = 100
)

// RegisterRoutes will instantiate and register all handlers in this
// package.
func RegisterRoutes(r tide.Registry, auth x.Authenticator, ctrl cash.Controller) {
	streams := NewStreamBucket()
	positions := NewPositionBucket()
	r.Handle(pathCreateStreamMsg, CreateStreamHandler{auth: auth, ctrl: ctrl, streams: streams})
	r.Handle(pathDepositMsg, DepositHandler{auth: auth, ctrl: ctrl, streams: streams, positions: positions})
	r.Handle(pathWithdrawMsg, WithdrawHandler{auth: auth, ctrl: ctrl, streams: streams, positions: positions})
	r.Handle(pathSyncStreamMsg, SyncStreamHandler{streams: streams})
	r.Handle(pathExitStreamMsg, ExitStreamHandler{auth: auth, ctrl: ctrl, streams: streams, positions: positions})
	r.Handle(pathFinalizeStreamMsg, FinalizeStreamHandler{auth: auth, ctrl: ctrl, streams: streams})
	r.Handle(pathCancelStreamMsg, CancelStreamHandler{auth: auth, ctrl: ctrl, streams: streams})
}

// RegisterQuery will register the stream and position buckets.
func RegisterQuery(qr tide.QueryRouter) {
	NewStreamBucket().Register("streams", qr)
	NewPositionBucket().Register("positions", qr)
}

func loadStream(db tide.ReadOnlyKVStore, bucket orm.ModelBucket, streamID []byte) (*Stream, error) {
	var s Stream
	if err := bucket.One(db, streamID, &s); err != nil {
		return nil, errors.Wrapf(err, "stream %x", streamID)
	}
	return &s, nil
}

// advanceStream moves the stream phase to the given moment and runs the
// distribution sync. The phase change and the sync both depend only on
// time, so every handler applies them before acting.
func advanceStream(s *Stream, now tide.UnixTime) error {
	s.Status = NextStatus(s.Status, now, s.BootstrapStart, s.StreamStart, s.StreamEnd)
	return syncStream(s, now)
}

func signerAddress(ctx tide.Context, auth x.Authenticator) (tide.Address, error) {
	sig := x.MainSigner(ctx, auth)
	if sig == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
	}
	return sig.Address(), nil
}

// CreateStreamHandler sets up a new stream and escrows the out token
// pot on its account.
type CreateStreamHandler struct {
	auth    x.Authenticator
	ctrl    cash.Controller
	streams orm.ModelBucket
}

var _ tide.Handler = CreateStreamHandler{}

func (h CreateStreamHandler) Check(ctx tide.Context, db tide.KVStore, tx tide.Tx) (*tide.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &tide.CheckResult{GasAllocated: createStreamCost}, nil
}

func (h CreateStreamHandler) Deliver(ctx tide.Context, db tide.KVStore, tx tide.Tx) (*tide.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	now, err := tide.BlockTimeUnix(ctx)
	if err != nil {
		return nil, err
	}

	inInfo, err := token.LoadInfo(db, msg.InTicker)
	if err != nil {
		return nil, errors.Wrap(err, "in token")
	}
	outInfo, err := token.LoadInfo(db, msg.OutTicker)
	if err != nil {
		return nil, errors.Wrap(err, "out token")
	}

	s := Stream{
		Creator:        msg.Creator,
		Treasury:       msg.Treasury,
		InTicker:       msg.InTicker,
		OutTicker:      msg.OutTicker,
		InDecimals:     inInfo.Decimals,
		OutDecimals:    outInfo.Decimals,
		OutAmount:      msg.OutAmount,
		BootstrapStart: msg.BootstrapStart,
		StreamStart:    msg.StreamStart,
		StreamEnd:      msg.StreamEnd,
		Status:         StatusWaiting,
		OutRemaining:   msg.OutAmount,
		LastUpdated:    now,
	}
	key, err := h.streams.Put(db, nil, &s)
	if err != nil {
		return nil, errors.Wrap(err, "cannot store stream")
	}
	pot := coin.NewCoin(msg.OutAmount, msg.OutTicker)
	if err := h.ctrl.MoveCoins(db, msg.Treasury, StreamAccount(key), pot); err != nil {
		return nil, errors.Wrap(err, "cannot escrow the pot")
	}
	tide.GetLogger(ctx).Info("stream created",
		"id", orm.DecodeSequence(key),
		"out", pot.String())
	return &tide.DeliverResult{Data: key}, nil
}

func (h CreateStreamHandler) validate(ctx tide.Context, db tide.KVStore, tx tide.Tx) (*CreateStreamMsg, error) {
	var msg CreateStreamMsg
	if err := tide.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Treasury) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "treasury must sign")
	}
	now, err := tide.BlockTimeUnix(ctx)
	if err != nil {
		return nil, err
	}
	if msg.BootstrapStart < now {
		return nil, errors.Wrap(errors.ErrExpired, "bootstrap start in the past")
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	if int64(msg.BootstrapStart-now) < int64(conf.MinWaitDuration) {
		return nil, errors.Wrapf(errors.ErrInput, "wait phase shorter than %s", conf.MinWaitDuration.Duration())
	}
	if int64(msg.StreamStart-msg.BootstrapStart) < int64(conf.MinBootstrapDuration) {
		return nil, errors.Wrapf(errors.ErrInput, "bootstrap phase shorter than %s", conf.MinBootstrapDuration.Duration())
	}
	if int64(msg.StreamEnd-msg.StreamStart) < int64(conf.MinStreamDuration) {
		return nil, errors.Wrapf(errors.ErrInput, "active phase shorter than %s", conf.MinStreamDuration.Duration())
	}
	return &msg, nil
}

// DepositHandler stakes the in token into a stream, minting shares for
// the sender's position.
type DepositHandler struct {
	auth      x.Authenticator
	ctrl      cash.Controller
	streams   orm.ModelBucket
	positions orm.ModelBucket
}

var _ tide.Handler = DepositHandler{}

func (h DepositHandler) Check(ctx tide.Context, db tide.KVStore, tx tide.Tx) (*tide.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &tide.CheckResult{GasAllocated: depositCost}, nil
}

func (h DepositHandler) Deliver(ctx tide.Context, db tide.KVStore, tx tide.Tx) (*tide.DeliverResult, error) {
	msg, sender, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	now, err := tide.BlockTimeUnix(ctx)
	if err != nil {
		return nil, err
	}
	s, err := loadStream(db, h.streams, msg.StreamID)
	if err != nil {
		return nil, err
	}
	if err := advanceStream(s, now); err != nil {
		return nil, err
	}
	switch s.Status {
	case StatusBootstrapping, StatusActive:
	default:
		return nil, errors.Wrapf(errors.ErrState, "cannot deposit into a %s stream", s.Status)
	}
	if s.InSupply > coin.MaxAmount-msg.Amount {
		return nil, errors.Wrap(errors.ErrOverflow, "supply")
	}

	key := positionKey(msg.StreamID, sender)
	var p Position
	switch err := h.positions.One(db, key, &p); {
	case errors.ErrNotFound.Is(err):
		// First deposit. The index snapshot starts at the current
		// value so past distribution is not credited.
		p = Position{
			Owner:          sender,
			Index:          s.DistIndex,
			LastUpdateTime: now,
		}
	case err != nil:
		return nil, err
	case !p.ExitDate.IsZero():
		return nil, errors.Wrap(errors.ErrState, "position already exited")
	default:
		if err := syncPosition(&p, s, now); err != nil {
			return nil, err
		}
	}

	minted, err := computeShares(msg.Amount, false, s.InSupply, s.Shares)
	if err != nil {
		return nil, err
	}
	s.InSupply += msg.Amount
	s.Shares += minted
	p.InBalance += msg.Amount
	p.Shares += minted

	stake := coin.NewCoin(msg.Amount, s.InTicker)
	if err := h.ctrl.MoveCoins(db, sender, StreamAccount(msg.StreamID), stake); err != nil {
		return nil, errors.Wrap(err, "cannot escrow the stake")
	}
	if _, err := h.streams.Put(db, msg.StreamID, s); err != nil {
		return nil, errors.Wrap(err, "cannot store stream")
	}
	if _, err := h.positions.Put(db, key, &p); err != nil {
		return nil, errors.Wrap(err, "cannot store position")
	}
	return &tide.DeliverResult{}, nil
}

func (h DepositHandler) validate(ctx tide.Context, db tide.KVStore, tx tide.Tx) (*DepositMsg, tide.Address, error) {
	var msg DepositMsg
	if err := tide.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	sender, err := signerAddress(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	return &msg, sender, nil
}

// WithdrawHandler releases unspent stake back to the sender, burning
// the matching share count.
type WithdrawHandler struct {
	auth      x.Authenticator
	ctrl      cash.Controller
	streams   orm.ModelBucket
	positions orm.ModelBucket
}

var _ tide.Handler = WithdrawHandler{}

func (h WithdrawHandler) Check(ctx tide.Context, db tide.KVStore, tx tide.Tx) (*tide.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &tide.CheckResult{GasAllocated: withdrawCost}, nil
}

func (h WithdrawHandler) Deliver(ctx tide.Context, db tide.KVStore, tx tide.Tx) (*tide.DeliverResult, error) {
	msg, sender, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	now, err := tide.BlockTimeUnix(ctx)
	if err != nil {
		return nil, err
	}
	s, err := loadStream(db, h.streams, msg.StreamID)
	if err != nil {
		return nil, err
	}
	if err := advanceStream(s, now); err != nil {
		return nil, err
	}
	switch s.Status {
	case StatusBootstrapping, StatusActive:
	default:
		return nil, errors.Wrapf(errors.ErrState, "cannot withdraw from a %s stream", s.Status)
	}

	key := positionKey(msg.StreamID, sender)
	var p Position
	if err := h.positions.One(db, key, &p); err != nil {
		return nil, errors.Wrap(err, "position")
	}
	if !p.ExitDate.IsZero() {
		return nil, errors.Wrap(errors.ErrState, "position already exited")
	}
	if err := syncPosition(&p, s, now); err != nil {
		return nil, err
	}

	amount := msg.Amount
	if amount == 0 {
		amount = p.InBalance
	}
	if amount == 0 {
		return nil, errors.Wrap(errors.ErrAmount, "nothing to withdraw")
	}
	if amount > p.InBalance {
		return nil, errors.Wrapf(errors.ErrAmount, "withdraw %d above balance %d", amount, p.InBalance)
	}
	var burned int64
	if amount == p.InBalance {
		burned = p.Shares
	} else {
		if burned, err = computeShares(amount, true, s.InSupply, s.Shares); err != nil {
			return nil, err
		}
		if burned > p.Shares {
			return nil, errors.Wrapf(errors.ErrHuman, "burning %d shares above position %d", burned, p.Shares)
		}
	}
	s.InSupply -= amount
	s.Shares -= burned
	p.InBalance -= amount
	p.Shares -= burned

	released := coin.NewCoin(amount, s.InTicker)
	if err := h.ctrl.MoveCoins(db, StreamAccount(msg.StreamID), sender, released); err != nil {
		return nil, errors.Wrap(err, "cannot release the stake")
	}
	if _, err := h.streams.Put(db, msg.StreamID, s); err != nil {
		return nil, errors.Wrap(err, "cannot store stream")
	}
	if _, err := h.positions.Put(db, key, &p); err != nil {
		return nil, errors.Wrap(err, "cannot store position")
	}
	return &tide.DeliverResult{Log: "released " + released.String()}, nil
}

func (h WithdrawHandler) validate(ctx tide.Context, db tide.KVStore, tx tide.Tx) (*WithdrawMsg, tide.Address, error) {
	var msg WithdrawMsg
	if err := tide.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	sender, err := signerAddress(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	return &msg, sender, nil
}

// SyncStreamHandler advances the global distribution state. Anyone can
// trigger it, the result depends only on the block time.
type SyncStreamHandler struct {
	streams orm.ModelBucket
}

var _ tide.Handler = SyncStreamHandler{}

func (h SyncStreamHandler) Check(ctx tide.Context, db tide.KVStore, tx tide.Tx) (*tide.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &tide.CheckResult{GasAllocated: syncStreamCost}, nil
}

func (h SyncStreamHandler) Deliver(ctx tide.Context, db tide.KVStore, tx tide.Tx) (*tide.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	now, err := tide.BlockTimeUnix(ctx)
	if err != nil {
		return nil, err
	}
	s, err := loadStream(db, h.streams, msg.StreamID)
	if err != nil {
		return nil, err
	}
	if err := advanceStream(s, now); err != nil {
		return nil, err
	}
	if _, err := h.streams.Put(db, msg.StreamID, s); err != nil {
		return nil, errors.Wrap(err, "cannot store stream")
	}
	return &tide.DeliverResult{}, nil
}

func (h SyncStreamHandler) validate(ctx tide.Context, db tide.KVStore, tx tide.Tx) (*SyncStreamMsg, error) {
	var msg SyncStreamMsg
	if err := tide.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return &msg, nil
}

// ExitStreamHandler settles the sender's position of an ended or
// cancelled stream, paying out the purchased tokens and refunding the
// unspent stake.
type ExitStreamHandler struct {
	auth      x.Authenticator
	ctrl      cash.Controller
	streams   orm.ModelBucket
	positions orm.ModelBucket
}

var _ tide.Handler = ExitStreamHandler{}

func (h ExitStreamHandler) Check(ctx tide.Context, db tide.KVStore, tx tide.Tx) (*tide.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &tide.CheckResult{GasAllocated: exitStreamCost}, nil
}

func (h ExitStreamHandler) Deliver(ctx tide.Context, db tide.KVStore, tx tide.Tx) (*tide.DeliverResult, error) {
	msg, sender, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	now, err := tide.BlockTimeUnix(ctx)
	if err != nil {
		return nil, err
	}
	s, err := loadStream(db, h.streams, msg.StreamID)
	if err != nil {
		return nil, err
	}
	if err := advanceStream(s, now); err != nil {
		return nil, err
	}
	switch s.Status {
	case StatusEnded, StatusCancelled, StatusFinalizedStreamed, StatusFinalizedRefunded:
	default:
		return nil, errors.Wrapf(errors.ErrState, "cannot exit a %s stream", s.Status)
	}

	key := positionKey(msg.StreamID, sender)
	var p Position
	if err := h.positions.One(db, key, &p); err != nil {
		return nil, errors.Wrap(err, "position")
	}
	if !p.ExitDate.IsZero() {
		return nil, errors.Wrap(errors.ErrState, "position already exited")
	}
	if err := syncPosition(&p, s, now); err != nil {
		return nil, err
	}

	refund := p.InBalance
	payout := p.Purchased
	s.InSupply -= refund
	s.Shares -= p.Shares
	p.InBalance = 0
	p.Shares = 0
	p.ExitDate = now

	escrow := StreamAccount(msg.StreamID)
	if refund > 0 {
		c := coin.NewCoin(refund, s.InTicker)
		if err := h.ctrl.MoveCoins(db, escrow, sender, c); err != nil {
			return nil, errors.Wrap(err, "cannot refund the stake")
		}
	}
	if payout > 0 {
		c := coin.NewCoin(payout, s.OutTicker)
		if err := h.ctrl.MoveCoins(db, escrow, sender, c); err != nil {
			return nil, errors.Wrap(err, "cannot pay out")
		}
	}
	if _, err := h.streams.Put(db, msg.StreamID, s); err != nil {
		return nil, errors.Wrap(err, "cannot store stream")
	}
	if _, err := h.positions.Put(db, key, &p); err != nil {
		return nil, errors.Wrap(err, "cannot store position")
	}
	return &tide.DeliverResult{}, nil
}

func (h ExitStreamHandler) validate(ctx tide.Context, db tide.KVStore, tx tide.Tx) (*ExitStreamMsg, tide.Address, error) {
	var msg ExitStreamMsg
	if err := tide.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	sender, err := signerAddress(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	return &msg, sender, nil
}

// FinalizeStreamHandler closes an ended stream. The spent input minus
// the exit fee goes to the treasury, the fee to the collector, any
// undistributed remainder of the pot back to the treasury.
type FinalizeStreamHandler struct {
	auth    x.Authenticator
	ctrl    cash.Controller
	streams orm.ModelBucket
}

var _ tide.Handler = FinalizeStreamHandler{}

func (h FinalizeStreamHandler) Check(ctx tide.Context, db tide.KVStore, tx tide.Tx) (*tide.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &tide.CheckResult{GasAllocated: finalizeStreamCost}, nil
}

func (h FinalizeStreamHandler) Deliver(ctx tide.Context, db tide.KVStore, tx tide.Tx) (*tide.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	now, err := tide.BlockTimeUnix(ctx)
	if err != nil {
		return nil, err
	}
	s, err := loadStream(db, h.streams, msg.StreamID)
	if err != nil {
		return nil, err
	}
	if err := advanceStream(s, now); err != nil {
		return nil, err
	}
	if s.Status != StatusEnded {
		return nil, errors.Wrapf(errors.ErrState, "cannot finalize a %s stream", s.Status)
	}
	if !h.auth.HasAddress(ctx, s.Creator) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "creator must sign")
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}

	escrow := StreamAccount(msg.StreamID)
	if s.SpentIn == 0 && s.DistIndex.IsZero() {
		// Nothing was ever distributed, return the whole pot.
		if s.OutRemaining > 0 {
			c := coin.NewCoin(s.OutRemaining, s.OutTicker)
			if err := h.ctrl.MoveCoins(db, escrow, s.Treasury, c); err != nil {
				return nil, errors.Wrap(err, "cannot refund the pot")
			}
		}
		s.Status = StatusFinalizedRefunded
	} else {
		net, fee, err := settleExit(s.SpentIn, conf.ExitFeeRatio)
		if err != nil {
			return nil, err
		}
		if fee > 0 {
			c := coin.NewCoin(fee, s.InTicker)
			if err := h.ctrl.MoveCoins(db, escrow, conf.FeeCollector, c); err != nil {
				return nil, errors.Wrap(err, "cannot collect the fee")
			}
		}
		if net > 0 {
			c := coin.NewCoin(net, s.InTicker)
			if err := h.ctrl.MoveCoins(db, escrow, s.Treasury, c); err != nil {
				return nil, errors.Wrap(err, "cannot pay the treasury")
			}
		}
		if s.OutRemaining > 0 {
			c := coin.NewCoin(s.OutRemaining, s.OutTicker)
			if err := h.ctrl.MoveCoins(db, escrow, s.Treasury, c); err != nil {
				return nil, errors.Wrap(err, "cannot return the remainder")
			}
		}
		s.Status = StatusFinalizedStreamed
	}
	if _, err := h.streams.Put(db, msg.StreamID, s); err != nil {
		return nil, errors.Wrap(err, "cannot store stream")
	}
	tide.GetLogger(ctx).Info("stream finalized",
		"id", orm.DecodeSequence(msg.StreamID),
		"status", s.Status.String(),
		"spent", s.SpentIn)
	return &tide.DeliverResult{Log: "finalized as " + s.Status.String()}, nil
}

func (h FinalizeStreamHandler) validate(ctx tide.Context, db tide.KVStore, tx tide.Tx) (*FinalizeStreamMsg, error) {
	var msg FinalizeStreamMsg
	if err := tide.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return &msg, nil
}

// CancelStreamHandler stops a stream before it goes active. The pot
// returns to the treasury and participants can exit their stake without
// a fee.
type CancelStreamHandler struct {
	auth    x.Authenticator
	ctrl    cash.Controller
	streams orm.ModelBucket
}

var _ tide.Handler = CancelStreamHandler{}

func (h CancelStreamHandler) Check(ctx tide.Context, db tide.KVStore, tx tide.Tx) (*tide.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &tide.CheckResult{GasAllocated: cancelStreamCost}, nil
}

func (h CancelStreamHandler) Deliver(ctx tide.Context, db tide.KVStore, tx tide.Tx) (*tide.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	now, err := tide.BlockTimeUnix(ctx)
	if err != nil {
		return nil, err
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	if !h.auth.HasAddress(ctx, conf.Admin) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "admin must sign")
	}
	s, err := loadStream(db, h.streams, msg.StreamID)
	if err != nil {
		return nil, err
	}
	if err := advanceStream(s, now); err != nil {
		return nil, err
	}
	switch s.Status {
	case StatusWaiting, StatusBootstrapping:
	default:
		return nil, errors.Wrapf(errors.ErrState, "cannot cancel a %s stream", s.Status)
	}

	if s.OutRemaining > 0 {
		c := coin.NewCoin(s.OutRemaining, s.OutTicker)
		if err := h.ctrl.MoveCoins(db, StreamAccount(msg.StreamID), s.Treasury, c); err != nil {
			return nil, errors.Wrap(err, "cannot refund the pot")
		}
	}
	s.Status = StatusCancelled
	if _, err := h.streams.Put(db, msg.StreamID, s); err != nil {
		return nil, errors.Wrap(err, "cannot store stream")
	}
	tide.GetLogger(ctx).Info("stream cancelled",
		"id", orm.DecodeSequence(msg.StreamID))
	return &tide.DeliverResult{}, nil
}

func (h CancelStreamHandler) validate(ctx tide.Context, db tide.KVStore, tx tide.Tx) (*CancelStreamMsg, error) {
	var msg CancelStreamMsg
	if err := tide.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return &msg, nil
}
