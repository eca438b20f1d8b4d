package stream

import (
	tide "github.com/iov-one/tide"
	"github.com/iov-one/tide/coin"
	"github.com/iov-one/tide/errors"
	"github.com/iov-one/tide/orm"
)

var _ orm.Model = (*Stream)(nil)

func (s *Stream) Validate() error {
	var err error
	if e := s.Creator.Validate(); e != nil {
		err = errors.Append(err, errors.Wrap(e, "creator"))
	}
	if e := s.Treasury.Validate(); e != nil {
		err = errors.Append(err, errors.Wrap(e, "treasury"))
	}
	if !coin.IsCC(s.InTicker) {
		err = errors.Append(err, errors.Wrapf(errors.ErrState, "invalid in ticker %q", s.InTicker))
	}
	if !coin.IsCC(s.OutTicker) {
		err = errors.Append(err, errors.Wrapf(errors.ErrState, "invalid out ticker %q", s.OutTicker))
	}
	if s.InTicker == s.OutTicker {
		err = errors.Append(err, errors.Wrap(errors.ErrState, "in and out ticker must differ"))
	}
	if s.OutAmount <= 0 || s.OutAmount > coin.MaxAmount {
		err = errors.Append(err, errors.Wrapf(errors.ErrState, "out amount %d out of range", s.OutAmount))
	}
	if !(s.BootstrapStart <= s.StreamStart && s.StreamStart <= s.StreamEnd) {
		err = errors.Append(err, errors.Wrap(errors.ErrState, "milestones out of order"))
	}
	if s.Status == StatusInvalid || s.Status > StatusCancelled {
		err = errors.Append(err, errors.Wrapf(errors.ErrState, "invalid status %d", s.Status))
	}
	if s.OutRemaining < 0 || s.OutRemaining > s.OutAmount {
		err = errors.Append(err, errors.Wrapf(errors.ErrState, "out remaining %d out of range", s.OutRemaining))
	}
	if s.InSupply < 0 {
		err = errors.Append(err, errors.Wrapf(errors.ErrState, "negative in supply %d", s.InSupply))
	}
	if s.Shares < 0 {
		err = errors.Append(err, errors.Wrapf(errors.ErrState, "negative shares %d", s.Shares))
	}
	if s.SpentIn < 0 {
		err = errors.Append(err, errors.Wrapf(errors.ErrState, "negative spent in %d", s.SpentIn))
	}
	return err
}

var _ orm.Model = (*Position)(nil)

func (p *Position) Validate() error {
	var err error
	if e := p.Owner.Validate(); e != nil {
		err = errors.Append(err, errors.Wrap(e, "owner"))
	}
	if p.InBalance < 0 {
		err = errors.Append(err, errors.Wrapf(errors.ErrState, "negative balance %d", p.InBalance))
	}
	if p.Shares < 0 {
		err = errors.Append(err, errors.Wrapf(errors.ErrState, "negative shares %d", p.Shares))
	}
	if p.SpentIn < 0 {
		err = errors.Append(err, errors.Wrapf(errors.ErrState, "negative spent in %d", p.SpentIn))
	}
	if p.Purchased < 0 {
		err = errors.Append(err, errors.Wrapf(errors.ErrState, "negative purchased %d", p.Purchased))
	}
	return err
}

// NewStreamBucket returns a bucket for streams, keyed by an
// auto-incremented 8 byte ID.
func NewStreamBucket() orm.ModelBucket {
	return orm.NewModelBucket("stream",
		orm.WithIDSequence(orm.NewSequence("stream", "id")))
}

// NewPositionBucket returns a bucket for positions, keyed by stream ID
// and owner address.
func NewPositionBucket() orm.ModelBucket {
	return orm.NewModelBucket("position")
}

func positionKey(streamID []byte, owner tide.Address) []byte {
	key := make([]byte, 0, len(streamID)+len(owner))
	key = append(key, streamID...)
	return append(key, owner...)
}

// StreamCondition returns the condition controlling the escrow account
// of given stream.
func StreamCondition(streamID []byte) tide.Condition {
	return tide.NewCondition("stream", "seq", streamID)
}

// StreamAccount returns the escrow address holding the pot and the
// staked deposits of given stream.
func StreamAccount(streamID []byte) tide.Address {
	return StreamCondition(streamID).Address()
}
