package stream

import (
	"github.com/iov-one/tide/coin"
	"github.com/iov-one/tide/errors"
)

const (
	pathCreateStreamMsg   = "stream/create"
	pathDepositMsg        = "stream/deposit"
	pathWithdrawMsg       = "stream/withdraw"
	pathSyncStreamMsg     = "stream/sync"
	pathExitStreamMsg     = "stream/exit"
	pathFinalizeStreamMsg = "stream/finalize"
	pathCancelStreamMsg   = "stream/cancel"
)

// streamIDLength is the size of a sequence generated primary key.
const streamIDLength = 8

func validateStreamID(id []byte) error {
	if len(id) == 0 {
		return errors.Wrap(errors.ErrEmpty, "stream id")
	}
	if len(id) != streamIDLength {
		return errors.Wrapf(errors.ErrInput, "stream id must be %d bytes", streamIDLength)
	}
	return nil
}

func (CreateStreamMsg) Path() string {
	return pathCreateStreamMsg
}

func (m *CreateStreamMsg) Validate() error {
	var err error
	if e := m.Creator.Validate(); e != nil {
		err = errors.Append(err, errors.Wrap(e, "creator"))
	}
	if e := m.Treasury.Validate(); e != nil {
		err = errors.Append(err, errors.Wrap(e, "treasury"))
	}
	if !coin.IsCC(m.InTicker) {
		err = errors.Append(err, errors.Wrapf(errors.ErrInput, "invalid in ticker %q", m.InTicker))
	}
	if !coin.IsCC(m.OutTicker) {
		err = errors.Append(err, errors.Wrapf(errors.ErrInput, "invalid out ticker %q", m.OutTicker))
	}
	if m.InTicker == m.OutTicker {
		err = errors.Append(err, errors.Wrap(errors.ErrInput, "in and out ticker must differ"))
	}
	if m.OutAmount <= 0 || m.OutAmount > coin.MaxAmount {
		err = errors.Append(err, errors.Wrapf(errors.ErrAmount, "out amount %d out of range", m.OutAmount))
	}
	if !(m.BootstrapStart <= m.StreamStart && m.StreamStart <= m.StreamEnd) {
		err = errors.Append(err, errors.Wrap(errors.ErrInput, "milestones out of order"))
	}
	return err
}

func (DepositMsg) Path() string {
	return pathDepositMsg
}

func (m *DepositMsg) Validate() error {
	var err error
	if e := validateStreamID(m.StreamID); e != nil {
		err = errors.Append(err, e)
	}
	if m.Amount <= 0 || m.Amount > coin.MaxAmount {
		err = errors.Append(err, errors.Wrapf(errors.ErrAmount, "amount %d out of range", m.Amount))
	}
	return err
}

func (WithdrawMsg) Path() string {
	return pathWithdrawMsg
}

func (m *WithdrawMsg) Validate() error {
	var err error
	if e := validateStreamID(m.StreamID); e != nil {
		err = errors.Append(err, e)
	}
	// A zero amount means withdraw everything.
	if m.Amount < 0 || m.Amount > coin.MaxAmount {
		err = errors.Append(err, errors.Wrapf(errors.ErrAmount, "amount %d out of range", m.Amount))
	}
	return err
}

func (SyncStreamMsg) Path() string {
	return pathSyncStreamMsg
}

func (m *SyncStreamMsg) Validate() error {
	return validateStreamID(m.StreamID)
}

func (ExitStreamMsg) Path() string {
	return pathExitStreamMsg
}

func (m *ExitStreamMsg) Validate() error {
	return validateStreamID(m.StreamID)
}

func (FinalizeStreamMsg) Path() string {
	return pathFinalizeStreamMsg
}

func (m *FinalizeStreamMsg) Validate() error {
	return validateStreamID(m.StreamID)
}

func (CancelStreamMsg) Path() string {
	return pathCancelStreamMsg
}

func (m *CancelStreamMsg) Validate() error {
	return validateStreamID(m.StreamID)
}
