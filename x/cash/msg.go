package cash

import (
	"github.com/iov-one/tide/errors"
)

const (
	pathSendMsg = "cash/send"

	maxMemoSize = 128
)

// Path fulfills the tide.Msg interface to allow routing.
func (SendMsg) Path() string {
	return pathSendMsg
}

// Validate makes sure that this is sensible.
func (m *SendMsg) Validate() error {
	var err error
	if !m.Amount.IsPositive() {
		err = errors.Append(err, errors.Wrapf(errors.ErrAmount, "non-positive send: %s", m.Amount))
	} else {
		err = errors.Append(err, errors.Wrap(m.Amount.Validate(), "amount"))
	}
	err = errors.Append(err, errors.Wrap(m.Src.Validate(), "src"))
	err = errors.Append(err, errors.Wrap(m.Dest.Validate(), "dest"))
	if len(m.Memo) > maxMemoSize {
		err = errors.Append(err, errors.Wrap(errors.ErrState, "memo too long"))
	}
	return err
}
