package token

import (
	"github.com/iov-one/tide/coin"
	"github.com/iov-one/tide/errors"
)

const pathRegisterTokenMsg = "token/register"

// Path fulfills the tide.Msg interface to allow routing.
func (RegisterTokenMsg) Path() string {
	return pathRegisterTokenMsg
}

// Validate makes sure that this is sensible.
func (m *RegisterTokenMsg) Validate() error {
	var err error
	if !coin.IsCC(m.Ticker) {
		err = errors.Append(err, errors.Wrapf(errors.ErrAmount, "invalid currency: %s", m.Ticker))
	}
	info := Info{Name: m.Name, Decimals: m.Decimals}
	return errors.Append(err, info.Validate())
}
