package stream

import (
	tide "github.com/iov-one/tide"
	"github.com/iov-one/tide/decimal"
	"github.com/iov-one/tide/errors"
	"github.com/iov-one/tide/gconf"
)

var _ gconf.Configuration = (*Configuration)(nil)

func (c *Configuration) Validate() error {
	var err error
	if e := c.Admin.Validate(); e != nil {
		err = errors.Append(err, errors.Wrap(e, "admin"))
	}
	if e := c.FeeCollector.Validate(); e != nil {
		err = errors.Append(err, errors.Wrap(e, "fee collector"))
	}
	one := decimal.FromUnits(decimal.Unit)
	if c.ExitFeeRatio.Compare(one) > 0 {
		err = errors.Append(err, errors.Wrapf(errors.ErrState, "exit fee ratio %s above one", c.ExitFeeRatio))
	}
	if c.MinWaitDuration < 0 {
		err = errors.Append(err, errors.Wrap(errors.ErrState, "negative wait duration"))
	}
	if c.MinBootstrapDuration < 0 {
		err = errors.Append(err, errors.Wrap(errors.ErrState, "negative bootstrap duration"))
	}
	if c.MinStreamDuration <= 0 {
		err = errors.Append(err, errors.Wrap(errors.ErrState, "non-positive stream duration"))
	}
	return err
}

func loadConf(db tide.ReadOnlyKVStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, "stream", &conf); err != nil {
		return nil, errors.Wrap(err, "load configuration")
	}
	return &conf, nil
}
