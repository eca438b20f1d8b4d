package token

import (
	"regexp"

	tide "github.com/iov-one/tide"
	"github.com/iov-one/tide/coin"
	"github.com/iov-one/tide/errors"
	"github.com/iov-one/tide/orm"
)

var isTokenName = regexp.MustCompile(`^[A-Za-z0-9 \-_:]{3,32}$`).MatchString

// maxDecimals bounds the number of fractional digits. 18 is the
// normalization scale used by x/stream, tokens with a finer base unit
// could not be normalized without losing precision.
const maxDecimals = 18

var _ orm.Model = (*Info)(nil)

func (i *Info) Validate() error {
	var err error
	if !isTokenName(i.Name) {
		err = errors.Append(err, errors.Wrapf(errors.ErrState, "invalid token name %q", i.Name))
	}
	if i.Decimals > maxDecimals {
		err = errors.Append(err, errors.Wrapf(errors.ErrState, "decimals %d out of range", i.Decimals))
	}
	return err
}

// NewInfoBucket stores Info instances, using the ticker (currency
// symbol) as the key.
func NewInfoBucket() orm.ModelBucket {
	return orm.NewModelBucket("tokeninfo")
}

// LoadInfo returns the registered token information for given ticker.
func LoadInfo(db tide.ReadOnlyKVStore, ticker string) (*Info, error) {
	if !coin.IsCC(ticker) {
		return nil, errors.Wrapf(errors.ErrAmount, "invalid currency: %s", ticker)
	}
	var info Info
	if err := NewInfoBucket().One(db, []byte(ticker), &info); err != nil {
		return nil, errors.Wrapf(err, "token %q", ticker)
	}
	return &info, nil
}
