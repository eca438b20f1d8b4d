package token

import (
	tide "github.com/iov-one/tide"
	"github.com/iov-one/tide/coin"
	"github.com/iov-one/tide/errors"
)

// Initializer fulfils the Initializer interface to load data from the
// genesis file.
type Initializer struct{}

var _ tide.Initializer = Initializer{}

// FromGenesis will parse initial token info from genesis and save it
// to the database.
func (Initializer) FromGenesis(opts tide.Options, db tide.KVStore) error {
	var tokens []struct {
		Ticker   string `json:"ticker"`
		Name     string `json:"name"`
		Decimals uint32 `json:"decimals"`
	}
	if err := opts.ReadOptions("tokens", &tokens); err != nil {
		return errors.Wrap(err, "cannot load tokens")
	}
	bucket := NewInfoBucket()
	for i, t := range tokens {
		if !coin.IsCC(t.Ticker) {
			return errors.Wrapf(errors.ErrInput, "token #%d has invalid ticker %q", i, t.Ticker)
		}
		info := Info{Name: t.Name, Decimals: t.Decimals}
		if err := info.Validate(); err != nil {
			return errors.Wrapf(err, "token #%d is invalid", i)
		}
		if _, err := bucket.Put(db, []byte(t.Ticker), &info); err != nil {
			return errors.Wrapf(err, "cannot store token #%d", i)
		}
	}
	return nil
}
