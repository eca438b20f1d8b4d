package cash

import (
	tide "github.com/iov-one/tide"
	"github.com/iov-one/tide/coin"
	"github.com/iov-one/tide/errors"
	"github.com/iov-one/tide/orm"
)

var _ orm.Model = (*Set)(nil)

// Validate requires that all coins are positive and sorted.
func (s *Set) Validate() error {
	return s.Coins.Validate()
}

// NewWalletBucket returns a bucket for keeping wallets, keyed by the
// owner address.
func NewWalletBucket() orm.ModelBucket {
	return orm.NewModelBucket("cash")
}

// WalletCoins returns the coins stored in the wallet of given address.
// A missing wallet is reported as an empty one.
func WalletCoins(db tide.ReadOnlyKVStore, bucket orm.ModelBucket, addr tide.Address) (coin.Coins, error) {
	var set Set
	switch err := bucket.One(db, addr, &set); {
	case err == nil:
		return set.Coins, nil
	case errors.ErrNotFound.Is(err):
		return nil, nil
	default:
		return nil, errors.Wrap(err, "cannot load wallet")
	}
}
