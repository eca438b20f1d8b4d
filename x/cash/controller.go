package cash

import (
	tide "github.com/iov-one/tide"
	"github.com/iov-one/tide/coin"
	"github.com/iov-one/tide/errors"
	"github.com/iov-one/tide/orm"
)

// Controller is the functionality needed by other extensions to move
// tokens without touching the wallet bucket directly.
type Controller interface {
	// Balance returns the coins held by given address.
	Balance(db tide.ReadOnlyKVStore, addr tide.Address) (coin.Coins, error)
	// MoveCoins transfers the amount from source to destination wallet.
	MoveCoins(db tide.KVStore, src, dest tide.Address, amount coin.Coin) error
	// IssueCoins creates the amount out of thin air in the destination
	// wallet. Intended for genesis and tests.
	IssueCoins(db tide.KVStore, dest tide.Address, amount coin.Coin) error
}

// CashController implements Controller on top of the wallet bucket.
type CashController struct {
	bucket orm.ModelBucket
}

var _ Controller = CashController{}

// NewController returns a controller using the default wallet bucket.
func NewController() CashController {
	return CashController{bucket: NewWalletBucket()}
}

// Balance returns the coins held by given address.
func (c CashController) Balance(db tide.ReadOnlyKVStore, addr tide.Address) (coin.Coins, error) {
	return WalletCoins(db, c.bucket, addr)
}

// MoveCoins moves the given amount from src to dest. If src doesn't
// hold sufficient coins, it fails.
func (c CashController) MoveCoins(db tide.KVStore, src, dest tide.Address, amount coin.Coin) error {
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive transfer: %s", amount)
	}

	srcCoins, err := WalletCoins(db, c.bucket, src)
	if err != nil {
		return err
	}
	if !srcCoins.Contains(amount) {
		return errors.Wrapf(errors.ErrAmount, "insufficient funds: %s holds %s", src, srcCoins)
	}
	srcCoins, err = srcCoins.Subtract(amount)
	if err != nil {
		return err
	}
	if _, err := c.bucket.Put(db, src, &Set{Coins: srcCoins}); err != nil {
		return errors.Wrap(err, "cannot store source wallet")
	}

	destCoins, err := WalletCoins(db, c.bucket, dest)
	if err != nil {
		return err
	}
	destCoins, err = destCoins.Add(amount)
	if err != nil {
		return err
	}
	if _, err := c.bucket.Put(db, dest, &Set{Coins: destCoins}); err != nil {
		return errors.Wrap(err, "cannot store destination wallet")
	}
	return nil
}

// IssueCoins attempts to add the given amount of coins to the
// destination address.
func (c CashController) IssueCoins(db tide.KVStore, dest tide.Address, amount coin.Coin) error {
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive issue: %s", amount)
	}
	coins, err := WalletCoins(db, c.bucket, dest)
	if err != nil {
		return err
	}
	coins, err = coins.Add(amount)
	if err != nil {
		return err
	}
	_, err = c.bucket.Put(db, dest, &Set{Coins: coins})
	return errors.Wrap(err, "cannot store wallet")
}
