// Package coin provides the token amount primitive. An amount is an
// integer number of the token's smallest indivisible units together
// with the ticker naming the token. How many of those units make a
// human-readable whole token is recorded in the x/token registry and is
// of no concern for the arithmetic here.
package coin

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/iov-one/tide/errors"
)

// IsCC is the RegExp to ensure valid currency codes.
var IsCC = regexp.MustCompile(`^[A-Z]{3,5}$`).MatchString

// MaxAmount is the largest amount of base units we accept.
const MaxAmount int64 = 1<<62 - 1

// Coin is an amount of base units of a single token.
type Coin struct {
	Ticker string
	Amount int64
}

// NewCoin creates a new coin object.
func NewCoin(amount int64, ticker string) Coin {
	return Coin{
		Ticker: ticker,
		Amount: amount,
	}
}

// Add combines two coins of the same token. Returns an error if the
// tickers differ or the result is out of range.
func (c Coin) Add(o Coin) (Coin, error) {
	// A zero coin without a ticker has no influence on the result.
	if c.Ticker == "" && c.IsZero() {
		return o, nil
	}
	if o.Ticker == "" && o.IsZero() {
		return c, nil
	}
	if !c.SameType(o) {
		return Coin{}, errors.Wrapf(errors.ErrAmount, "adding %s to %s", o.Ticker, c.Ticker)
	}
	sum := c.Amount + o.Amount
	// Both summands are within range, so only same-sign overflows.
	if (o.Amount > 0 && sum < c.Amount) || (o.Amount < 0 && sum > c.Amount) {
		return Coin{}, errors.Wrap(errors.ErrOverflow, c.Ticker)
	}
	if sum > MaxAmount || sum < -MaxAmount {
		return Coin{}, errors.Wrap(errors.ErrOverflow, c.Ticker)
	}
	return Coin{Ticker: c.Ticker, Amount: sum}, nil
}

// Negative returns the opposite coin value.
//   c.Add(c.Negative()).IsZero() == true
func (c Coin) Negative() Coin {
	return Coin{Ticker: c.Ticker, Amount: -c.Amount}
}

// Subtract given amount.
func (c Coin) Subtract(o Coin) (Coin, error) {
	return c.Add(o.Negative())
}

// Compare returns 1 if c is larger, -1 if o is larger, 0 if equal. It
// does not inspect the tickers, that is up to the caller.
func (c Coin) Compare(o Coin) int {
	switch {
	case c.Amount > o.Amount:
		return 1
	case c.Amount < o.Amount:
		return -1
	default:
		return 0
	}
}

// Equals returns true if all fields are identical.
func (c Coin) Equals(o Coin) bool {
	return c.Ticker == o.Ticker && c.Amount == o.Amount
}

// IsZero returns true when the amount is 0.
func (c Coin) IsZero() bool {
	return c.Amount == 0
}

// IsPositive returns true if the amount is greater than 0.
func (c Coin) IsPositive() bool {
	return c.Amount > 0
}

// IsNonNegative returns true if the amount is 0 or higher.
func (c Coin) IsNonNegative() bool {
	return c.Amount >= 0
}

// IsGTE returns true if c is the same token and at least as large as o.
func (c Coin) IsGTE(o Coin) bool {
	return c.SameType(o) && c.Amount >= o.Amount
}

// SameType returns true if both coins name the same token.
func (c Coin) SameType(o Coin) bool {
	return c.Ticker == o.Ticker
}

// Validate ensures the coin is in the valid range with a valid currency
// code. It accepts negative amounts, so you may want to combine it with
// IsNonNegative in your business logic.
func (c Coin) Validate() error {
	var err error
	if !IsCC(c.Ticker) {
		err = errors.Append(err, errors.Wrapf(errors.ErrAmount, "invalid currency: %s", c.Ticker))
	}
	if c.Amount > MaxAmount || c.Amount < -MaxAmount {
		err = errors.Append(err, errors.Wrap(errors.ErrOverflow, "amount"))
	}
	return err
}

// String provides a human readable representation of the coin, mostly
// for testing and debugging.
func (c Coin) String() string {
	if c.Ticker == "" {
		return strconv.FormatInt(c.Amount, 10)
	}
	return fmt.Sprintf("%d %s", c.Amount, c.Ticker)
}
