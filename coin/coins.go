package coin

import (
	"sort"
	"strings"

	"github.com/iov-one/tide/errors"
)

// Coins is a set of coins, one per token, sorted by ticker. The nil
// value is a valid empty set.
type Coins []Coin

// Get returns the amount held for given ticker. A token that is not
// present is reported as a zero amount.
func (cs Coins) Get(ticker string) Coin {
	for _, c := range cs {
		if c.Ticker == ticker {
			return c
		}
	}
	return Coin{Ticker: ticker}
}

// Add returns a new set with given coin combined in. Adding a negative
// amount that would take the held amount below zero fails, wallets
// cannot go into debt.
func (cs Coins) Add(c Coin) (Coins, error) {
	if c.IsZero() {
		return cs, nil
	}
	res := make(Coins, 0, len(cs)+1)
	combined := false
	for _, held := range cs {
		if !held.SameType(c) {
			res = append(res, held)
			continue
		}
		sum, err := held.Add(c)
		if err != nil {
			return nil, err
		}
		if sum.Amount < 0 {
			return nil, errors.Wrapf(errors.ErrAmount, "insufficient %s", c.Ticker)
		}
		if !sum.IsZero() {
			res = append(res, sum)
		}
		combined = true
	}
	if !combined {
		if c.Amount < 0 {
			return nil, errors.Wrapf(errors.ErrAmount, "insufficient %s", c.Ticker)
		}
		res = append(res, c)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Ticker < res[j].Ticker })
	return res, nil
}

// Subtract returns a new set with given coin removed. Fails if the held
// amount is insufficient.
func (cs Coins) Subtract(c Coin) (Coins, error) {
	return cs.Add(c.Negative())
}

// Contains returns true if there is at least given amount of the token
// in the set.
func (cs Coins) Contains(c Coin) bool {
	return cs.Get(c.Ticker).IsGTE(c)
}

// IsPositive returns true if at least one token is held.
func (cs Coins) IsPositive() bool {
	for _, c := range cs {
		if c.IsPositive() {
			return true
		}
	}
	return false
}

// Clone returns an independent copy of the set.
func (cs Coins) Clone() Coins {
	if cs == nil {
		return nil
	}
	res := make(Coins, len(cs))
	copy(res, cs)
	return res
}

// Validate requires that all coins are positive amounts of distinct
// valid tokens, sorted by ticker.
func (cs Coins) Validate() error {
	last := ""
	for _, c := range cs {
		if err := c.Validate(); err != nil {
			return err
		}
		if !c.IsPositive() {
			return errors.Wrapf(errors.ErrAmount, "non-positive %s", c.Ticker)
		}
		if c.Ticker <= last {
			return errors.Wrap(errors.ErrState, "tickers out of order")
		}
		last = c.Ticker
	}
	return nil
}

// String provides a human readable representation of the set.
func (cs Coins) String() string {
	if len(cs) == 0 {
		return "(empty)"
	}
	chunks := make([]string, len(cs))
	for i, c := range cs {
		chunks[i] = c.String()
	}
	return strings.Join(chunks, ", ")
}
