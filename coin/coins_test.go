package coin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iov-one/tide/errors"
)

func TestCoinsAdd(t *testing.T) {
	var cs Coins

	cs, err := cs.Add(NewCoin(100, "ATM"))
	require.NoError(t, err)
	cs, err = cs.Add(NewCoin(50, "OSM"))
	require.NoError(t, err)
	cs, err = cs.Add(NewCoin(25, "ATM"))
	require.NoError(t, err)

	assert.Equal(t, Coins{NewCoin(125, "ATM"), NewCoin(50, "OSM")}, cs)
	assert.NoError(t, cs.Validate())
}

func TestCoinsNoDebt(t *testing.T) {
	cs := Coins{NewCoin(100, "ATM")}

	// Charging more than held must fail, an account cannot go into
	// debt.
	_, err := cs.Subtract(NewCoin(101, "ATM"))
	assert.True(t, errors.ErrAmount.Is(err))

	// Charging an unknown token is charging a zero balance.
	_, err = cs.Subtract(NewCoin(1, "OSM"))
	assert.True(t, errors.ErrAmount.Is(err))

	// The full balance can be withdrawn and the entry is dropped.
	got, err := cs.Subtract(NewCoin(100, "ATM"))
	require.NoError(t, err)
	assert.Len(t, got, 0)
}

func TestCoinsAddIsNonDestructive(t *testing.T) {
	cs := Coins{NewCoin(100, "ATM")}
	_, err := cs.Add(NewCoin(11, "ATM"))
	require.NoError(t, err)
	assert.Equal(t, Coins{NewCoin(100, "ATM")}, cs)
}

func TestCoinsGetAndContains(t *testing.T) {
	cs := Coins{NewCoin(100, "ATM"), NewCoin(50, "OSM")}

	assert.Equal(t, NewCoin(50, "OSM"), cs.Get("OSM"))
	assert.Equal(t, NewCoin(0, "DOGE"), cs.Get("DOGE"))

	assert.True(t, cs.Contains(NewCoin(100, "ATM")))
	assert.False(t, cs.Contains(NewCoin(101, "ATM")))
	assert.False(t, cs.Contains(NewCoin(1, "DOGE")))
}

func TestCoinsValidate(t *testing.T) {
	cases := map[string]struct {
		coins   Coins
		wantErr *errors.Error
	}{
		"nil set":      {coins: nil},
		"sorted":       {coins: Coins{NewCoin(1, "ATM"), NewCoin(1, "OSM")}},
		"out of order": {coins: Coins{NewCoin(1, "OSM"), NewCoin(1, "ATM")}, wantErr: errors.ErrState},
		"duplicate":    {coins: Coins{NewCoin(1, "ATM"), NewCoin(1, "ATM")}, wantErr: errors.ErrState},
		"zero amount":  {coins: Coins{NewCoin(0, "ATM")}, wantErr: errors.ErrAmount},
		"bad ticker":   {coins: Coins{NewCoin(1, "x")}, wantErr: errors.ErrAmount},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.coins.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.True(t, tc.wantErr.Is(err))
			}
		})
	}
}
