package coin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iov-one/tide/errors"
)

func TestCoinAdd(t *testing.T) {
	cases := map[string]struct {
		a, b    Coin
		want    Coin
		wantErr *errors.Error
	}{
		"same ticker": {
			a:    NewCoin(100, "ATM"),
			b:    NewCoin(25, "ATM"),
			want: NewCoin(125, "ATM"),
		},
		"negative amount": {
			a:    NewCoin(100, "ATM"),
			b:    NewCoin(-40, "ATM"),
			want: NewCoin(60, "ATM"),
		},
		"zero coin without ticker": {
			a:    NewCoin(100, "ATM"),
			b:    Coin{},
			want: NewCoin(100, "ATM"),
		},
		"ticker mismatch": {
			a:       NewCoin(1, "ATM"),
			b:       NewCoin(1, "OSM"),
			wantErr: errors.ErrAmount,
		},
		"out of range": {
			a:       NewCoin(MaxAmount, "ATM"),
			b:       NewCoin(1, "ATM"),
			wantErr: errors.ErrOverflow,
		},
		"negative out of range": {
			a:       NewCoin(-MaxAmount, "ATM"),
			b:       NewCoin(-1, "ATM"),
			wantErr: errors.ErrOverflow,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := tc.a.Add(tc.b)
			if tc.wantErr != nil {
				assert.True(t, tc.wantErr.Is(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCoinSubtract(t *testing.T) {
	got, err := NewCoin(100, "ATM").Subtract(NewCoin(30, "ATM"))
	require.NoError(t, err)
	assert.Equal(t, NewCoin(70, "ATM"), got)

	// Plain coins may go negative. Accounts cannot, see Coins.
	got, err = NewCoin(10, "ATM").Subtract(NewCoin(30, "ATM"))
	require.NoError(t, err)
	assert.Equal(t, NewCoin(-20, "ATM"), got)
}

func TestCoinValidate(t *testing.T) {
	cases := map[string]struct {
		coin    Coin
		wantErr *errors.Error
	}{
		"valid":           {coin: NewCoin(100, "ATM")},
		"valid negative":  {coin: NewCoin(-100, "ATM")},
		"no ticker":       {coin: NewCoin(100, ""), wantErr: errors.ErrAmount},
		"lowercase":       {coin: NewCoin(100, "atm"), wantErr: errors.ErrAmount},
		"too long ticker": {coin: NewCoin(100, "ABCDEF"), wantErr: errors.ErrAmount},
		"above max":       {coin: NewCoin(MaxAmount+1, "ATM"), wantErr: errors.ErrOverflow},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.coin.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.True(t, tc.wantErr.Is(err))
			}
		})
	}
}

func TestCoinCompare(t *testing.T) {
	assert.Equal(t, 1, NewCoin(2, "ATM").Compare(NewCoin(1, "ATM")))
	assert.Equal(t, -1, NewCoin(1, "ATM").Compare(NewCoin(2, "ATM")))
	assert.Equal(t, 0, NewCoin(1, "ATM").Compare(NewCoin(1, "ATM")))
	assert.True(t, NewCoin(2, "ATM").IsGTE(NewCoin(2, "ATM")))
	assert.False(t, NewCoin(2, "ATM").IsGTE(NewCoin(2, "OSM")))
}
