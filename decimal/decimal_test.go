package decimal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iov-one/tide/errors"
)

func TestFromNumber(t *testing.T) {
	d, err := FromNumber(100)
	require.NoError(t, err)
	assert.Equal(t, uint64(100000000), d.Units)

	_, err = FromNumber(math.MaxUint64)
	assert.True(t, errors.ErrOverflow.Is(err))
}

func TestFromRatio(t *testing.T) {
	cases := map[string]struct {
		num, den  uint64
		wantUnits uint64
		wantErr   *errors.Error
	}{
		"one third truncates": {
			num: 1, den: 3, wantUnits: 333333,
		},
		"two thirds truncates": {
			num: 2, den: 3, wantUnits: 666666,
		},
		"exact half": {
			num: 1, den: 2, wantUnits: 500000,
		},
		"whole": {
			num: 6, den: 2, wantUnits: 3000000,
		},
		"zero denominator": {
			num: 1, den: 0, wantErr: errors.ErrDivision,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			d, err := FromRatio(tc.num, tc.den)
			if tc.wantErr != nil {
				assert.True(t, tc.wantErr.Is(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantUnits, d.Units)
		})
	}
}

func TestArithmetics(t *testing.T) {
	two := FromUnits(2 * Unit)
	three := FromUnits(3 * Unit)

	mul, err := two.Multiply(three)
	require.NoError(t, err)
	assert.Equal(t, uint64(6000000), mul.Units)

	one := FromUnits(Unit)
	div, err := one.Divide(three)
	require.NoError(t, err)
	assert.Equal(t, uint64(333333), div.Units)

	sum, err := two.Add(three)
	require.NoError(t, err)
	assert.Equal(t, uint64(5000000), sum.Units)

	diff, err := three.Subtract(two)
	require.NoError(t, err)
	assert.Equal(t, uint64(1000000), diff.Units)

	_, err = two.Subtract(three)
	assert.True(t, errors.ErrUnderflow.Is(err))

	_, err = one.Divide(Decimal{})
	assert.True(t, errors.ErrDivision.Is(err))
}

func TestMultiplyWidens(t *testing.T) {
	// The intermediate product does not fit 64 bits but the result
	// does.
	big := FromUnits(math.MaxUint64 / 2)
	two := FromUnits(2 * Unit)
	got, err := big.Multiply(two)
	require.NoError(t, err)
	assert.Equal(t, uint64(math.MaxUint64-1), got.Units)

	_, err = big.Multiply(big)
	assert.True(t, errors.ErrOverflow.Is(err))
}

func TestFloorCeilSplit(t *testing.T) {
	d := FromUnits(2500000)
	assert.Equal(t, uint64(2000000), d.Floor().Units)
	up, err := d.Ceil()
	require.NoError(t, err)
	assert.Equal(t, uint64(3000000), up.Units)

	whole, rest := d.Split()
	assert.Equal(t, uint64(2), whole)
	assert.Equal(t, uint64(500000), rest.Units)
	assert.Equal(t, uint64(2), d.Whole())

	exact := FromUnits(4 * Unit)
	up, err = exact.Ceil()
	require.NoError(t, err)
	assert.Equal(t, exact, up)
}

func TestScale(t *testing.T) {
	half := FromUnits(Unit / 2)
	got, err := half.Scale(10001)
	require.NoError(t, err)
	assert.Equal(t, uint64(5000), got)

	// Widening allows scaling numbers far above MaxUint64/Unit.
	big := uint64(1) << 62
	got, err = half.Scale(big)
	require.NoError(t, err)
	assert.Equal(t, big/2, got)
}

func TestScaleSplit(t *testing.T) {
	third := FromUnits(333333)
	whole, rest, err := third.ScaleSplit(10)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), whole)
	assert.Equal(t, uint64(333330), rest.Units)
}

func TestMulQuo(t *testing.T) {
	down, err := MulQuo(10, 10, 3)
	require.NoError(t, err)
	assert.Equal(t, uint64(33), down)

	up, err := MulQuoCeil(10, 10, 3)
	require.NoError(t, err)
	assert.Equal(t, uint64(34), up)

	exact, err := MulQuoCeil(10, 9, 3)
	require.NoError(t, err)
	assert.Equal(t, uint64(30), exact)

	_, err = MulQuo(1, 1, 0)
	assert.True(t, errors.ErrDivision.Is(err))
	_, err = MulQuoCeil(1, 1, 0)
	assert.True(t, errors.ErrDivision.Is(err))

	// Round down never exceeds round up.
	for _, a := range []uint64{1, 7, 999, 123456} {
		for _, div := range []uint64{1, 3, 17, 1000} {
			d, err := MulQuo(a, 997, div)
			require.NoError(t, err)
			u, err := MulQuoCeil(a, 997, div)
			require.NoError(t, err)
			assert.True(t, d <= u)
		}
	}
}

func TestStringAndParse(t *testing.T) {
	cases := map[string]struct {
		units uint64
		str   string
	}{
		"zero":       {units: 0, str: "0"},
		"whole":      {units: 5 * Unit, str: "5"},
		"fraction":   {units: 1500000, str: "1.5"},
		"small":      {units: 1, str: "0.000001"},
		"mixed":      {units: 12345678, str: "12.345678"},
		"no zeroes":  {units: 2020000, str: "2.02"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			d := FromUnits(tc.units)
			assert.Equal(t, tc.str, d.String())
			back, err := Parse(tc.str)
			require.NoError(t, err)
			assert.Equal(t, d, back)
		})
	}

	_, err := Parse("1.2345678")
	assert.True(t, errors.ErrInput.Is(err))
	_, err = Parse("bad")
	assert.True(t, errors.ErrInput.Is(err))
}

func TestCompare(t *testing.T) {
	small := FromUnits(1)
	big := FromUnits(2)
	assert.Equal(t, -1, small.Compare(big))
	assert.Equal(t, 1, big.Compare(small))
	assert.Equal(t, 0, big.Compare(big))
	assert.True(t, big.Equals(big))
	assert.False(t, big.Equals(small))
	assert.True(t, Decimal{}.IsZero())
	assert.False(t, small.IsZero())
}

func TestJSON(t *testing.T) {
	d := FromUnits(20000)
	raw, err := d.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"0.02"`, string(raw))

	var back Decimal
	require.NoError(t, back.UnmarshalJSON(raw))
	assert.Equal(t, d, back)
}
