// Package decimal implements a fixed-point decimal type used by all
// distribution accounting. A Decimal is an unsigned integer amount of
// 10^-6 units, so the represented value is Units / 10^6.
//
// All operations truncate (round towards zero) unless Ceil is used
// explicitly. Truncation always favors the global pool over the
// individual claim, so no value can be manufactured by rounding.
// Intermediate multiplication results are widened to 128 bits before
// the scale-down division, so no precision is lost before truncation.
package decimal

import (
	"math"
	"math/bits"
	"strconv"
	"strings"

	"github.com/iov-one/tide/errors"
)

const (
	// Unit is the number of fractional units in a whole one.
	Unit uint64 = 1000000
	// Digits is the number of implicit fractional digits.
	Digits = 6
)

// Decimal represents the value Units / 10^6. The zero value is a valid
// representation of zero.
type Decimal struct {
	Units uint64
}

// FromUnits returns a decimal holding given amount of 10^-6 units.
func FromUnits(units uint64) Decimal {
	return Decimal{Units: units}
}

// FromNumber returns a decimal representing a whole number.
func FromNumber(n uint64) (Decimal, error) {
	if n > math.MaxUint64/Unit {
		return Decimal{}, errors.Wrapf(errors.ErrOverflow, "number %d", n)
	}
	return Decimal{Units: n * Unit}, nil
}

// FromRatio returns the decimal representation of num/den, truncated to
// 6 fractional digits.
func FromRatio(num, den uint64) (Decimal, error) {
	if den == 0 {
		return Decimal{}, errors.Wrap(errors.ErrDivision, "zero denominator")
	}
	units, err := mulDiv(num, Unit, den)
	if err != nil {
		return Decimal{}, errors.Wrapf(err, "ratio %d/%d", num, den)
	}
	return Decimal{Units: units}, nil
}

// Add combines two decimals. Returns an error if the result would
// overflow.
func (d Decimal) Add(o Decimal) (Decimal, error) {
	sum := d.Units + o.Units
	if sum < d.Units {
		return Decimal{}, errors.Wrap(errors.ErrOverflow, "decimal add")
	}
	return Decimal{Units: sum}, nil
}

// Subtract returns d - o. Returns an error if the result would be
// negative, as negative amounts cannot be represented.
func (d Decimal) Subtract(o Decimal) (Decimal, error) {
	if o.Units > d.Units {
		return Decimal{}, errors.Wrapf(errors.ErrUnderflow, "%s - %s", d, o)
	}
	return Decimal{Units: d.Units - o.Units}, nil
}

// Multiply returns d * o truncated to 6 fractional digits. The
// intermediate product is computed in 128 bits.
func (d Decimal) Multiply(o Decimal) (Decimal, error) {
	units, err := mulDiv(d.Units, o.Units, Unit)
	if err != nil {
		return Decimal{}, errors.Wrap(err, "decimal multiply")
	}
	return Decimal{Units: units}, nil
}

// MultiplyInt returns d scaled by a whole number.
func (d Decimal) MultiplyInt(n uint64) (Decimal, error) {
	if n != 0 && d.Units > math.MaxUint64/n {
		return Decimal{}, errors.Wrapf(errors.ErrOverflow, "%s * %d", d, n)
	}
	return Decimal{Units: d.Units * n}, nil
}

// Scale returns floor(d * n) as a whole number. The intermediate
// product is computed in 128 bits so n can be any amount, unlike
// MultiplyInt which must keep the full precision result.
func (d Decimal) Scale(n uint64) (uint64, error) {
	return mulDiv(d.Units, n, Unit)
}

// ScaleSplit returns the whole-number part and the fractional rest of
// d * n. Unlike Scale the fractional rest is not discarded, so the
// caller can carry it over to a later operation.
func (d Decimal) ScaleSplit(n uint64) (uint64, Decimal, error) {
	hi, lo := bits.Mul64(d.Units, n)
	if hi >= Unit {
		return 0, Decimal{}, errors.Wrapf(errors.ErrOverflow, "%s * %d", d, n)
	}
	whole, rem := bits.Div64(hi, lo, Unit)
	return whole, Decimal{Units: rem}, nil
}

// Divide returns d / o truncated to 6 fractional digits.
func (d Decimal) Divide(o Decimal) (Decimal, error) {
	if o.Units == 0 {
		return Decimal{}, errors.Wrap(errors.ErrDivision, "zero divisor")
	}
	units, err := mulDiv(d.Units, Unit, o.Units)
	if err != nil {
		return Decimal{}, errors.Wrap(err, "decimal divide")
	}
	return Decimal{Units: units}, nil
}

// DivideInt returns d divided by a whole number, truncated.
func (d Decimal) DivideInt(n uint64) (Decimal, error) {
	if n == 0 {
		return Decimal{}, errors.Wrap(errors.ErrDivision, "zero divisor")
	}
	return Decimal{Units: d.Units / n}, nil
}

// Floor returns the greatest whole-number decimal not bigger than d.
func (d Decimal) Floor() Decimal {
	return Decimal{Units: d.Units - d.Units%Unit}
}

// Ceil returns the smallest whole-number decimal not smaller than d.
func (d Decimal) Ceil() (Decimal, error) {
	rest := d.Units % Unit
	if rest == 0 {
		return d, nil
	}
	up := d.Units + (Unit - rest)
	if up < d.Units {
		return Decimal{}, errors.Wrap(errors.ErrOverflow, "decimal ceil")
	}
	return Decimal{Units: up}, nil
}

// Split separates the value into its whole-number part and the
// remaining fractional rest.
func (d Decimal) Split() (uint64, Decimal) {
	return d.Units / Unit, Decimal{Units: d.Units % Unit}
}

// Whole returns the truncated whole-number value.
func (d Decimal) Whole() uint64 {
	return d.Units / Unit
}

// IsZero returns true when this decimal represents no value.
func (d Decimal) IsZero() bool {
	return d.Units == 0
}

// Compare returns 1 if d is larger, -1 if o is larger, 0 if equal.
func (d Decimal) Compare(o Decimal) int {
	switch {
	case d.Units > o.Units:
		return 1
	case d.Units < o.Units:
		return -1
	default:
		return 0
	}
}

// Equals returns true if both decimals represent the same value.
func (d Decimal) Equals(o Decimal) bool {
	return d.Units == o.Units
}

// String returns a human readable representation, for example "1.5" or
// "0.000001". Trailing fractional zeros are dropped.
func (d Decimal) String() string {
	whole := d.Units / Unit
	rest := d.Units % Unit
	if rest == 0 {
		return strconv.FormatUint(whole, 10)
	}
	frac := strconv.FormatUint(rest, 10)
	frac = strings.Repeat("0", Digits-len(frac)) + frac
	frac = strings.TrimRight(frac, "0")
	return strconv.FormatUint(whole, 10) + "." + frac
}

// Parse returns the decimal represented by given string. Accepted
// format is "<whole>[.<fractional>]" with at most 6 fractional digits.
func Parse(raw string) (Decimal, error) {
	chunks := strings.SplitN(raw, ".", 2)
	whole, err := strconv.ParseUint(chunks[0], 10, 64)
	if err != nil {
		return Decimal{}, errors.Wrapf(errors.ErrInput, "whole part: %s", err)
	}
	d, err := FromNumber(whole)
	if err != nil {
		return Decimal{}, err
	}
	if len(chunks) == 1 {
		return d, nil
	}
	frac := chunks[1]
	if len(frac) == 0 || len(frac) > Digits {
		return Decimal{}, errors.Wrapf(errors.ErrInput, "fractional part %q", frac)
	}
	rest, err := strconv.ParseUint(frac, 10, 64)
	if err != nil {
		return Decimal{}, errors.Wrapf(errors.ErrInput, "fractional part: %s", err)
	}
	for i := len(frac); i < Digits; i++ {
		rest *= 10
	}
	return d.Add(Decimal{Units: rest})
}

// MarshalJSON serializes the decimal in its human readable form.
func (d Decimal) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON supports both the human readable form ("0.02") and a
// raw number of 10^-6 units.
func (d *Decimal) UnmarshalJSON(raw []byte) error {
	s := strings.Trim(string(raw), `"`)
	val, err := Parse(s)
	if err != nil {
		return err
	}
	*d = val
	return nil
}

// MulQuo returns floor(a*b/div) with a 128 bit intermediate product, so
// a*b may exceed the uint64 range as long as the quotient does not.
func MulQuo(a, b, div uint64) (uint64, error) {
	if div == 0 {
		return 0, errors.Wrap(errors.ErrDivision, "zero divisor")
	}
	return mulDiv(a, b, div)
}

// MulQuoCeil is like MulQuo but rounds the quotient up instead of
// truncating.
func MulQuoCeil(a, b, div uint64) (uint64, error) {
	if div == 0 {
		return 0, errors.Wrap(errors.ErrDivision, "zero divisor")
	}
	hi, lo := bits.Mul64(a, b)
	if hi >= div {
		return 0, errors.Wrap(errors.ErrOverflow, "quotient")
	}
	quo, rem := bits.Div64(hi, lo, div)
	if rem > 0 {
		if quo == math.MaxUint64 {
			return 0, errors.Wrap(errors.ErrOverflow, "quotient")
		}
		quo++
	}
	return quo, nil
}

// mulDiv computes a*b/div with a 128 bit intermediate product. It fails
// with ErrOverflow when the quotient does not fit uint64. div must not
// be zero.
func mulDiv(a, b, div uint64) (uint64, error) {
	hi, lo := bits.Mul64(a, b)
	if hi >= div {
		return 0, errors.Wrap(errors.ErrOverflow, "quotient")
	}
	quo, _ := bits.Div64(hi, lo, div)
	return quo, nil
}
