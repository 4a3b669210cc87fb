// Package amounts converts the decimal string amounts carried in transfer
// requests into the integer cents stored and compared everywhere else in
// the system.
package amounts

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrTooManyDecimalPlaces is returned when the input string carries more
// than two digits of fractional precision - to_cents never rounds silently.
var ErrTooManyDecimalPlaces = errors.New("amount has more than two decimal places")

// ErrMalformedAmount is returned when the input string isn't a valid
// base-10 decimal.
var ErrMalformedAmount = errors.New("amount is not a valid decimal string")

// ToCents parses a decimal string (e.g. "12.50") into its integer cent
// value (1250), using half-up rounding to two decimal places. It rejects
// any input that would require silent rounding - if the value already
// carries more than two decimal digits, that's an error, not a
// truncation. The sign is preserved; positivity is the caller's rule.
func ToCents(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, ErrMalformedAmount
	}

	rounded := d.Round(2)
	if !rounded.Equal(d) {
		return 0, ErrTooManyDecimalPlaces
	}

	return rounded.Shift(2).IntPart(), nil
}

// FromCents renders an integer cent value back into a decimal string with
// exactly two fractional digits, the inverse of ToCents.
func FromCents(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}
