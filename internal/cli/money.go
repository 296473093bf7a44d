package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidAmount is returned for amounts that are not decimal numbers with at
// most two fractional digits.
var ErrInvalidAmount = errors.New("invalid amount")

// FormatMoney renders minor units as a fixed two-decimal amount with an optional currency.
func FormatMoney(minor int64, currency string) string {
	amount := decimal.New(minor, -2).StringFixed(2)
	if currency == "" {
		return amount
	}
	return amount + " " + currency
}

// FormatSignedMoney renders an amount colored by direction: inflows in the success
// color, outflows in the error color.
func FormatSignedMoney(minor int64, currency string) string {
	text := FormatMoney(minor, currency)
	switch {
	case minor > 0:
		return SuccessStyle.Render(text)
	case minor < 0:
		return ErrorStyle.Render(text)
	}
	return text
}

// ParseAmount converts user input such as "-12.50" or "3" to minor units.
func ParseAmount(input string) (int64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(input))
	if err != nil {
		return 0, fmt.Errorf("%w %q", ErrInvalidAmount, input)
	}
	if !d.Equal(d.Truncate(2)) {
		return 0, fmt.Errorf("%w %q: at most two decimal places", ErrInvalidAmount, input)
	}
	return d.Shift(2).IntPart(), nil
}
