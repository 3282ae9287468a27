// Package money provides the peso currency format used by every payslip figure.
//
// Amounts are rounded by rendering them as currency text and parsing the
// text back. The round-trip is the only rounding step in the pipeline, so
// every value that is displayed is exactly the value used downstream.
package money

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

const (
	// Symbol is the Philippine peso sign prefixed to every formatted amount.
	Symbol = "₱"

	// Places is the number of fractional digits kept after rounding.
	Places = 2
)

// ErrOutOfRange is returned by Cents for amounts whose cents do not fit in
// an int64.
var ErrOutOfRange = errors.New("amount out of cents range")

var (
	minCents = decimal.NewFromInt(math.MinInt64)
	maxCents = decimal.NewFromInt(math.MaxInt64)
)

// Format renders an amount as "₱18,000.00".
//
// Rounding is half-to-even on the third fractional digit, the default of
// currency formatters. Negative amounts are rendered as "-₱335.00".
//
// Examples:
//
//	Format(18000)    -> "₱18,000.00"
//	Format(1468.405) -> "₱1,468.40"
//	Format(1468.415) -> "₱1,468.42"
func Format(amount decimal.Decimal) string {
	rounded := amount.RoundBank(Places)

	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Neg()
	}

	fixed := rounded.StringFixed(Places)
	frac := fixed[strings.IndexByte(fixed, '.')+1:]

	// rounded is non-negative here, so BigInt truncation is the integer part.
	return sign + Symbol + humanize.BigComma(rounded.BigInt()) + "." + frac
}

// Parse reads an amount from free-form currency text.
//
// Every character that is not a digit or a period is dropped before the
// remainder is parsed, so "₱18,000.00" and "18000" read the same. Signs are
// dropped too. Text that does not leave a valid number behind (empty input,
// several periods) reads as zero; Parse never fails.
func Parse(text string) decimal.Decimal {
	clean := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, text)

	if clean == "" {
		return decimal.Zero
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Round returns amount rounded to currency precision by formatting it and
// parsing the result back. For non-negative amounts this is amount rounded
// half-to-even to two places; negative amounts lose their sign.
func Round(amount decimal.Decimal) decimal.Decimal {
	return Parse(Format(amount))
}

// Cents converts an amount to integer cents after rounding it. Amounts
// beyond the int64 range of cents fail with ErrOutOfRange.
func Cents(amount decimal.Decimal) (int64, error) {
	c := amount.RoundBank(Places).Shift(Places)
	if c.LessThan(minCents) || c.GreaterThan(maxCents) {
		return 0, fmt.Errorf("%w: %s", ErrOutOfRange, amount)
	}
	return c.IntPart(), nil
}

// FromCents is the inverse of Cents.
func FromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -Places)
}
