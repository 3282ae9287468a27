package payroll

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"payslip/internal/money"
)

// InputPolicy selects how the monthly income text is read.
type InputPolicy string

const (
	// Permissive reads currency text ("₱18,000.00") with the money parser;
	// anything unreadable becomes zero.
	Permissive InputPolicy = "permissive"

	// Strict accepts a bare non-negative decimal number only.
	Strict InputPolicy = "strict"
)

var (
	ErrInvalidIncome  = errors.New("invalid monthly income")
	ErrNegativeIncome = errors.New("monthly income cannot be negative")
	ErrUnknownPolicy  = errors.New("unknown input policy")
)

// ParsePolicy maps a configuration value to an InputPolicy.
func ParsePolicy(s string) (InputPolicy, error) {
	switch p := InputPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case Permissive, Strict:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
	}
}

// ParseIncome reads a monthly income according to policy. Only the strict
// policy can fail.
func ParseIncome(text string, policy InputPolicy) (decimal.Decimal, error) {
	switch policy {
	case Strict:
		s := strings.TrimSpace(text)
		v, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidIncome, s)
		}
		if v.IsNegative() {
			return decimal.Zero, fmt.Errorf("%w: %s", ErrNegativeIncome, v)
		}
		return v, nil
	case Permissive, "":
		return money.Parse(text), nil
	default:
		return decimal.Zero, fmt.Errorf("%w: %q", ErrUnknownPolicy, policy)
	}
}
