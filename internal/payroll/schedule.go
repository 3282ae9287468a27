// Package payroll computes statutory contributions and monthly income tax.
//
// Every rate table is a Schedule: an ordered list of brackets evaluated top
// to bottom, where the first bracket whose predicate holds supplies the
// formula and the fallback covers everything else. Cutoffs are written
// exactly as published, including the seams between brackets.
package payroll

import "github.com/shopspring/decimal"

type (
	// Predicate reports whether a bracket applies to an amount.
	Predicate func(decimal.Decimal) bool

	// Formula computes the bracket's result for an amount.
	Formula func(decimal.Decimal) decimal.Decimal

	Bracket struct {
		Name    string
		Applies Predicate
		Compute Formula
	}

	Schedule struct {
		Name     string
		Brackets []Bracket
		Fallback Bracket
	}
)

// Apply returns the result of the first matching bracket, or of the
// fallback when none matches, together with the bracket's name.
func (s Schedule) Apply(amount decimal.Decimal) (decimal.Decimal, string) {
	b := s.Match(amount)
	return b.Compute(amount), b.Name
}

// Match returns the bracket that Apply would use for amount.
func (s Schedule) Match(amount decimal.Decimal) Bracket {
	for _, b := range s.Brackets {
		if b.Applies(amount) {
			return b
		}
	}
	return s.Fallback
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// atMost matches x <= hi.
func atMost(hi string) Predicate {
	h := d(hi)
	return func(x decimal.Decimal) bool { return x.LessThanOrEqual(h) }
}

// below matches x < hi.
func below(hi string) Predicate {
	h := d(hi)
	return func(x decimal.Decimal) bool { return x.LessThan(h) }
}

// closed matches lo <= x <= hi.
func closed(lo, hi string) Predicate {
	l, h := d(lo), d(hi)
	return func(x decimal.Decimal) bool {
		return x.GreaterThanOrEqual(l) && x.LessThanOrEqual(h)
	}
}

// leftOpen matches lo < x <= hi.
func leftOpen(lo, hi string) Predicate {
	l, h := d(lo), d(hi)
	return func(x decimal.Decimal) bool {
		return x.GreaterThan(l) && x.LessThanOrEqual(h)
	}
}

func flat(amount string) Formula {
	v := d(amount)
	return func(decimal.Decimal) decimal.Decimal { return v }
}

func rate(r string) Formula {
	v := d(r)
	return func(x decimal.Decimal) decimal.Decimal { return x.Mul(v) }
}

// marginal taxes the excess over floor at rate r on top of base.
func marginal(floor, r, base string) Formula {
	f, v, b := d(floor), d(r), d(base)
	return func(x decimal.Decimal) decimal.Decimal {
		return x.Sub(f).Mul(v).Add(b)
	}
}
