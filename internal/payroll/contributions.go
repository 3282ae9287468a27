package payroll

import "github.com/shopspring/decimal"

// SSS is the social-insurance schedule.
//
// Incomes strictly between 3249.99 and 4250.00 match neither the minimum
// nor the graduated bracket and fall back to the maximum contribution.
// That gap is part of the published table and is kept as is.
var SSS = Schedule{
	Name: "sss",
	Brackets: []Bracket{
		{Name: "minimum", Applies: atMost("3249.99"), Compute: flat("135.00")},
		{Name: "graduated", Applies: closed("4250.00", "24749.99"), Compute: sssGraduated},
	},
	Fallback: Bracket{Name: "maximum", Compute: flat("1125.00")},
}

var (
	sssBase         = d("3250")
	sssStep         = d("500")
	sssPerStep      = d("22.50")
	sssMinimum      = d("135.00")
	philHealthShare = d("0.04").Div(d("2"))
)

// sssGraduated adds 22.50 for every started 500 over 3250.
func sssGraduated(income decimal.Decimal) decimal.Decimal {
	steps := income.Sub(sssBase).Div(sssStep).Ceil()
	return steps.Mul(sssPerStep).Add(sssMinimum)
}

// PhilHealth is the health-insurance schedule. The employee pays half of
// the 4% premium between the floor and the ceiling.
var PhilHealth = Schedule{
	Name: "philhealth",
	Brackets: []Bracket{
		{Name: "floor", Applies: atMost("10000.00"), Compute: flat("200.00")},
		{Name: "premium", Applies: leftOpen("10000.00", "79999.99"), Compute: func(income decimal.Decimal) decimal.Decimal {
			return income.Mul(philHealthShare)
		}},
	},
	Fallback: Bracket{Name: "ceiling", Compute: flat("1600.00")},
}

// PagIBIG is the housing-fund schedule.
var PagIBIG = Schedule{
	Name: "pagibig",
	Brackets: []Bracket{
		{Name: "one-percent", Applies: atMost("1500.00"), Compute: rate("0.01")},
		{Name: "two-percent", Applies: leftOpen("1500.00", "4999.99"), Compute: rate("0.02")},
	},
	Fallback: Bracket{Name: "maximum", Compute: flat("100.00")},
}

// ComputeSSS returns the unrounded social-insurance contribution.
func ComputeSSS(monthlyIncome decimal.Decimal) decimal.Decimal {
	v, _ := SSS.Apply(monthlyIncome)
	return v
}

// ComputePhilHealth returns the unrounded health-insurance contribution.
func ComputePhilHealth(monthlyIncome decimal.Decimal) decimal.Decimal {
	v, _ := PhilHealth.Apply(monthlyIncome)
	return v
}

// ComputePagIBIG returns the unrounded housing-fund contribution.
func ComputePagIBIG(monthlyIncome decimal.Decimal) decimal.Decimal {
	v, _ := PagIBIG.Apply(monthlyIncome)
	return v
}
