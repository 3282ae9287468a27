package payroll

import "github.com/shopspring/decimal"

// IncomeTax is the monthly withholding-tax schedule on taxable income.
//
// 20833.00 itself belongs to the 20% bracket. An unrounded amount that
// lands between two cutoffs (33332.995) matches no bracket and takes the
// top-rate fallback.
var IncomeTax = Schedule{
	Name: "income_tax",
	Brackets: []Bracket{
		{Name: "exempt", Applies: below("20833.00"), Compute: flat("0")},
		{Name: "20%", Applies: closed("20833.00", "33332.99"), Compute: marginal("20833", "0.20", "0")},
		{Name: "25%", Applies: closed("33333.00", "66666.99"), Compute: marginal("33333", "0.25", "2500.00")},
		{Name: "30%", Applies: closed("66667.00", "166666.99"), Compute: marginal("66667", "0.30", "10833.33")},
		{Name: "32%", Applies: closed("166667.00", "666666.99"), Compute: marginal("166667", "0.32", "40833.33")},
	},
	Fallback: Bracket{Name: "35%", Compute: marginal("666667", "0.35", "200833.33")},
}

// ComputeMonthlyTax returns the unrounded income tax on taxable income.
func ComputeMonthlyTax(taxableIncome decimal.Decimal) decimal.Decimal {
	v, _ := IncomeTax.Apply(taxableIncome)
	return v
}
