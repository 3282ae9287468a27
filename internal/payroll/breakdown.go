package payroll

import (
	"github.com/shopspring/decimal"

	"payslip/internal/money"
)

// Breakdown holds every figure of one monthly payslip. All fields except
// Income and NetPay have gone through the currency round-trip.
type Breakdown struct {
	Income             decimal.Decimal
	SSS                decimal.Decimal
	PhilHealth         decimal.Decimal
	PagIBIG            decimal.Decimal
	TotalContributions decimal.Decimal
	TaxableIncome      decimal.Decimal
	IncomeTax          decimal.Decimal
	TotalDeductions    decimal.Decimal
	NetPay             decimal.Decimal

	// Bracket names that produced each figure, for logging.
	Brackets Brackets
}

type Brackets struct {
	SSS        string
	PhilHealth string
	PagIBIG    string
	IncomeTax  string
}

// Compute builds the payslip for a monthly income.
//
// Each contribution is rounded on its own, the total is rounded again,
// taxable income is the income less that total (rounded), and the tax on
// it is rounded last. Net pay is income less tax less contributions.
func Compute(monthlyIncome decimal.Decimal) Breakdown {
	var b Breakdown
	var raw decimal.Decimal

	b.Income = monthlyIncome

	raw, b.Brackets.SSS = SSS.Apply(monthlyIncome)
	b.SSS = money.Round(raw)

	raw, b.Brackets.PhilHealth = PhilHealth.Apply(monthlyIncome)
	b.PhilHealth = money.Round(raw)

	raw, b.Brackets.PagIBIG = PagIBIG.Apply(monthlyIncome)
	b.PagIBIG = money.Round(raw)

	b.TotalContributions = money.Round(b.SSS.Add(b.PhilHealth).Add(b.PagIBIG))
	b.TaxableIncome = money.Round(monthlyIncome.Sub(b.TotalContributions))

	raw, b.Brackets.IncomeTax = IncomeTax.Apply(b.TaxableIncome)
	b.IncomeTax = money.Round(raw)

	b.TotalDeductions = b.TotalContributions.Add(b.IncomeTax)
	b.NetPay = monthlyIncome.Sub(b.IncomeTax).Sub(b.TotalContributions)

	return b
}
