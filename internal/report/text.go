// Package report renders payslip breakdowns for the console and as workbooks.
package report

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"payslip/internal/money"
	"payslip/internal/payroll"
)

const (
	LabelSSS                = "SSS Contributions"
	LabelPhilHealth         = "PhilHealth Contributions"
	LabelPagIBIG            = "Pag-ibig Contributions"
	LabelTotalContributions = "Total Contributions"
	LabelPayAfterDeductions = "Pay after Deductions"
	LabelIncomeTax          = "Income Tax"
	LabelTotalDeductions    = "Total Deductions"
	LabelNetPay             = "Net Pay After Tax"
)

// Options controls optional report lines.
type Options struct {
	ShowTotalDeductions bool
}

// Line is one labelled figure of a report.
type Line struct {
	Label  string
	Amount decimal.Decimal
}

// Lines returns the report lines for b in print order.
func Lines(b payroll.Breakdown, opts Options) []Line {
	lines := []Line{
		{LabelSSS, b.SSS},
		{LabelPhilHealth, b.PhilHealth},
		{LabelPagIBIG, b.PagIBIG},
		{LabelTotalContributions, b.TotalContributions},
		{LabelPayAfterDeductions, b.TaxableIncome},
		{LabelIncomeTax, b.IncomeTax},
	}
	if opts.ShowTotalDeductions {
		lines = append(lines, Line{LabelTotalDeductions, b.TotalDeductions})
	}
	return append(lines, Line{LabelNetPay, b.NetPay})
}

// WriteText prints one "<Label>: <amount>" line per figure.
func WriteText(w io.Writer, b payroll.Breakdown, opts Options) error {
	for _, l := range Lines(b, opts) {
		if _, err := fmt.Fprintf(w, "%s: %s\n", l.Label, money.Format(l.Amount)); err != nil {
			return fmt.Errorf("write %s: %w", l.Label, err)
		}
	}
	return nil
}
