package report

import (
	"fmt"
	"io"

	"payslip/internal/money"
	"payslip/internal/storage"
)

// WriteRecord prints a stored payslip: a heading with its ID, employee,
// source and time, the monthly income, then the usual report lines.
func WriteRecord(w io.Writer, rec storage.Record, opts Options) error {
	employee := rec.Employee
	if employee == "" {
		employee = "-"
	}
	if _, err := fmt.Fprintf(w, "Payslip #%d  %s  %s  %s\n",
		rec.ID, employee, rec.Source, rec.CreatedAt.UTC().Format("2006-01-02 15:04 MST")); err != nil {
		return fmt.Errorf("write payslip %d: %w", rec.ID, err)
	}
	if _, err := fmt.Fprintf(w, "Monthly Income: %s\n", money.Format(rec.Income)); err != nil {
		return fmt.Errorf("write payslip %d: %w", rec.ID, err)
	}
	return WriteText(w, rec.Breakdown(), opts)
}

// WriteRecords prints records separated by blank lines.
func WriteRecords(w io.Writer, records []storage.Record, opts Options) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No payslips recorded.")
		return err
	}
	for i, rec := range records {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := WriteRecord(w, rec, opts); err != nil {
			return err
		}
	}
	return nil
}
