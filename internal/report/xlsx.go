package report

import (
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	applog "payslip/internal/log"
	"payslip/internal/payroll"
)

// SheetName is the worksheet holding one row per payslip.
const SheetName = "Payslips"

// Entry is one named payslip in a workbook.
type Entry struct {
	Name      string
	Breakdown payroll.Breakdown
}

// Workbook lays out entries on a single sheet: employee and monthly income
// followed by the report lines, one payslip per row.
func Workbook(entries []Entry, opts Options) (*excelize.File, error) {
	f := excelize.NewFile()

	f.SetDocProps(&excelize.DocProperties{
		Creator:     "payslip",
		Title:       "Payslip breakdown",
		Description: "Statutory contributions and income tax",
	})

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	headers := []string{"Employee", "Monthly Income"}
	for _, l := range Lines(payroll.Breakdown{}, opts) {
		headers = append(headers, l.Label)
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(SheetName, cell, h); err != nil {
			f.Close()
			return nil, fmt.Errorf("write header %s: %w", h, err)
		}
	}

	for r, e := range entries {
		row := r + 2
		cell, _ := excelize.CoordinatesToCellName(1, row)
		f.SetCellValue(SheetName, cell, e.Name)

		cell, _ = excelize.CoordinatesToCellName(2, row)
		f.SetCellValue(SheetName, cell, e.Breakdown.Income.RoundBank(2).InexactFloat64())

		for i, l := range Lines(e.Breakdown, opts) {
			cell, _ = excelize.CoordinatesToCellName(i+3, row)
			f.SetCellValue(SheetName, cell, l.Amount.RoundBank(2).InexactFloat64())
		}
	}

	lastCol, _ := excelize.ColumnNumberToName(len(headers))

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	})
	f.SetCellStyle(SheetName, "A1", lastCol+"1", headerStyle)

	// #,##0.00
	numStyle, _ := f.NewStyle(&excelize.Style{NumFmt: 4})
	if len(entries) > 0 {
		f.SetCellStyle(SheetName, "B2", fmt.Sprintf("%s%d", lastCol, len(entries)+1), numStyle)
	}

	f.SetColWidth(SheetName, "A", "A", 24)
	f.SetColWidth(SheetName, "B", lastCol, 16)
	f.SetPanes(SheetName, &excelize.Panes{Freeze: true, XSplit: 1, YSplit: 1, TopLeftCell: "B2", ActivePane: "bottomRight"})

	return f, nil
}

// WriteWorkbook builds the workbook for entries and saves it to path.
func WriteWorkbook(path string, entries []Entry, opts Options) error {
	f, err := Workbook(entries, opts)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %s: %w", path, err)
	}

	slog.Info("Workbook written",
		applog.FieldComponent, applog.ComponentReport,
		applog.FieldOperation, applog.OpExport,
		applog.FieldPath, path,
		applog.FieldCount, len(entries))
	return nil
}
