package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"payslip/internal/payroll"
	"payslip/internal/report"
	"payslip/internal/services"
)

func writeRoster(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "roster.csv")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestRun_Batch(t *testing.T) {
	in := writeRoster(t, "Name,Monthly Income\n"+
		"Ana,18000\n"+
		",25000\n"+
		"Ben,thirty\n"+
		"Cid,30000\n")
	xlsxPath := filepath.Join(t.TempDir(), "out.xlsx")

	runner := services.NewBatchRunner(services.NewPayslipService(payroll.Strict, nil, nil, nil), 2, nil)
	var out, errOut bytes.Buffer

	err := run(context.Background(), runner, in, xlsxPath, &out, &errOut, report.Options{})
	require.NoError(t, err)

	want := "Ana\n" +
		"SSS Contributions: ₱810.00\n" +
		"PhilHealth Contributions: ₱360.00\n" +
		"Pag-ibig Contributions: ₱100.00\n" +
		"Total Contributions: ₱1,270.00\n" +
		"Pay after Deductions: ₱16,730.00\n" +
		"Income Tax: ₱0.00\n" +
		"Net Pay After Tax: ₱16,730.00\n" +
		"\n" +
		"Cid\n" +
		"SSS Contributions: ₱1,125.00\n" +
		"PhilHealth Contributions: ₱600.00\n" +
		"Pag-ibig Contributions: ₱100.00\n" +
		"Total Contributions: ₱1,825.00\n" +
		"Pay after Deductions: ₱28,175.00\n" +
		"Income Tax: ₱1,468.40\n" +
		"Net Pay After Tax: ₱26,706.60\n"
	assert.Equal(t, want, out.String())
	assert.Contains(t, errOut.String(), "Row 3: missing Name")
	assert.Contains(t, errOut.String(), "Ben: row 4")

	f, err := excelize.OpenFile(xlsxPath)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(report.SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Ana", rows[1][0])
	assert.Equal(t, "Cid", rows[2][0])
}

func TestRun_MissingRoster(t *testing.T) {
	runner := services.NewBatchRunner(services.NewPayslipService(payroll.Permissive, nil, nil, nil), 1, nil)
	var out, errOut bytes.Buffer

	err := run(context.Background(), runner, filepath.Join(t.TempDir(), "nope.csv"), "", &out, &errOut, report.Options{})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRun_MissingHeader(t *testing.T) {
	in := writeRoster(t, "Employee,Salary\nAna,18000\n")
	runner := services.NewBatchRunner(services.NewPayslipService(payroll.Permissive, nil, nil, nil), 1, nil)
	var out, errOut bytes.Buffer

	err := run(context.Background(), runner, in, "", &out, &errOut, report.Options{})
	assert.Error(t, err)
	assert.Empty(t, out.String())
}
