package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"payslip/internal/payroll"
	"payslip/internal/report"
	"payslip/internal/services"
	"payslip/internal/storage"
)

func TestRun_Permissive(t *testing.T) {
	svc := services.NewPayslipService(payroll.Permissive, nil, nil, nil)
	var out bytes.Buffer

	err := run(context.Background(), svc, strings.NewReader("₱30,000.00\n"), &out, "", "", report.Options{})
	require.NoError(t, err)

	want := "Enter your Monthly Income: " +
		"SSS Contributions: ₱1,125.00\n" +
		"PhilHealth Contributions: ₱600.00\n" +
		"Pag-ibig Contributions: ₱100.00\n" +
		"Total Contributions: ₱1,825.00\n" +
		"Pay after Deductions: ₱28,175.00\n" +
		"Income Tax: ₱1,468.40\n" +
		"Net Pay After Tax: ₱26,706.60\n"
	assert.Equal(t, want, out.String())
}

func TestRun_GarbageIsZero(t *testing.T) {
	svc := services.NewPayslipService(payroll.Permissive, nil, nil, nil)
	var out bytes.Buffer

	require.NoError(t, run(context.Background(), svc, strings.NewReader("abc"), &out, "", "", report.Options{}))
	assert.Contains(t, out.String(), "Pay after Deductions: ₱335.00\n")
	assert.Contains(t, out.String(), "Net Pay After Tax: -₱335.00\n")
}

func TestRun_StrictRejects(t *testing.T) {
	svc := services.NewPayslipService(payroll.Strict, nil, nil, nil)
	var out bytes.Buffer

	err := run(context.Background(), svc, strings.NewReader("₱18,000.00\r\n"), &out, "", "", report.Options{})
	assert.ErrorIs(t, err, payroll.ErrInvalidIncome)
	assert.Equal(t, "Enter your Monthly Income: ", out.String())
}

func TestRun_TotalDeductionsAndWorkbook(t *testing.T) {
	svc := services.NewPayslipService(payroll.Strict, nil, nil, nil)
	path := filepath.Join(t.TempDir(), "payslip.xlsx")
	var out bytes.Buffer

	err := run(context.Background(), svc, strings.NewReader("30000\n"), &out, "Juan", path,
		report.Options{ShowTotalDeductions: true})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Total Deductions: ₱3,293.40\n")

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	v, err := f.GetCellValue(report.SheetName, "A2")
	require.NoError(t, err)
	assert.Equal(t, "Juan", v)
}

func TestReadLine(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"18000\n", "18000"},
		{"18000\r\n", "18000"},
		{"18000", "18000"},
		{"", ""},
		{"first\nsecond\n", "first"},
	}
	for _, tt := range tests {
		got, err := readLine(strings.NewReader(tt.in))
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestListHistory(t *testing.T) {
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer repo.Close()

	ctx := context.Background()
	svc := services.NewPayslipService(payroll.Permissive, repo, nil, nil)
	for _, req := range []services.Request{
		{Employee: "Ana", IncomeText: "18000", Source: services.SourceInteractive},
		{Employee: "Ben", IncomeText: "30000", Source: services.SourceInteractive},
		{Employee: "Ana", IncomeText: "20000", Source: services.SourceInteractive},
	} {
		_, err := svc.Calculate(ctx, req)
		require.NoError(t, err)
	}

	t.Run("recent", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, listHistory(ctx, repo, &out, historyQuery{Limit: 2}, report.Options{}))
		assert.Equal(t, 2, strings.Count(out.String(), "Payslip #"))
		assert.True(t, strings.HasPrefix(out.String(), "Payslip #3  Ana"))
		assert.Contains(t, out.String(), "Payslip #2  Ben")
	})

	t.Run("by employee", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, listHistory(ctx, repo, &out, historyQuery{Limit: 1, Employee: "Ana"}, report.Options{}))
		assert.Contains(t, out.String(), "Payslip #3  Ana")
		assert.NotContains(t, out.String(), "Payslip #1")
	})

	t.Run("by id", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, listHistory(ctx, repo, &out, historyQuery{ID: 2}, report.Options{}))
		assert.Contains(t, out.String(), "Monthly Income: ₱30,000.00\n")
		assert.Contains(t, out.String(), "Net Pay After Tax: ₱26,706.60\n")
	})

	t.Run("unknown id", func(t *testing.T) {
		var out bytes.Buffer
		err := listHistory(ctx, repo, &out, historyQuery{ID: 99}, report.Options{})
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}
