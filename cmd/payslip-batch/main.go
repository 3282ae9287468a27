package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"payslip/internal/cli"
	applog "payslip/internal/log"
	"payslip/internal/report"
	"payslip/internal/roster"
	"payslip/internal/services"
)

func main() {
	inPath := flag.String("in", "", "roster CSV with Name and Monthly Income columns")
	xlsxPath := flag.String("xlsx", "", "write a summary workbook to this path")
	totalDeductions := flag.Bool("total-deductions", false, "print the Total Deductions line")
	flag.Parse()

	if *inPath == "" {
		fmt.Fprintln(os.Stderr, "usage: payslip-batch -in roster.csv [-xlsx out.xlsx] [-total-deductions]")
		os.Exit(2)
	}

	cli.LoadEnvFile()
	cfg, logger := cli.LoadConfig()
	if *totalDeductions {
		cfg.ShowTotalDeductions = true
	}

	ctx, cancel := cli.SignalContext(logger)
	defer cancel()

	svc, cleanup := cli.NewService(logger, cfg)
	defer cleanup()

	runner := services.NewBatchRunner(svc, cfg.BatchWorkers, logger)
	opts := report.Options{ShowTotalDeductions: cfg.ShowTotalDeductions}

	if err := run(ctx, runner, *inPath, *xlsxPath, os.Stdout, os.Stderr, opts); err != nil {
		logger.Error("Batch failed", applog.NewFields().WithError(err).ToSlice()...)
		fmt.Fprintln(os.Stderr, err)
		cleanup()
		cancel()
		os.Exit(1)
	}
}

func run(ctx context.Context, runner *services.BatchRunner, inPath, xlsxPath string, out, errOut io.Writer, opts report.Options) error {
	f, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("open roster: %w", err)
	}
	employees, problems, err := roster.Parse(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("read roster %s: %w", inPath, err)
	}
	for _, p := range problems {
		fmt.Fprintln(errOut, p)
	}

	results, err := runner.Run(ctx, employees)
	if err != nil {
		return err
	}

	printed := 0
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(errOut, "%s: %v\n", res.Employee.Name, res.Err)
			continue
		}
		if printed > 0 {
			fmt.Fprintln(out)
		}
		printed++
		fmt.Fprintf(out, "%s\n", res.Employee.Name)
		if err := report.WriteText(out, res.Result.Breakdown, opts); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}

	if xlsxPath != "" {
		if err := report.WriteWorkbook(xlsxPath, services.Entries(results), opts); err != nil {
			return err
		}
	}
	return nil
}
