package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"payslip/internal/cli"
	applog "payslip/internal/log"
	"payslip/internal/payroll"
	"payslip/internal/report"
	"payslip/internal/services"
	"payslip/internal/storage"
)

const prompt = "Enter your Monthly Income: "

func main() {
	strict := flag.Bool("strict", false, "accept a bare non-negative number only")
	totalDeductions := flag.Bool("total-deductions", false, "print the Total Deductions line")
	name := flag.String("name", "", "employee name recorded with the payslip")
	xlsxPath := flag.String("xlsx", "", "also write the payslip to this workbook")
	historyN := flag.Int("history", 0, "list the N most recent recorded payslips (with -name, that employee's) instead of calculating")
	showID := flag.Int64("show", 0, "print the recorded payslip with this ID instead of calculating")
	flag.Parse()

	// Load .env file for local development
	cli.LoadEnvFile()

	cfg, logger := cli.LoadConfig()

	// Flags override the environment
	if *strict {
		cfg.InputPolicy = string(payroll.Strict)
	}
	if *totalDeductions {
		cfg.ShowTotalDeductions = true
	}

	opts := report.Options{ShowTotalDeductions: cfg.ShowTotalDeductions}

	if *historyN > 0 || *showID > 0 {
		repo := cli.InitHistory(logger, cfg)
		if repo == nil {
			fmt.Fprintln(os.Stderr, "payslip history is not available; set HISTORY_DB_PATH")
			os.Exit(1)
		}
		q := historyQuery{Limit: *historyN, Employee: *name, ID: *showID}
		err := listHistory(context.Background(), repo, os.Stdout, q, opts)
		repo.Close()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	svc, cleanup := cli.NewService(logger, cfg)
	defer cleanup()

	if err := run(context.Background(), svc, os.Stdin, os.Stdout, *name, *xlsxPath, opts); err != nil {
		logger.Error("Payslip failed", applog.NewFields().WithError(err).ToSlice()...)
		fmt.Fprintln(os.Stderr, err)
		cleanup()
		os.Exit(1)
	}
}

func run(ctx context.Context, svc *services.PayslipService, in io.Reader, out io.Writer, name, xlsxPath string, opts report.Options) error {
	fmt.Fprint(out, prompt)

	text, err := readLine(in)
	if err != nil {
		return fmt.Errorf("read monthly income: %w", err)
	}

	res, err := svc.Calculate(ctx, services.Request{
		Employee:   name,
		IncomeText: text,
		Source:     services.SourceInteractive,
	})
	if err != nil {
		return err
	}

	if err := report.WriteText(out, res.Breakdown, opts); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	if xlsxPath != "" {
		entries := []report.Entry{{Name: name, Breakdown: res.Breakdown}}
		if err := report.WriteWorkbook(xlsxPath, entries, opts); err != nil {
			return err
		}
	}
	return nil
}

type historyReader interface {
	Get(ctx context.Context, id int64) (storage.Record, error)
	Recent(ctx context.Context, limit int) ([]storage.Record, error)
	ByEmployee(ctx context.Context, employee string) ([]storage.Record, error)
}

// historyQuery selects recorded payslips. ID wins over the listing fields.
type historyQuery struct {
	ID       int64
	Limit    int
	Employee string
}

func listHistory(ctx context.Context, repo historyReader, out io.Writer, q historyQuery, opts report.Options) error {
	if q.ID > 0 {
		rec, err := repo.Get(ctx, q.ID)
		if err != nil {
			return err
		}
		return report.WriteRecord(out, rec, opts)
	}

	var (
		records []storage.Record
		err     error
	)
	if q.Employee != "" {
		records, err = repo.ByEmployee(ctx, q.Employee)
		if q.Limit > 0 && len(records) > q.Limit {
			records = records[len(records)-q.Limit:]
		}
	} else {
		records, err = repo.Recent(ctx, q.Limit)
	}
	if err != nil {
		return err
	}
	return report.WriteRecords(out, records, opts)
}

// readLine returns the first line of in without its line ending. A missing
// trailing newline is fine.
func readLine(in io.Reader) (string, error) {
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
