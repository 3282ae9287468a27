package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	applog "payslip/internal/log"
	"payslip/internal/report"
	"payslip/internal/roster"
)

const (
	DefaultBatchWorkers = 4
	MaxBatchWorkers     = 64
)

// BatchResult is the outcome for one roster row. Err is set when the row's
// income was rejected; the other rows are unaffected.
type BatchResult struct {
	Employee roster.Employee
	Result   Result
	Err      error
}

// BatchRunner computes payslips for a whole roster.
type BatchRunner struct {
	service *PayslipService
	workers int
	logger  *applog.Logger
}

func NewBatchRunner(service *PayslipService, workers int, logger *applog.Logger) *BatchRunner {
	if workers <= 0 {
		workers = DefaultBatchWorkers
	}
	if workers > MaxBatchWorkers {
		workers = MaxBatchWorkers
	}
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	return &BatchRunner{
		service: service,
		workers: workers,
		logger:  logger.WithComponent(applog.ComponentBatch),
	}
}

// Run computes every employee concurrently, then records the successful
// payslips one at a time in roster order. Results are returned in roster
// order. Only context cancellation aborts the run.
func (r *BatchRunner) Run(ctx context.Context, employees []roster.Employee) ([]BatchResult, error) {
	results := make([]BatchResult, len(employees))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, emp := range employees {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i].Employee = emp
			b, err := r.service.Compute(Request{
				Employee:   emp.Name,
				IncomeText: emp.MonthlyIncome,
				Source:     SourceBatch,
			})
			if err != nil {
				results[i].Err = fmt.Errorf("row %d: %w", emp.Row, err)
				return nil
			}
			results[i].Result = Result{Employee: emp.Name, Breakdown: b}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("compute batch: %w", err)
	}

	// SQLite takes one writer at a time.
	failed := 0
	for i := range results {
		if results[i].Err != nil {
			failed++
			r.logger.WarnContext(ctx, "Roster row skipped",
				applog.NewFields().
					WithOperation(applog.OpCompute).
					WithRow(results[i].Employee.Row).
					WithEmployee(results[i].Employee.Name).
					WithError(results[i].Err).
					ToSlice()...)
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("record batch: %w", err)
		}
		results[i].Result = r.service.Record(ctx, results[i].Employee.Name, SourceBatch, results[i].Result.Breakdown)
	}

	r.logger.InfoContext(ctx, "Batch complete",
		applog.FieldCount, len(results),
		"failed", failed,
		"workers", r.workers)
	return results, nil
}

// Entries returns the successful results as workbook rows, in order.
func Entries(results []BatchResult) []report.Entry {
	out := make([]report.Entry, 0, len(results))
	for _, res := range results {
		if res.Err == nil {
			out = append(out, report.Entry{Name: res.Employee.Name, Breakdown: res.Result.Breakdown})
		}
	}
	return out
}
