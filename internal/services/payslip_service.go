package services

import (
	"context"
	"fmt"

	"payslip/internal/amqp"
	applog "payslip/internal/log"
	"payslip/internal/payroll"
	"payslip/internal/storage"
)

// Sources recorded with every payslip.
const (
	SourceInteractive = "interactive"
	SourceBatch       = "batch"
)

// Request is one income to turn into a payslip.
type Request struct {
	Employee   string
	IncomeText string
	Source     string
}

// Result is a computed payslip. HistoryID is zero when history is off or
// the save failed.
type Result struct {
	Employee  string
	Breakdown payroll.Breakdown
	HistoryID int64
}

// PayslipService computes payslips, then records them in history and
// announces them on the broker. Recording is best effort: a history or
// broker failure is logged and never loses the computed payslip.
type PayslipService struct {
	policy    payroll.InputPolicy
	history   HistoryWriter
	publisher EventPublisher
	logger    *applog.Logger
}

func NewPayslipService(policy payroll.InputPolicy, history HistoryWriter, publisher EventPublisher, logger *applog.Logger) *PayslipService {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	return &PayslipService{
		policy:    policy,
		history:   history,
		publisher: publisher,
		logger:    logger.WithComponent(applog.ComponentPayroll),
	}
}

// Compute parses the income text under the service's input policy and
// builds the breakdown. It touches neither history nor the broker.
func (s *PayslipService) Compute(req Request) (payroll.Breakdown, error) {
	income, err := payroll.ParseIncome(req.IncomeText, s.policy)
	if err != nil {
		s.logger.Warn("Monthly income rejected",
			applog.NewFields().
				WithOperation(applog.OpParse).
				WithEmployee(req.Employee).
				WithPolicy(string(s.policy)).
				WithError(err).
				ToSlice()...)
		return payroll.Breakdown{}, fmt.Errorf("parse monthly income: %w", err)
	}

	b := payroll.Compute(income)
	s.logger.Debug("Payslip computed",
		applog.NewFields().
			WithOperation(applog.OpCompute).
			WithEmployee(req.Employee).
			WithBreakdown(b).
			ToSlice()...)
	return b, nil
}

// Calculate computes a payslip and records it.
func (s *PayslipService) Calculate(ctx context.Context, req Request) (Result, error) {
	b, err := s.Compute(req)
	if err != nil {
		return Result{}, err
	}
	return s.Record(ctx, req.Employee, req.Source, b), nil
}

// Record saves b to history first, then publishes the event carrying the
// history ID.
func (s *PayslipService) Record(ctx context.Context, employee, source string, b payroll.Breakdown) Result {
	res := Result{Employee: employee, Breakdown: b}

	if s.history != nil {
		id, err := s.history.Save(ctx, storage.Payslip{Employee: employee, Source: source, Breakdown: b})
		if err != nil {
			s.logger.ErrorContext(ctx, "Failed to save payslip history",
				applog.NewFields().
					WithOperation(applog.OpRecord).
					WithEmployee(employee).
					WithError(err).
					ToSlice()...)
		} else {
			res.HistoryID = id
			s.logger.DebugContext(ctx, "Payslip recorded",
				applog.NewFields().
					WithOperation(applog.OpRecord).
					WithEmployee(employee).
					WithSource(source).
					WithHistoryID(id).
					ToSlice()...)
		}
	}

	if s.publisher != nil {
		msg := amqp.NewPayslipComputedMessage(res.HistoryID, employee, source, b)
		if err := s.publisher.PublishPayslip(ctx, msg); err != nil {
			s.logger.ErrorContext(ctx, "Failed to publish payslip event",
				applog.NewFields().
					WithOperation(applog.OpPublish).
					WithEmployee(employee).
					WithHistoryID(res.HistoryID).
					WithError(err).
					ToSlice()...)
		}
	}

	return res
}
