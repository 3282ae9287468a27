package services

import (
	"context"

	"payslip/internal/amqp"
	"payslip/internal/storage"
)

// Ports for outbound adapters. Either may be nil when the feature is off.
type (
	HistoryWriter interface {
		Save(ctx context.Context, p storage.Payslip) (int64, error)
	}

	EventPublisher interface {
		PublishPayslip(ctx context.Context, msg *amqp.PayslipComputedMessage) error
	}
)
