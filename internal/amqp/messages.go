package amqp

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"payslip/internal/payroll"
)

// PayslipComputedType is the AMQP message type of payslip events.
const PayslipComputedType = "payslip.computed"

// PayslipComputedMessage announces one computed payslip. Amounts are
// encoded as decimal strings.
type PayslipComputedMessage struct {
	HistoryID          int64           `json:"history_id,omitempty"`
	Employee           string          `json:"employee,omitempty"`
	Source             string          `json:"source"`
	Income             decimal.Decimal `json:"income"`
	SSS                decimal.Decimal `json:"sss"`
	PhilHealth         decimal.Decimal `json:"philhealth"`
	PagIBIG            decimal.Decimal `json:"pagibig"`
	TotalContributions decimal.Decimal `json:"total_contributions"`
	TaxableIncome      decimal.Decimal `json:"taxable_income"`
	IncomeTax          decimal.Decimal `json:"income_tax"`
	NetPay             decimal.Decimal `json:"net_pay"`
	TaxBracket         string          `json:"tax_bracket"`
	Timestamp          time.Time       `json:"timestamp"`
}

// NewPayslipComputedMessage builds the event for a breakdown.
func NewPayslipComputedMessage(historyID int64, employee, source string, b payroll.Breakdown) *PayslipComputedMessage {
	return &PayslipComputedMessage{
		HistoryID:          historyID,
		Employee:           employee,
		Source:             source,
		Income:             b.Income,
		SSS:                b.SSS,
		PhilHealth:         b.PhilHealth,
		PagIBIG:            b.PagIBIG,
		TotalContributions: b.TotalContributions,
		TaxableIncome:      b.TaxableIncome,
		IncomeTax:          b.IncomeTax,
		NetPay:             b.NetPay,
		TaxBracket:         b.Brackets.IncomeTax,
		Timestamp:          time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *PayslipComputedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// PayslipComputedMessageFromJSON creates a message from JSON bytes
func PayslipComputedMessageFromJSON(data []byte) (*PayslipComputedMessage, error) {
	var msg PayslipComputedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
