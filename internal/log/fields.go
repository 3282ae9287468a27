package log

import (
	"github.com/shopspring/decimal"

	"payslip/internal/money"
	"payslip/internal/payroll"
)

// Common field names for structured logging
const (
	FieldComponent      = "component"
	FieldError          = "error"
	FieldOperation      = "operation"
	FieldEmployee       = "employee"
	FieldRow            = "row"
	FieldSource         = "source"
	FieldIncome         = "income"
	FieldPolicy         = "input_policy"
	FieldTaxable        = "taxable_income"
	FieldIncomeTax      = "income_tax"
	FieldNetPay         = "net_pay"
	FieldTaxBracket     = "tax_bracket"
	FieldSSSBracket     = "sss_bracket"
	FieldPHBracket      = "philhealth_bracket"
	FieldPagIBIGBracket = "pagibig_bracket"
	FieldHistoryID      = "history_id"
	FieldPath           = "path"
	FieldCount          = "count"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentPayroll = "payroll"
	ComponentStorage = "storage"
	ComponentAMQP    = "amqp"
	ComponentBatch   = "batch"
	ComponentReport  = "report"
)

// Operations defines standard operation names
const (
	OpCompute = "compute"
	OpParse   = "parse"
	OpRecord  = "record"
	OpPublish = "publish"
	OpExport  = "export"
	OpStartup = "startup"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithComponent adds component field
func (f LogFields) WithComponent(component string) LogFields {
	f[FieldComponent] = component
	return f
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithEmployee adds the employee name when one is known
func (f LogFields) WithEmployee(name string) LogFields {
	if name != "" {
		f[FieldEmployee] = name
	}
	return f
}

// WithRow adds the roster row number
func (f LogFields) WithRow(row int) LogFields {
	f[FieldRow] = row
	return f
}

// WithSource adds the command that produced a payslip
func (f LogFields) WithSource(source string) LogFields {
	f[FieldSource] = source
	return f
}

// WithPolicy adds the income input policy
func (f LogFields) WithPolicy(policy string) LogFields {
	f[FieldPolicy] = policy
	return f
}

// WithHistoryID adds the history record ID
func (f LogFields) WithHistoryID(id int64) LogFields {
	f[FieldHistoryID] = id
	return f
}

// WithBreakdown adds the headline figures and the brackets that produced them
func (f LogFields) WithBreakdown(b payroll.Breakdown) LogFields {
	f[FieldIncome] = amount(b.Income)
	f[FieldTaxable] = amount(b.TaxableIncome)
	f[FieldIncomeTax] = amount(b.IncomeTax)
	f[FieldNetPay] = amount(b.NetPay)
	f[FieldSSSBracket] = b.Brackets.SSS
	f[FieldPHBracket] = b.Brackets.PhilHealth
	f[FieldPagIBIGBracket] = b.Brackets.PagIBIG
	f[FieldTaxBracket] = b.Brackets.IncomeTax
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}

func amount(d decimal.Decimal) string {
	return money.Format(d)
}
