// Package roster reads the employee list used by batch payslip runs.
package roster

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	ColumnName   = "Name"
	ColumnIncome = "Monthly Income"
)

var ErrMissingHeader = errors.New("roster header must contain Name and Monthly Income")

// Employee is one roster row. MonthlyIncome is kept as written so the
// configured input policy decides how it is read.
type Employee struct {
	Row           int
	Name          string
	MonthlyIncome string
}

// Parse reads a CSV roster. It returns the valid employees and one message
// per rejected row; the error is reserved for unreadable input or a
// missing header.
func Parse(r io.Reader) ([]Employee, []string, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read roster: %w", err)
	}

	if len(records) == 0 {
		return []Employee{}, nil, nil
	}

	nameCol, incomeCol := -1, -1
	for i, h := range records[0] {
		switch strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")) {
		case ColumnName:
			nameCol = i
		case ColumnIncome:
			incomeCol = i
		}
	}
	if nameCol < 0 || incomeCol < 0 {
		return nil, nil, ErrMissingHeader
	}

	employees := make([]Employee, 0, len(records)-1)
	var problems []string

	for i, record := range records[1:] {
		rowNum := i + 2
		if len(record) == 1 && strings.TrimSpace(record[0]) == "" {
			continue
		}
		if len(record) <= nameCol || len(record) <= incomeCol {
			problems = append(problems, fmt.Sprintf("Row %d: Not enough fields", rowNum))
			continue
		}

		name := strings.TrimSpace(record[nameCol])
		if name == "" {
			problems = append(problems, fmt.Sprintf("Row %d: missing Name", rowNum))
			continue
		}

		// An empty income is left to the input policy.
		employees = append(employees, Employee{
			Row:           rowNum,
			Name:          name,
			MonthlyIncome: strings.TrimSpace(record[incomeCol]),
		})
	}

	return employees, problems, nil
}
