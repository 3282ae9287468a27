package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"payslip/internal/money"
	"payslip/internal/payroll"

	_ "modernc.org/sqlite"
)

var ErrNotFound = errors.New("payslip not found")

// Payslip is a breakdown to be recorded, with who it was for and which
// command produced it.
type Payslip struct {
	Employee  string
	Source    string
	Breakdown payroll.Breakdown
}

// Record is a stored payslip. Amounts are read back from integer cents.
type Record struct {
	ID                 int64
	Employee           string
	Source             string
	Income             decimal.Decimal
	SSS                decimal.Decimal
	PhilHealth         decimal.Decimal
	PagIBIG            decimal.Decimal
	TotalContributions decimal.Decimal
	TaxableIncome      decimal.Decimal
	IncomeTax          decimal.Decimal
	NetPay             decimal.Decimal
	TaxBracket         string
	CreatedAt          time.Time
}

// Breakdown rebuilds the payslip figures of a stored record. Only the tax
// bracket name survives storage.
func (r Record) Breakdown() payroll.Breakdown {
	return payroll.Breakdown{
		Income:             r.Income,
		SSS:                r.SSS,
		PhilHealth:         r.PhilHealth,
		PagIBIG:            r.PagIBIG,
		TotalContributions: r.TotalContributions,
		TaxableIncome:      r.TaxableIncome,
		IncomeTax:          r.IncomeTax,
		TotalDeductions:    r.TotalContributions.Add(r.IncomeTax),
		NetPay:             r.NetPay,
		Brackets:           payroll.Brackets{IncomeTax: r.TaxBracket},
	}
}

type SQLiteRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	// Run migrations
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db, now: time.Now}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Save records a payslip and returns its ID.
func (r *SQLiteRepository) Save(ctx context.Context, p Payslip) (int64, error) {
	b := p.Breakdown
	cents, err := breakdownCents(b)
	if err != nil {
		return 0, fmt.Errorf("save payslip: %w", err)
	}

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO payslips (
			employee, source, income_cents, sss_cents, philhealth_cents, pagibig_cents,
			total_contributions_cents, taxable_income_cents, income_tax_cents, net_pay_cents,
			tax_bracket, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Employee, p.Source,
		cents[0], cents[1], cents[2], cents[3], cents[4], cents[5], cents[6], cents[7],
		b.Brackets.IncomeTax, r.now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("insert payslip: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read payslip id: %w", err)
	}

	slog.DebugContext(ctx, "Payslip saved to SQLite",
		"id", id,
		"employee", p.Employee,
		"source", p.Source,
		"net_pay_cents", cents[7])

	return id, nil
}

// breakdownCents converts the stored amounts in column order.
func breakdownCents(b payroll.Breakdown) ([8]int64, error) {
	var out [8]int64
	for i, d := range []decimal.Decimal{
		b.Income, b.SSS, b.PhilHealth, b.PagIBIG,
		b.TotalContributions, b.TaxableIncome, b.IncomeTax, b.NetPay,
	} {
		c, err := money.Cents(d)
		if err != nil {
			return out, err
		}
		out[i] = c
	}
	return out, nil
}

const selectColumns = `
	SELECT id, employee, source, income_cents, sss_cents, philhealth_cents, pagibig_cents,
		total_contributions_cents, taxable_income_cents, income_tax_cents, net_pay_cents,
		tax_bracket, created_at
	FROM payslips`

// Get returns the payslip with the given ID.
func (r *SQLiteRepository) Get(ctx context.Context, id int64) (Record, error) {
	row := r.db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if err != nil {
		return Record{}, fmt.Errorf("get payslip %d: %w", id, err)
	}
	return rec, nil
}

// Recent returns up to limit payslips, newest first.
func (r *SQLiteRepository) Recent(ctx context.Context, limit int) ([]Record, error) {
	return r.query(ctx, selectColumns+` ORDER BY id DESC LIMIT ?`, limit)
}

// ByEmployee returns every payslip recorded for an employee, oldest first.
func (r *SQLiteRepository) ByEmployee(ctx context.Context, employee string) ([]Record, error) {
	return r.query(ctx, selectColumns+` WHERE employee = ? ORDER BY id`, employee)
}

func (r *SQLiteRepository) query(ctx context.Context, q string, args ...any) ([]Record, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query payslips: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payslip: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate payslips: %w", err)
	}
	return records, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (Record, error) {
	var (
		rec                                           Record
		income, sss, ph, pagibig, total, taxable, tax int64
		net                                           int64
		createdAt                                     string
	)
	err := s.Scan(&rec.ID, &rec.Employee, &rec.Source, &income, &sss, &ph, &pagibig,
		&total, &taxable, &tax, &net, &rec.TaxBracket, &createdAt)
	if err != nil {
		return Record{}, err
	}

	rec.Income = money.FromCents(income)
	rec.SSS = money.FromCents(sss)
	rec.PhilHealth = money.FromCents(ph)
	rec.PagIBIG = money.FromCents(pagibig)
	rec.TotalContributions = money.FromCents(total)
	rec.TaxableIncome = money.FromCents(taxable)
	rec.IncomeTax = money.FromCents(tax)
	rec.NetPay = money.FromCents(net)

	if rec.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return Record{}, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	return rec, nil
}
