package payroll

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertAmount(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.True(t, d(want).Equal(got), append([]any{"want %s, got %s", want, got}, msgAndArgs...)...)
}

func TestComputeSSS(t *testing.T) {
	cases := []struct {
		income string
		want   string
	}{
		{"0", "135.00"},
		{"3249.99", "135.00"},
		{"3250.00", "1125.00"}, // gap between the minimum and graduated brackets
		{"3500", "1125.00"},
		{"4249.99", "1125.00"},
		{"4250.00", "180.00"},
		{"10000", "450.00"},
		{"18000", "810.00"},
		{"24749.99", "1102.50"},
		{"24750", "1125.00"},
		{"30000", "1125.00"},
	}
	for _, tc := range cases {
		t.Run(tc.income, func(t *testing.T) {
			assertAmount(t, tc.want, ComputeSSS(d(tc.income)))
		})
	}
}

func TestComputePhilHealth(t *testing.T) {
	cases := []struct {
		income string
		want   string
	}{
		{"0", "200.00"},
		{"10000.00", "200.00"},
		{"10000.01", "400.0002"},
		{"20000.00", "400.00"},
		{"30000", "600.00"},
		{"79999.99", "1599.9998"},
		{"80000", "1600.00"},
		{"100000", "1600.00"},
	}
	for _, tc := range cases {
		t.Run(tc.income, func(t *testing.T) {
			assertAmount(t, tc.want, ComputePhilHealth(d(tc.income)))
		})
	}
}

func TestComputePagIBIG(t *testing.T) {
	cases := []struct {
		income string
		want   string
	}{
		{"0", "0"},
		{"1000", "10.00"},
		{"1500.00", "15.00"},
		{"1500.01", "30.0002"},
		{"3000", "60.00"},
		{"4999.99", "99.9998"},
		{"5000", "100.00"},
		{"10000", "100.00"},
	}
	for _, tc := range cases {
		t.Run(tc.income, func(t *testing.T) {
			assertAmount(t, tc.want, ComputePagIBIG(d(tc.income)))
		})
	}
}

func TestComputeMonthlyTax(t *testing.T) {
	cases := []struct {
		taxable string
		want    string
		bracket string
	}{
		{"0", "0", "exempt"},
		{"20000", "0", "exempt"},
		{"20833.00", "0", "20%"},
		{"25000", "833.40", "20%"},
		{"28175", "1468.40", "20%"},
		{"33332.99", "2499.998", "20%"},
		{"33333.00", "2500.00", "25%"},
		{"66667.00", "10833.33", "30%"},
		{"166667.00", "40833.33", "32%"},
		{"666667.00", "200833.33", "35%"},
		{"700000", "212499.88", "35%"},
	}
	for _, tc := range cases {
		t.Run(tc.taxable, func(t *testing.T) {
			assertAmount(t, tc.want, ComputeMonthlyTax(d(tc.taxable)))

			got, name := IncomeTax.Apply(d(tc.taxable))
			assertAmount(t, tc.want, got)
			assert.Equal(t, tc.bracket, name)
		})
	}
}

func TestIncomeTax_SeamsFallThrough(t *testing.T) {
	for _, x := range []string{"33332.995", "66666.995", "166666.995", "666666.995"} {
		assert.Equal(t, "35%", IncomeTax.Match(d(x)).Name, x)
	}
}

func TestCompute(t *testing.T) {
	cases := []struct {
		name   string
		income string
		want   map[string]string
	}{
		{
			name:   "30000",
			income: "30000",
			want: map[string]string{
				"sss": "1125.00", "philhealth": "600.00", "pagibig": "100.00",
				"total": "1825.00", "taxable": "28175.00", "tax": "1468.40",
				"deductions": "3293.40", "net": "26706.60",
			},
		},
		{
			name:   "18000",
			income: "18000",
			want: map[string]string{
				"sss": "810.00", "philhealth": "360.00", "pagibig": "100.00",
				"total": "1270.00", "taxable": "16730.00", "tax": "0",
				"deductions": "1270.00", "net": "16730.00",
			},
		},
		{
			name:   "zero income loses the sign of pay after deductions",
			income: "0",
			want: map[string]string{
				"sss": "135.00", "philhealth": "200.00", "pagibig": "0",
				"total": "335.00", "taxable": "335.00", "tax": "0",
				"deductions": "335.00", "net": "-335.00",
			},
		},
		{
			name:   "top bracket",
			income: "1000000",
			want: map[string]string{
				"sss": "1125.00", "philhealth": "1600.00", "pagibig": "100.00",
				"total": "2825.00", "taxable": "997175.00", "tax": "316511.13",
				"deductions": "319336.13", "net": "680663.87",
			},
		},
		{
			name:   "contributions rounded before summing",
			income: "79999.99",
			want: map[string]string{
				"sss": "1125.00", "philhealth": "1600.00", "pagibig": "100.00",
				"total": "2825.00", "taxable": "77174.99", "tax": "13985.73",
				"deductions": "16810.73", "net": "63189.26",
			},
		},
		{
			name:   "income beyond int64",
			income: "20000000000000000000",
			want: map[string]string{
				"sss": "1125.00", "philhealth": "1600.00", "pagibig": "100.00",
				"total": "2825.00", "taxable": "19999999999999997175", "tax": "6999999999999966511.13",
				"deductions": "6999999999999969336.13", "net": "13000000000000030663.87",
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := Compute(d(tc.income))
			assertAmount(t, tc.income, b.Income, "income")
			assertAmount(t, tc.want["sss"], b.SSS, "sss")
			assertAmount(t, tc.want["philhealth"], b.PhilHealth, "philhealth")
			assertAmount(t, tc.want["pagibig"], b.PagIBIG, "pagibig")
			assertAmount(t, tc.want["total"], b.TotalContributions, "total")
			assertAmount(t, tc.want["taxable"], b.TaxableIncome, "taxable")
			assertAmount(t, tc.want["tax"], b.IncomeTax, "tax")
			assertAmount(t, tc.want["deductions"], b.TotalDeductions, "deductions")
			assertAmount(t, tc.want["net"], b.NetPay, "net")
		})
	}
}

func TestCompute_Idempotent(t *testing.T) {
	for _, income := range []string{"0", "4250", "30000", "123456.78"} {
		first := Compute(d(income))
		second := Compute(d(income))
		assert.Equal(t, first.Brackets, second.Brackets)
		assert.True(t, first.NetPay.Equal(second.NetPay))
		assert.True(t, first.IncomeTax.Equal(second.IncomeTax))
	}
}

func TestParseIncome(t *testing.T) {
	t.Run("permissive", func(t *testing.T) {
		for in, want := range map[string]string{
			"18000":      "18000",
			"₱18,000.00": "18000",
			"-500":       "500",
			"garbage":    "0",
			"":           "0",
		} {
			got, err := ParseIncome(in, Permissive)
			require.NoError(t, err)
			assertAmount(t, want, got, in)
		}
	})

	t.Run("strict", func(t *testing.T) {
		got, err := ParseIncome(" 18000.50\n", Strict)
		require.NoError(t, err)
		assertAmount(t, "18000.50", got)

		_, err = ParseIncome("₱18,000.00", Strict)
		assert.ErrorIs(t, err, ErrInvalidIncome)

		_, err = ParseIncome("-1", Strict)
		assert.ErrorIs(t, err, ErrNegativeIncome)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := ParseIncome("1", InputPolicy("loose"))
		assert.ErrorIs(t, err, ErrUnknownPolicy)
	})
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy(" Strict ")
	require.NoError(t, err)
	assert.Equal(t, Strict, p)

	_, err = ParsePolicy("lenient")
	assert.ErrorIs(t, err, ErrUnknownPolicy)
}
