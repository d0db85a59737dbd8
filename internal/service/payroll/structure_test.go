package payroll

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/zenithhr/payroll-backend-go/internal/domain/payroll"
)

func intPtr(v int) *int { return &v }

func TestMonthlyGross_MonthlyCTC(t *testing.T) {
	t.Parallel()

	gross := MonthlyGross(decimal.NewFromInt(50000), false, nil)
	assert.True(t, decimal.NewFromInt(50000).Equal(gross))
}

func TestMonthlyGross_YearlyCTC(t *testing.T) {
	t.Parallel()

	gross := MonthlyGross(decimal.NewFromInt(600000), true, nil)
	assert.True(t, decimal.NewFromInt(50000).Equal(gross))
}

func TestMonthlyGross_ProRatedByPayableDays(t *testing.T) {
	t.Parallel()

	// 30000 * 15 / 30 = 15000
	gross := MonthlyGross(decimal.NewFromInt(30000), false, intPtr(15))
	assert.True(t, decimal.NewFromInt(15000).Equal(gross))
}

func TestMonthlyGross_YearlyProRatedRoundsToRupee(t *testing.T) {
	t.Parallel()

	// 500000 / 12 * 20 / 30 = 27777.77.. -> 27778
	gross := MonthlyGross(decimal.NewFromInt(500000), true, intPtr(20))
	assert.True(t, decimal.NewFromInt(27778).Equal(gross), "got %s", gross)
}

func TestStructure_DefaultSplit(t *testing.T) {
	t.Parallel()
	cfg := payroll.DefaultSalaryConfig("company-1")

	s := Structure(decimal.NewFromInt(50000), cfg)

	assert.True(t, decimal.NewFromInt(20000).Equal(s.Basic))
	assert.True(t, decimal.NewFromInt(10000).Equal(s.HRA))
	assert.True(t, decimal.NewFromInt(5000).Equal(s.DA))
	assert.True(t, decimal.NewFromInt(2500).Equal(s.LTA))
	assert.True(t, decimal.NewFromInt(5000).Equal(s.Performance))
	assert.True(t, decimal.NewFromInt(7500).Equal(s.SpecialAllowance))
	assert.True(t, decimal.NewFromInt(50000).Equal(s.Gross))
}

func TestStructure_ComponentsSumToGross(t *testing.T) {
	t.Parallel()
	cfg := payroll.DefaultSalaryConfig("company-1")

	for _, gross := range []int64{1, 9999, 21000, 21001, 50000, 123457} {
		s := Structure(decimal.NewFromInt(gross), cfg)

		sum := s.Basic.Add(s.HRA).Add(s.DA).Add(s.LTA).Add(s.Performance).Add(s.SpecialAllowance)
		assert.True(t, s.Gross.Equal(sum), "gross %d: components sum to %s", gross, sum)
	}
}

func TestStructure_SpecialAllowanceNeverNegative(t *testing.T) {
	t.Parallel()
	cfg := payroll.DefaultSalaryConfig("company-1")
	cfg.BasicPercent = decimal.NewFromInt(90)
	cfg.HRAPercent = decimal.NewFromInt(30)

	s := Structure(decimal.NewFromInt(50000), cfg)

	assert.True(t, s.SpecialAllowance.IsZero())
}

func TestStructure_Idempotent(t *testing.T) {
	t.Parallel()
	cfg := payroll.DefaultSalaryConfig("company-1")
	gross := decimal.NewFromInt(37333)

	first := Structure(gross, cfg)
	second := Structure(gross, cfg)

	assert.Equal(t, first, second)
}
