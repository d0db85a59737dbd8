package payroll

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/zenithhr/payroll-backend-go/internal/domain/payroll"
)

func bonusInput(basic int64, joined time.Time) BonusInput {
	return BonusInput{
		BasicSalary:     decimal.NewFromInt(basic),
		JoinDate:        joined,
		BonusApplicable: true,
		FiscalYearStart: 2025,
	}
}

func TestBonus_FullYearAtWageCap(t *testing.T) {
	t.Parallel()
	cfg := payroll.DefaultSalaryConfig("company-1")

	// basic above the 7000 cap: 7000 * 8.33% = 583.1 -> 583 per month
	summary := Bonus(bonusInput(10000, time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)), cfg)

	assert.Len(t, summary.Months, 12)
	assert.Equal(t, time.April, summary.Months[0].Month)
	assert.Equal(t, 2025, summary.Months[0].Year)
	assert.Equal(t, time.March, summary.Months[11].Month)
	assert.Equal(t, 2026, summary.Months[11].Year)
	for _, m := range summary.Months {
		assert.True(t, m.Eligible)
		assert.True(t, decimal.NewFromInt(583).Equal(m.Amount))
	}
	assert.True(t, decimal.NewFromInt(6996).Equal(summary.TotalBonus), "got %s", summary.TotalBonus)
}

func TestBonus_BasicBelowWageCap(t *testing.T) {
	t.Parallel()
	cfg := payroll.DefaultSalaryConfig("company-1")

	// 6000 * 8.33% = 499.8 -> 500 per month
	summary := Bonus(bonusInput(6000, time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)), cfg)

	assert.True(t, decimal.NewFromInt(6000).Equal(summary.TotalBonus), "got %s", summary.TotalBonus)
}

func TestBonus_MidYearJoinerAccruesFromNextMonthStart(t *testing.T) {
	t.Parallel()
	cfg := payroll.DefaultSalaryConfig("company-1")

	// joined 15 September: September's first day precedes the join date, so
	// accrual starts in October
	summary := Bonus(bonusInput(10000, time.Date(2025, time.September, 15, 0, 0, 0, 0, time.UTC)), cfg)

	eligible := 0
	for _, m := range summary.Months {
		if m.Eligible {
			eligible++
		}
	}
	assert.Equal(t, 6, eligible)
	assert.False(t, summary.Months[5].Eligible, "September should be ineligible")
	assert.True(t, summary.Months[6].Eligible, "October should be eligible")
	assert.True(t, decimal.NewFromInt(3498).Equal(summary.TotalBonus), "got %s", summary.TotalBonus)
}

func TestBonus_JoinOnMonthFirstDayIsEligible(t *testing.T) {
	t.Parallel()
	cfg := payroll.DefaultSalaryConfig("company-1")

	summary := Bonus(bonusInput(10000, time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)), cfg)

	assert.True(t, summary.Months[3].Eligible, "July should be eligible")
	assert.False(t, summary.Months[2].Eligible, "June should be ineligible")
}

func TestBonus_JoinedAfterFiscalYear(t *testing.T) {
	t.Parallel()
	cfg := payroll.DefaultSalaryConfig("company-1")

	summary := Bonus(bonusInput(10000, time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)), cfg)

	assert.True(t, summary.TotalBonus.IsZero())
	for _, m := range summary.Months {
		assert.False(t, m.Eligible)
	}
}

func TestBonus_NotApplicable(t *testing.T) {
	t.Parallel()
	cfg := payroll.DefaultSalaryConfig("company-1")

	in := bonusInput(10000, time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC))
	in.BonusApplicable = false
	in.DaysWorked = []int{30, 30, 30}

	summary := Bonus(in, cfg)

	assert.True(t, summary.TotalBonus.IsZero())
	assert.Equal(t, 0, summary.TotalDays)
}

func TestBonus_DaysCountedOnlyWhenEligible(t *testing.T) {
	t.Parallel()
	cfg := payroll.DefaultSalaryConfig("company-1")

	// joined 1 June: April and May are ineligible, their days never count
	in := bonusInput(10000, time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC))
	in.DaysWorked = []int{30, 31, 28, 20}

	summary := Bonus(in, cfg)

	assert.Equal(t, 0, summary.Months[0].DaysWorked)
	assert.Equal(t, 0, summary.Months[1].DaysWorked)
	assert.Equal(t, 28, summary.Months[2].DaysWorked)
	assert.Equal(t, 20, summary.Months[3].DaysWorked)
	assert.Equal(t, 48, summary.TotalDays)
}
