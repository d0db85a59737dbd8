package payroll

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/zenithhr/payroll-backend-go/internal/domain/payroll"
)

// BonusInput describes one employee's fiscal year for the Payment of Bonus
// Act accrual.
type BonusInput struct {
	BasicSalary     decimal.Decimal
	JoinDate        time.Time
	BonusApplicable bool

	// Calendar year the fiscal year starts in (April..March).
	FiscalYearStart int

	// Worked days per fiscal month, April first. Missing months count 0.
	DaysWorked []int
}

// Bonus accrues the monthly bonus across a fiscal year. A month is eligible
// only when the employee had joined by its first day and the bonus flag is
// set; ineligible months contribute neither amount nor days.
func Bonus(in BonusInput, cfg payroll.SalaryConfig) payroll.BonusSummary {
	eligibleSalary := in.BasicSalary
	if eligibleSalary.GreaterThan(cfg.BonusWageCap) {
		eligibleSalary = cfg.BonusWageCap
	}
	monthlyAmount := roundRupee(eligibleSalary.Mul(cfg.BonusPercent).Div(hundred))

	summary := payroll.BonusSummary{
		FiscalYearStart: in.FiscalYearStart,
		Months:          make([]payroll.BonusMonth, 0, monthsFYear),
		TotalBonus:      decimal.Zero,
	}

	for i := 0; i < monthsFYear; i++ {
		monthStart := time.Date(in.FiscalYearStart, time.April, 1, 0, 0, 0, 0, time.UTC).AddDate(0, i, 0)

		m := payroll.BonusMonth{
			Year:   monthStart.Year(),
			Month:  monthStart.Month(),
			Amount: decimal.Zero,
		}

		if in.BonusApplicable && !in.JoinDate.After(monthStart) {
			m.Eligible = true
			m.Amount = monthlyAmount
			if i < len(in.DaysWorked) {
				m.DaysWorked = in.DaysWorked[i]
			}
		}

		summary.TotalBonus = summary.TotalBonus.Add(m.Amount)
		summary.TotalDays += m.DaysWorked
		summary.Months = append(summary.Months, m)
	}

	return summary
}
