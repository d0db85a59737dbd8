package payroll

import (
	"github.com/shopspring/decimal"

	"github.com/zenithhr/payroll-backend-go/internal/domain/payroll"
)

var (
	hundred     = decimal.NewFromInt(100)
	twelve      = decimal.NewFromInt(12)
	thirtyDays  = decimal.NewFromInt(30)
	cessFactor  = decimal.NewFromFloat(1.04)
	monthsFYear = 12
)

// roundRupee rounds to the whole rupee, half away from zero.
func roundRupee(d decimal.Decimal) decimal.Decimal {
	return d.Round(0)
}

// MonthlyGross derives the gross monthly salary from CTC, optionally
// pro-rated by payable days over a 30-day month.
func MonthlyGross(ctc decimal.Decimal, isYearly bool, payableDays *int) decimal.Decimal {
	gross := ctc
	if isYearly {
		gross = gross.Div(twelve)
	}
	if payableDays != nil {
		gross = gross.Mul(decimal.NewFromInt(int64(*payableDays))).Div(thirtyDays)
	}
	return roundRupee(gross)
}

// Structure splits gross into the named components. Each named component is
// an independent percentage of gross; Special Allowance absorbs the
// remainder, so the components always sum back to gross. A configuration
// whose percentages exceed 100 is rejected at save time; the clamp here only
// guards breakdowns computed against a stale config.
func Structure(gross decimal.Decimal, cfg payroll.SalaryConfig) payroll.SalaryStructure {
	component := func(pct decimal.Decimal) decimal.Decimal {
		return roundRupee(gross.Mul(pct).Div(hundred))
	}

	s := payroll.SalaryStructure{
		Basic:       component(cfg.BasicPercent),
		HRA:         component(cfg.HRAPercent),
		DA:          component(cfg.DAPercent),
		LTA:         component(cfg.LTAPercent),
		Performance: component(cfg.PerformancePercent),
		Gross:       gross,
	}

	named := s.Basic.Add(s.HRA).Add(s.DA).Add(s.LTA).Add(s.Performance)
	s.SpecialAllowance = gross.Sub(named)
	if s.SpecialAllowance.IsNegative() {
		s.SpecialAllowance = decimal.Zero
	}

	return s
}
