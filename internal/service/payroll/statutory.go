package payroll

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/zenithhr/payroll-backend-go/internal/domain/payroll"
)

// StatutoryInput is everything the statutory rules need for one month.
// Eligibility gates resolve to zero, never to an error.
type StatutoryInput struct {
	GrossMonthly decimal.Decimal
	Basic        decimal.Decimal

	PFEnabled   bool
	ESIEnabled  bool
	PTEnabled   bool
	MLWFEnabled bool

	Overrides payroll.StatutoryOverrides
}

// resolve applies the override-wins rule for one statutory head. The computed
// figures are always kept alongside the resolved ones.
func resolve(calcEmployee, calcEmployer decimal.Decimal, ovEmployee, ovEmployer *decimal.Decimal) payroll.Contribution {
	c := payroll.Contribution{
		Employee:           calcEmployee,
		Employer:           calcEmployer,
		CalculatedEmployee: calcEmployee,
		CalculatedEmployer: calcEmployer,
		Source:             payroll.ValueSourceComputed,
	}

	if ovEmployee != nil {
		c.Employee = *ovEmployee
		c.Source = payroll.ValueSourceOverridden
	}
	if ovEmployer != nil {
		c.Employer = *ovEmployer
		c.Source = payroll.ValueSourceOverridden
	}

	return c
}

// Statutory computes the monthly PF/ESI/PT/MLWF contributions. asOf anchors
// the half-yearly MLWF charge; it is always passed in explicitly so the
// calculation stays deterministic.
func Statutory(in StatutoryInput, cfg payroll.SalaryConfig, asOf time.Time) payroll.StatutoryBreakdown {
	var b payroll.StatutoryBreakdown

	// PF: wage base capped, employer rate carries the admin charge.
	pfEmployee, pfEmployer := decimal.Zero, decimal.Zero
	if in.PFEnabled {
		base := in.Basic
		if base.GreaterThan(cfg.PFWageCap) {
			base = cfg.PFWageCap
		}
		pfEmployee = roundRupee(base.Mul(cfg.PFEmployeePercent).Div(hundred))
		pfEmployer = roundRupee(base.Mul(cfg.PFEmployerPercent).Div(hundred))
	}
	b.PF = resolve(pfEmployee, pfEmployer, in.Overrides.PFEmployee, in.Overrides.PFEmployer)

	// ESI: gross-capped eligibility, both sides on full gross.
	esiEmployee, esiEmployer := decimal.Zero, decimal.Zero
	if in.ESIEnabled && in.GrossMonthly.LessThanOrEqual(cfg.ESIGrossCap) {
		esiEmployee = roundRupee(in.GrossMonthly.Mul(cfg.ESIEmployeePercent).Div(hundred))
		esiEmployer = roundRupee(in.GrossMonthly.Mul(cfg.ESIEmployerPercent).Div(hundred))
	}
	b.ESI = resolve(esiEmployee, esiEmployer, in.Overrides.ESIEmployee, in.Overrides.ESIEmployer)

	// PT: slab lookup on gross, employee side only.
	pt := decimal.Zero
	if in.PTEnabled {
		pt = cfg.PTSlabs.AmountFor(in.GrossMonthly)
	}
	b.PT = resolve(pt, decimal.Zero, in.Overrides.PT, nil)

	// MLWF: fixed amounts in the configured months, never pro-rated.
	mlwfEmployee, mlwfEmployer := decimal.Zero, decimal.Zero
	if in.MLWFEnabled && cfg.MLWFMonths.Contains(asOf.Month()) {
		mlwfEmployee = cfg.MLWFEmployee
		mlwfEmployer = cfg.MLWFEmployer
	}
	b.MLWF = resolve(mlwfEmployee, mlwfEmployer, in.Overrides.MLWFEmployee, in.Overrides.MLWFEmployer)

	b.TotalEmployee = b.PF.Employee.Add(b.ESI.Employee).Add(b.PT.Employee).Add(b.MLWF.Employee)
	b.TotalEmployer = b.PF.Employer.Add(b.ESI.Employer).Add(b.PT.Employer).Add(b.MLWF.Employer)

	return b
}
