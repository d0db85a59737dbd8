package payroll

import (
	"github.com/shopspring/decimal"

	"github.com/zenithhr/payroll-backend-go/internal/domain/employee"
	"github.com/zenithhr/payroll-backend-go/internal/domain/payroll"
)

// taxSlab is one bracket of a regime's slab table. A nil upTo marks the
// unbounded top bracket. Income strictly greater than upTo spills into the
// next bracket; income exactly at the boundary is taxed within it.
type taxSlab struct {
	upTo *decimal.Decimal
	rate decimal.Decimal
}

func upTo(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

// Slab tables are data, not inline arithmetic; they change with the Finance
// Act, the walker does not.
var (
	newRegimeSlabs = []taxSlab{
		{upTo: upTo(400_000), rate: decimal.Zero},
		{upTo: upTo(800_000), rate: decimal.NewFromInt(5)},
		{upTo: upTo(1_200_000), rate: decimal.NewFromInt(10)},
		{upTo: upTo(1_600_000), rate: decimal.NewFromInt(15)},
		{upTo: upTo(2_000_000), rate: decimal.NewFromInt(20)},
		{upTo: upTo(2_400_000), rate: decimal.NewFromInt(25)},
		{rate: decimal.NewFromInt(30)},
	}

	oldRegimeSlabs = []taxSlab{
		{upTo: upTo(250_000), rate: decimal.Zero},
		{upTo: upTo(500_000), rate: decimal.NewFromInt(5)},
		{upTo: upTo(1_000_000), rate: decimal.NewFromInt(20)},
		{rate: decimal.NewFromInt(30)},
	}

	newRegimeStandardDeduction = decimal.NewFromInt(75_000)
	newRegimeRebateLimit       = decimal.NewFromInt(1_200_000)

	oldRegimeStandardDeduction = decimal.NewFromInt(50_000)
	oldRegimeBaseDeduction     = decimal.NewFromInt(100_000)
	oldRegimeDeductionCap      = decimal.NewFromInt(150_000)
	oldRegimeRebateLimit       = decimal.NewFromInt(500_000)
)

// slabTax walks the bracket table, taxing the clipped portion of taxable
// income that falls within each band.
func slabTax(taxable decimal.Decimal, slabs []taxSlab) decimal.Decimal {
	tax := decimal.Zero
	lower := decimal.Zero

	for _, s := range slabs {
		if s.upTo != nil && taxable.GreaterThan(*s.upTo) {
			tax = tax.Add(s.upTo.Sub(lower).Mul(s.rate).Div(hundred))
			lower = *s.upTo
			continue
		}
		tax = tax.Add(taxable.Sub(lower).Mul(s.rate).Div(hundred))
		break
	}

	return tax
}

// Tax computes annual and monthly income tax for one regime.
// pfEmployeeAnnual feeds the old-regime 80C-style deduction; it is ignored
// under the new regime. Annualization happens once here, the monthly figure
// is annual/12.
func Tax(annualIncome decimal.Decimal, regime employee.TaxRegime, pfEmployeeAnnual decimal.Decimal) (payroll.TaxResult, error) {
	result := payroll.TaxResult{
		Regime:       regime,
		AnnualIncome: annualIncome,
	}

	var taxable decimal.Decimal
	var slabs []taxSlab
	var rebateLimit decimal.Decimal

	switch regime {
	case employee.TaxRegimeNew:
		taxable = annualIncome.Sub(newRegimeStandardDeduction)
		slabs = newRegimeSlabs
		rebateLimit = newRegimeRebateLimit

	case employee.TaxRegimeOld:
		deduction := pfEmployeeAnnual.Add(oldRegimeBaseDeduction)
		if deduction.GreaterThan(oldRegimeDeductionCap) {
			deduction = oldRegimeDeductionCap
		}
		taxable = annualIncome.Sub(oldRegimeStandardDeduction).Sub(deduction)
		slabs = oldRegimeSlabs
		rebateLimit = oldRegimeRebateLimit

	default:
		return payroll.TaxResult{}, payroll.ErrUnknownTaxRegime
	}

	if taxable.IsNegative() {
		taxable = decimal.Zero
	}
	result.TaxableIncome = taxable

	if taxable.GreaterThan(rebateLimit) {
		result.AnnualTax = roundRupee(slabTax(taxable, slabs).Mul(cessFactor))
	} else {
		result.AnnualTax = decimal.Zero
	}
	result.MonthlyTax = roundRupee(result.AnnualTax.Div(twelve))

	return result, nil
}
