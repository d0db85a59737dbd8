package payroll

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/zenithhr/payroll-backend-go/internal/domain/employee"
)

// ValueSource records whether a statutory figure came from the rule engine or
// from a manual override. An override always fully replaces the computed
// value; the computed value is still kept for display.
type ValueSource string

const (
	ValueSourceComputed   ValueSource = "computed"
	ValueSourceOverridden ValueSource = "overridden"
)

// PTSlab is one row of the professional tax table. A nil UpTo marks the
// unbounded top slab.
type PTSlab struct {
	UpTo   *decimal.Decimal `json:"up_to,omitempty"`
	Amount decimal.Decimal  `json:"amount"`
}

// PTSlabTable is stored as JSONB so companies can carry state-specific tables.
type PTSlabTable []PTSlab

// Value implements driver.Valuer for database storage
func (t PTSlabTable) Value() (driver.Value, error) {
	if len(t) == 0 {
		return nil, nil
	}
	return json.Marshal(t)
}

// Scan implements sql.Scanner for database retrieval
func (t *PTSlabTable) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan PTSlabTable: invalid type")
	}

	return json.Unmarshal(bytes, t)
}

// AmountFor returns the monthly professional tax for a gross salary.
func (t PTSlabTable) AmountFor(gross decimal.Decimal) decimal.Decimal {
	for _, slab := range t {
		if slab.UpTo == nil || gross.LessThan(*slab.UpTo) {
			return slab.Amount
		}
	}
	return decimal.Zero
}

// MonthList holds the calendar months in which a half-yearly levy is charged.
type MonthList []time.Month

// Value implements driver.Valuer for database storage
func (m MonthList) Value() (driver.Value, error) {
	if len(m) == 0 {
		return nil, nil
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner for database retrieval
func (m *MonthList) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan MonthList: invalid type")
	}

	return json.Unmarshal(bytes, m)
}

// Contains reports whether month is in the list.
func (m MonthList) Contains(month time.Month) bool {
	for _, mm := range m {
		if mm == month {
			return true
		}
	}
	return false
}

// SalaryConfig - Company salary structure and statutory configuration.
// Component percentages are fractions of gross monthly salary; whatever the
// named components leave behind becomes Special Allowance.
type SalaryConfig struct {
	ID        string
	CompanyID string

	BasicPercent       decimal.Decimal
	HRAPercent         decimal.Decimal
	DAPercent          decimal.Decimal
	LTAPercent         decimal.Decimal
	PerformancePercent decimal.Decimal

	ESIEmployeePercent decimal.Decimal
	ESIEmployerPercent decimal.Decimal
	ESIGrossCap        decimal.Decimal

	PFEmployeePercent decimal.Decimal
	PFEmployerPercent decimal.Decimal
	PFWageCap         decimal.Decimal

	PTSlabs PTSlabTable

	MLWFEmployee decimal.Decimal
	MLWFEmployer decimal.Decimal
	MLWFMonths   MonthList

	BonusPercent decimal.Decimal
	BonusWageCap decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ComponentPercentTotal sums the named component percentages.
func (c SalaryConfig) ComponentPercentTotal() decimal.Decimal {
	return c.BasicPercent.
		Add(c.HRAPercent).
		Add(c.DAPercent).
		Add(c.LTAPercent).
		Add(c.PerformancePercent)
}

// DefaultSalaryConfig returns the statutory defaults a company starts from:
// ESI 0.75%/3.25% capped at 21000 gross, PF 12%/13% (12% EPF + 1% admin) on
// wages capped at 15000, the four-tier Maharashtra PT table, MLWF 25/75 in
// June and December, and Payment of Bonus Act 8.33% on basic capped at 7000.
func DefaultSalaryConfig(companyID string) SalaryConfig {
	upTo := func(v int64) *decimal.Decimal {
		d := decimal.NewFromInt(v)
		return &d
	}

	return SalaryConfig{
		CompanyID: companyID,

		BasicPercent:       decimal.NewFromInt(40),
		HRAPercent:         decimal.NewFromInt(20),
		DAPercent:          decimal.NewFromInt(10),
		LTAPercent:         decimal.NewFromInt(5),
		PerformancePercent: decimal.NewFromInt(10),

		ESIEmployeePercent: decimal.NewFromFloat(0.75),
		ESIEmployerPercent: decimal.NewFromFloat(3.25),
		ESIGrossCap:        decimal.NewFromInt(21000),

		PFEmployeePercent: decimal.NewFromInt(12),
		PFEmployerPercent: decimal.NewFromInt(13),
		PFWageCap:         decimal.NewFromInt(15000),

		PTSlabs: PTSlabTable{
			{UpTo: upTo(10000), Amount: decimal.Zero},
			{UpTo: upTo(15000), Amount: decimal.NewFromInt(150)},
			{UpTo: upTo(25000), Amount: decimal.NewFromInt(175)},
			{Amount: decimal.NewFromInt(200)},
		},

		MLWFEmployee: decimal.NewFromInt(25),
		MLWFEmployer: decimal.NewFromInt(75),
		MLWFMonths:   MonthList{time.June, time.December},

		BonusPercent: decimal.NewFromFloat(8.33),
		BonusWageCap: decimal.NewFromInt(7000),
	}
}

// SalaryStructure - monthly component breakdown derived from gross.
type SalaryStructure struct {
	Basic            decimal.Decimal `json:"basic"`
	HRA              decimal.Decimal `json:"hra"`
	DA               decimal.Decimal `json:"da"`
	LTA              decimal.Decimal `json:"lta"`
	Performance      decimal.Decimal `json:"performance"`
	SpecialAllowance decimal.Decimal `json:"special_allowance"`
	Gross            decimal.Decimal `json:"gross"`
}

// Contribution carries the resolved employee/employer figures for one
// statutory head plus the rule-engine values they were resolved from.
type Contribution struct {
	Employee decimal.Decimal `json:"employee"`
	Employer decimal.Decimal `json:"employer"`

	CalculatedEmployee decimal.Decimal `json:"calculated_employee"`
	CalculatedEmployer decimal.Decimal `json:"calculated_employer"`
	Source             ValueSource     `json:"source"`
}

// Total returns the combined employee + employer amount.
func (c Contribution) Total() decimal.Decimal {
	return c.Employee.Add(c.Employer)
}

// StatutoryBreakdown - PF/ESI/PT/MLWF for one month.
type StatutoryBreakdown struct {
	PF   Contribution `json:"pf"`
	ESI  Contribution `json:"esi"`
	PT   Contribution `json:"pt"`
	MLWF Contribution `json:"mlwf"`

	TotalEmployee decimal.Decimal `json:"total_employee"`
	TotalEmployer decimal.Decimal `json:"total_employer"`
}

// TaxResult - income tax under the selected regime. Annualization happens
// once; the monthly figure is annual/12.
type TaxResult struct {
	Regime        employee.TaxRegime `json:"regime"`
	AnnualIncome  decimal.Decimal    `json:"annual_income"`
	TaxableIncome decimal.Decimal    `json:"taxable_income"`
	AnnualTax     decimal.Decimal    `json:"annual_tax"`
	MonthlyTax    decimal.Decimal    `json:"monthly_tax"`
}

// BonusMonth - one month of the fiscal-year bonus register.
type BonusMonth struct {
	Year       int             `json:"year"`
	Month      time.Month      `json:"month"`
	Eligible   bool            `json:"eligible"`
	Amount     decimal.Decimal `json:"amount"`
	DaysWorked int             `json:"days_worked"`
}

// BonusSummary - Payment of Bonus Act accrual across April..March.
type BonusSummary struct {
	FiscalYearStart int             `json:"fiscal_year_start"`
	Months          []BonusMonth    `json:"months"`
	TotalBonus      decimal.Decimal `json:"total_bonus"`
	TotalDays       int             `json:"total_days"`
}

// SalaryBreakdown - the full monthly payslip computation.
type SalaryBreakdown struct {
	EmployeeID *string `json:"employee_id,omitempty"`

	MonthlyCTC decimal.Decimal `json:"monthly_ctc"`
	AnnualCTC  decimal.Decimal `json:"annual_ctc"`

	Structure SalaryStructure    `json:"structure"`
	Statutory StatutoryBreakdown `json:"statutory"`
	Tax       TaxResult          `json:"tax"`

	// Gross minus employee-side statutory and monthly tax.
	NetPayable decimal.Decimal `json:"net_payable"`
}
