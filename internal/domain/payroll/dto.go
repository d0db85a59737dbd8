package payroll

import (
	"github.com/shopspring/decimal"

	"github.com/zenithhr/payroll-backend-go/internal/pkg/validator"
)

// ========== COMPUTE DTOs ==========

// StatutoryOverrides carries manually adjusted figures. A non-nil field fully
// replaces the computed value for that head.
type StatutoryOverrides struct {
	PFEmployee   *decimal.Decimal `json:"pf_employee,omitempty"`
	PFEmployer   *decimal.Decimal `json:"pf_employer,omitempty"`
	ESIEmployee  *decimal.Decimal `json:"esi_employee,omitempty"`
	ESIEmployer  *decimal.Decimal `json:"esi_employer,omitempty"`
	PT           *decimal.Decimal `json:"pt,omitempty"`
	MLWFEmployee *decimal.Decimal `json:"mlwf_employee,omitempty"`
	MLWFEmployer *decimal.Decimal `json:"mlwf_employer,omitempty"`
}

func (o *StatutoryOverrides) Validate() error {
	var errs validator.ValidationErrors

	check := func(field string, v *decimal.Decimal) {
		if v != nil && v.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: field, Message: "must be non-negative"})
		}
	}
	check("pf_employee", o.PFEmployee)
	check("pf_employer", o.PFEmployer)
	check("esi_employee", o.ESIEmployee)
	check("esi_employer", o.ESIEmployer)
	check("pt", o.PT)
	check("mlwf_employee", o.MLWFEmployee)
	check("mlwf_employer", o.MLWFEmployer)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ComputeBreakdownRequest struct {
	CTC       decimal.Decimal `json:"ctc"`
	IsYearly  bool            `json:"is_yearly"`
	TaxRegime string          `json:"tax_regime"` // "old" or "new"

	// Pro-rating by payable days over a 30-day month; nil = full month.
	PayableDays *int `json:"payable_days,omitempty"`

	// Date the computation is anchored on (MLWF month gating). Defaults to
	// today when omitted; tests always pass it explicitly.
	AsOf *string `json:"as_of,omitempty"`

	// Statutory enrollment; nil defaults to enabled.
	PFEnabled   *bool `json:"pf_enabled,omitempty"`
	ESIEnabled  *bool `json:"esi_enabled,omitempty"`
	PTEnabled   *bool `json:"pt_enabled,omitempty"`
	MLWFEnabled *bool `json:"mlwf_enabled,omitempty"`

	Overrides *StatutoryOverrides `json:"overrides,omitempty"`
}

func (r *ComputeBreakdownRequest) Validate() error {
	var errs validator.ValidationErrors

	if !r.CTC.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "ctc", Message: "must be positive"})
	}
	if r.TaxRegime != "old" && r.TaxRegime != "new" {
		errs = append(errs, validator.ValidationError{Field: "tax_regime", Message: "must be 'old' or 'new'"})
	}
	if r.PayableDays != nil && (*r.PayableDays < 0 || *r.PayableDays > 31) {
		errs = append(errs, validator.ValidationError{Field: "payable_days", Message: "must be between 0 and 31"})
	}
	if r.AsOf != nil {
		if _, ok := validator.IsValidDate(*r.AsOf); !ok {
			errs = append(errs, validator.ValidationError{Field: "as_of", Message: "must be a valid date (YYYY-MM-DD)"})
		}
	}
	if r.Overrides != nil {
		if err := r.Overrides.Validate(); err != nil {
			if verrs, ok := err.(validator.ValidationErrors); ok {
				errs = append(errs, verrs...)
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========== BONUS DTOs ==========

type ComputeBonusRequest struct {
	BasicSalary     decimal.Decimal `json:"basic_salary"`
	JoinDate        string          `json:"join_date"` // YYYY-MM-DD
	BonusApplicable *bool           `json:"bonus_applicable,omitempty"`

	// Calendar year the fiscal year starts in (April of this year).
	FiscalYearStart int `json:"fiscal_year_start"`

	// Worked days per fiscal month, April first. Missing months count 0.
	DaysWorked []int `json:"days_worked,omitempty"`
}

func (r *ComputeBonusRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.BasicSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "basic_salary", Message: "must be non-negative"})
	}
	if _, ok := validator.IsValidDate(r.JoinDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "join_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if r.FiscalYearStart < 1950 {
		errs = append(errs, validator.ValidationError{Field: "fiscal_year_start", Message: "must be 1950 or later"})
	}
	if len(r.DaysWorked) > 12 {
		errs = append(errs, validator.ValidationError{Field: "days_worked", Message: "must not exceed 12 months"})
	}
	for _, d := range r.DaysWorked {
		if d < 0 || d > 31 {
			errs = append(errs, validator.ValidationError{Field: "days_worked", Message: "each month must be between 0 and 31 days"})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========== CONFIG DTOs ==========

type UpdateSalaryConfigRequest struct {
	BasicPercent       *decimal.Decimal `json:"basic_percent,omitempty"`
	HRAPercent         *decimal.Decimal `json:"hra_percent,omitempty"`
	DAPercent          *decimal.Decimal `json:"da_percent,omitempty"`
	LTAPercent         *decimal.Decimal `json:"lta_percent,omitempty"`
	PerformancePercent *decimal.Decimal `json:"performance_percent,omitempty"`

	ESIEmployeePercent *decimal.Decimal `json:"esi_employee_percent,omitempty"`
	ESIEmployerPercent *decimal.Decimal `json:"esi_employer_percent,omitempty"`
	ESIGrossCap        *decimal.Decimal `json:"esi_gross_cap,omitempty"`

	PFEmployeePercent *decimal.Decimal `json:"pf_employee_percent,omitempty"`
	PFEmployerPercent *decimal.Decimal `json:"pf_employer_percent,omitempty"`
	PFWageCap         *decimal.Decimal `json:"pf_wage_cap,omitempty"`

	PTSlabs *PTSlabTable `json:"pt_slabs,omitempty"`

	MLWFEmployee *decimal.Decimal `json:"mlwf_employee,omitempty"`
	MLWFEmployer *decimal.Decimal `json:"mlwf_employer,omitempty"`
	MLWFMonths   *[]int           `json:"mlwf_months,omitempty"`

	BonusPercent *decimal.Decimal `json:"bonus_percent,omitempty"`
	BonusWageCap *decimal.Decimal `json:"bonus_wage_cap,omitempty"`
}

func (r *UpdateSalaryConfigRequest) Validate() error {
	var errs validator.ValidationErrors

	percent := func(field string, v *decimal.Decimal) {
		if v != nil && (v.IsNegative() || v.GreaterThan(decimal.NewFromInt(100))) {
			errs = append(errs, validator.ValidationError{Field: field, Message: "must be between 0 and 100"})
		}
	}
	nonNegative := func(field string, v *decimal.Decimal) {
		if v != nil && v.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: field, Message: "must be non-negative"})
		}
	}

	percent("basic_percent", r.BasicPercent)
	percent("hra_percent", r.HRAPercent)
	percent("da_percent", r.DAPercent)
	percent("lta_percent", r.LTAPercent)
	percent("performance_percent", r.PerformancePercent)
	percent("esi_employee_percent", r.ESIEmployeePercent)
	percent("esi_employer_percent", r.ESIEmployerPercent)
	percent("pf_employee_percent", r.PFEmployeePercent)
	percent("pf_employer_percent", r.PFEmployerPercent)
	percent("bonus_percent", r.BonusPercent)
	nonNegative("esi_gross_cap", r.ESIGrossCap)
	nonNegative("pf_wage_cap", r.PFWageCap)
	nonNegative("mlwf_employee", r.MLWFEmployee)
	nonNegative("mlwf_employer", r.MLWFEmployer)
	nonNegative("bonus_wage_cap", r.BonusWageCap)

	if r.PTSlabs != nil {
		for _, slab := range *r.PTSlabs {
			if slab.Amount.IsNegative() {
				errs = append(errs, validator.ValidationError{Field: "pt_slabs", Message: "slab amounts must be non-negative"})
				break
			}
		}
	}
	if r.MLWFMonths != nil {
		for _, m := range *r.MLWFMonths {
			if !validator.IsValidMonth(m) {
				errs = append(errs, validator.ValidationError{Field: "mlwf_months", Message: "months must be between 1 and 12"})
				break
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SalaryConfigResponse struct {
	ID        string `json:"id,omitempty"`
	CompanyID string `json:"company_id"`

	BasicPercent       decimal.Decimal `json:"basic_percent"`
	HRAPercent         decimal.Decimal `json:"hra_percent"`
	DAPercent          decimal.Decimal `json:"da_percent"`
	LTAPercent         decimal.Decimal `json:"lta_percent"`
	PerformancePercent decimal.Decimal `json:"performance_percent"`

	ESIEmployeePercent decimal.Decimal `json:"esi_employee_percent"`
	ESIEmployerPercent decimal.Decimal `json:"esi_employer_percent"`
	ESIGrossCap        decimal.Decimal `json:"esi_gross_cap"`

	PFEmployeePercent decimal.Decimal `json:"pf_employee_percent"`
	PFEmployerPercent decimal.Decimal `json:"pf_employer_percent"`
	PFWageCap         decimal.Decimal `json:"pf_wage_cap"`

	PTSlabs PTSlabTable `json:"pt_slabs"`

	MLWFEmployee decimal.Decimal `json:"mlwf_employee"`
	MLWFEmployer decimal.Decimal `json:"mlwf_employer"`
	MLWFMonths   []int           `json:"mlwf_months"`

	BonusPercent decimal.Decimal `json:"bonus_percent"`
	BonusWageCap decimal.Decimal `json:"bonus_wage_cap"`
}
