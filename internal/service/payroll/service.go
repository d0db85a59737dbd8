package payroll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"

	"github.com/zenithhr/payroll-backend-go/internal/domain/employee"
	"github.com/zenithhr/payroll-backend-go/internal/domain/payroll"
	"github.com/zenithhr/payroll-backend-go/internal/pkg/database"
	"github.com/zenithhr/payroll-backend-go/internal/pkg/validator"
)

type PayrollServiceImpl struct {
	db           *database.DB
	configRepo   payroll.SalaryConfigRepository
	employeeRepo employee.EmployeeRepository
}

func NewPayrollService(
	db *database.DB,
	configRepo payroll.SalaryConfigRepository,
	employeeRepo employee.EmployeeRepository,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		db:           db,
		configRepo:   configRepo,
		employeeRepo: employeeRepo,
	}
}

// Helper to get company_id and user_id from JWT context
func getClaimsFromContext(ctx context.Context) (companyID, userID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", "", fmt.Errorf("company_id claim is missing or invalid")
	}

	userID, _ = claims["user_id"].(string)

	return companyID, userID, nil
}

func (s *PayrollServiceImpl) loadConfig(ctx context.Context, companyID string) (payroll.SalaryConfig, error) {
	cfg, err := s.configRepo.GetByCompanyID(ctx, companyID)
	if err != nil {
		if errors.Is(err, payroll.ErrSalaryConfigNotFound) {
			return payroll.DefaultSalaryConfig(companyID), nil
		}
		return payroll.SalaryConfig{}, err
	}
	return cfg, nil
}

// ========== BREAKDOWN ==========

// breakdownInput is the engine-facing shape shared by the raw and
// per-employee compute paths.
type breakdownInput struct {
	EmployeeID  *string
	MonthlyCTC  decimal.Decimal
	TaxRegime   employee.TaxRegime
	PayableDays *int

	PFEnabled   bool
	ESIEnabled  bool
	PTEnabled   bool
	MLWFEnabled bool

	Overrides payroll.StatutoryOverrides
}

// computeBreakdown is pure: structure, statutory and tax over the same
// inputs always yield the same breakdown for a given asOf.
func computeBreakdown(in breakdownInput, cfg payroll.SalaryConfig, asOf time.Time) (payroll.SalaryBreakdown, error) {
	gross := MonthlyGross(in.MonthlyCTC, false, in.PayableDays)
	structure := Structure(gross, cfg)

	statutory := Statutory(StatutoryInput{
		GrossMonthly: gross,
		Basic:        structure.Basic,
		PFEnabled:    in.PFEnabled,
		ESIEnabled:   in.ESIEnabled,
		PTEnabled:    in.PTEnabled,
		MLWFEnabled:  in.MLWFEnabled,
		Overrides:    in.Overrides,
	}, cfg, asOf)

	// Tax works on the unprorated annual figure; the resolved employee PF
	// feeds the old-regime deduction.
	annualIncome := in.MonthlyCTC.Mul(twelve)
	tax, err := Tax(annualIncome, in.TaxRegime, statutory.PF.Employee.Mul(twelve))
	if err != nil {
		return payroll.SalaryBreakdown{}, err
	}

	return payroll.SalaryBreakdown{
		EmployeeID: in.EmployeeID,
		MonthlyCTC: in.MonthlyCTC,
		AnnualCTC:  annualIncome,
		Structure:  structure,
		Statutory:  statutory,
		Tax:        tax,
		NetPayable: structure.Gross.Sub(statutory.TotalEmployee).Sub(tax.MonthlyTax),
	}, nil
}

func (s *PayrollServiceImpl) ComputeBreakdown(ctx context.Context, req payroll.ComputeBreakdownRequest) (payroll.SalaryBreakdown, error) {
	if err := req.Validate(); err != nil {
		return payroll.SalaryBreakdown{}, err
	}

	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.SalaryBreakdown{}, err
	}

	cfg, err := s.loadConfig(ctx, companyID)
	if err != nil {
		return payroll.SalaryBreakdown{}, err
	}

	asOf := time.Now()
	if req.AsOf != nil {
		asOf, _ = validator.IsValidDate(*req.AsOf)
	}

	monthlyCTC := req.CTC
	if req.IsYearly {
		monthlyCTC = req.CTC.Div(twelve)
	}

	enabled := func(v *bool) bool {
		return v == nil || *v
	}
	overrides := payroll.StatutoryOverrides{}
	if req.Overrides != nil {
		overrides = *req.Overrides
	}

	return computeBreakdown(breakdownInput{
		MonthlyCTC:  monthlyCTC,
		TaxRegime:   employee.TaxRegime(req.TaxRegime),
		PayableDays: req.PayableDays,
		PFEnabled:   enabled(req.PFEnabled),
		ESIEnabled:  enabled(req.ESIEnabled),
		PTEnabled:   enabled(req.PTEnabled),
		MLWFEnabled: enabled(req.MLWFEnabled),
		Overrides:   overrides,
	}, cfg, asOf)
}

func (s *PayrollServiceImpl) ComputeEmployeeBreakdown(ctx context.Context, employeeID string, asOf time.Time) (payroll.SalaryBreakdown, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.SalaryBreakdown{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, employeeID, companyID)
	if err != nil {
		return payroll.SalaryBreakdown{}, fmt.Errorf("failed to get employee: %w", err)
	}
	if !emp.IsActive {
		return payroll.SalaryBreakdown{}, employee.ErrEmployeeInactive
	}

	cfg, err := s.loadConfig(ctx, companyID)
	if err != nil {
		return payroll.SalaryBreakdown{}, err
	}

	return computeBreakdown(breakdownInput{
		EmployeeID:  &emp.ID,
		MonthlyCTC:  emp.MonthlyCTC,
		TaxRegime:   emp.TaxRegime,
		PFEnabled:   emp.PFEnabled,
		ESIEnabled:  emp.ESIEnabled,
		PTEnabled:   emp.PTEnabled,
		MLWFEnabled: emp.MLWFEnabled,
	}, cfg, asOf)
}

func (s *PayrollServiceImpl) ComputeCompanyBreakdowns(ctx context.Context, asOf time.Time) ([]payroll.SalaryBreakdown, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	employees, err := s.employeeRepo.GetActiveByCompanyID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	cfg, err := s.loadConfig(ctx, companyID)
	if err != nil {
		return nil, err
	}

	breakdowns := make([]payroll.SalaryBreakdown, 0, len(employees))
	for _, emp := range employees {
		b, err := computeBreakdown(breakdownInput{
			EmployeeID:  &emp.ID,
			MonthlyCTC:  emp.MonthlyCTC,
			TaxRegime:   emp.TaxRegime,
			PFEnabled:   emp.PFEnabled,
			ESIEnabled:  emp.ESIEnabled,
			PTEnabled:   emp.PTEnabled,
			MLWFEnabled: emp.MLWFEnabled,
		}, cfg, asOf)
		if err != nil {
			return nil, fmt.Errorf("failed to compute breakdown for employee %s: %w", emp.ID, err)
		}
		breakdowns = append(breakdowns, b)
	}

	return breakdowns, nil
}

// ========== BONUS ==========

func (s *PayrollServiceImpl) ComputeBonus(ctx context.Context, req payroll.ComputeBonusRequest) (payroll.BonusSummary, error) {
	if err := req.Validate(); err != nil {
		return payroll.BonusSummary{}, err
	}

	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.BonusSummary{}, err
	}

	cfg, err := s.loadConfig(ctx, companyID)
	if err != nil {
		return payroll.BonusSummary{}, err
	}

	joinDate, _ := validator.IsValidDate(req.JoinDate)
	applicable := req.BonusApplicable == nil || *req.BonusApplicable

	return Bonus(BonusInput{
		BasicSalary:     req.BasicSalary,
		JoinDate:        joinDate,
		BonusApplicable: applicable,
		FiscalYearStart: req.FiscalYearStart,
		DaysWorked:      req.DaysWorked,
	}, cfg), nil
}

// ========== CONFIG ==========

func (s *PayrollServiceImpl) GetConfig(ctx context.Context) (payroll.SalaryConfigResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.SalaryConfigResponse{}, err
	}

	cfg, err := s.loadConfig(ctx, companyID)
	if err != nil {
		return payroll.SalaryConfigResponse{}, err
	}

	return mapToConfigResponse(cfg), nil
}

func (s *PayrollServiceImpl) UpdateConfig(ctx context.Context, req payroll.UpdateSalaryConfigRequest) (payroll.SalaryConfigResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.SalaryConfigResponse{}, err
	}

	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.SalaryConfigResponse{}, err
	}

	current, err := s.loadConfig(ctx, companyID)
	if err != nil {
		return payroll.SalaryConfigResponse{}, err
	}

	// Apply updates
	applyDecimal := func(dst *decimal.Decimal, src *decimal.Decimal) {
		if src != nil {
			*dst = *src
		}
	}
	applyDecimal(&current.BasicPercent, req.BasicPercent)
	applyDecimal(&current.HRAPercent, req.HRAPercent)
	applyDecimal(&current.DAPercent, req.DAPercent)
	applyDecimal(&current.LTAPercent, req.LTAPercent)
	applyDecimal(&current.PerformancePercent, req.PerformancePercent)
	applyDecimal(&current.ESIEmployeePercent, req.ESIEmployeePercent)
	applyDecimal(&current.ESIEmployerPercent, req.ESIEmployerPercent)
	applyDecimal(&current.ESIGrossCap, req.ESIGrossCap)
	applyDecimal(&current.PFEmployeePercent, req.PFEmployeePercent)
	applyDecimal(&current.PFEmployerPercent, req.PFEmployerPercent)
	applyDecimal(&current.PFWageCap, req.PFWageCap)
	applyDecimal(&current.MLWFEmployee, req.MLWFEmployee)
	applyDecimal(&current.MLWFEmployer, req.MLWFEmployer)
	applyDecimal(&current.BonusPercent, req.BonusPercent)
	applyDecimal(&current.BonusWageCap, req.BonusWageCap)

	if req.PTSlabs != nil {
		current.PTSlabs = *req.PTSlabs
	}
	if req.MLWFMonths != nil {
		months := make(payroll.MonthList, 0, len(*req.MLWFMonths))
		for _, m := range *req.MLWFMonths {
			months = append(months, time.Month(m))
		}
		current.MLWFMonths = months
	}

	// The merged structure must still leave room for Special Allowance.
	if current.ComponentPercentTotal().GreaterThan(decimal.NewFromInt(100)) {
		return payroll.SalaryConfigResponse{}, payroll.ErrPercentagesExceeded
	}

	updated, err := s.configRepo.Upsert(ctx, current)
	if err != nil {
		return payroll.SalaryConfigResponse{}, err
	}

	return mapToConfigResponse(updated), nil
}

// ========== HELPERS ==========

func mapToConfigResponse(cfg payroll.SalaryConfig) payroll.SalaryConfigResponse {
	months := make([]int, 0, len(cfg.MLWFMonths))
	for _, m := range cfg.MLWFMonths {
		months = append(months, int(m))
	}

	return payroll.SalaryConfigResponse{
		ID:                 cfg.ID,
		CompanyID:          cfg.CompanyID,
		BasicPercent:       cfg.BasicPercent,
		HRAPercent:         cfg.HRAPercent,
		DAPercent:          cfg.DAPercent,
		LTAPercent:         cfg.LTAPercent,
		PerformancePercent: cfg.PerformancePercent,
		ESIEmployeePercent: cfg.ESIEmployeePercent,
		ESIEmployerPercent: cfg.ESIEmployerPercent,
		ESIGrossCap:        cfg.ESIGrossCap,
		PFEmployeePercent:  cfg.PFEmployeePercent,
		PFEmployerPercent:  cfg.PFEmployerPercent,
		PFWageCap:          cfg.PFWageCap,
		PTSlabs:            cfg.PTSlabs,
		MLWFEmployee:       cfg.MLWFEmployee,
		MLWFEmployer:       cfg.MLWFEmployer,
		MLWFMonths:         months,
		BonusPercent:       cfg.BonusPercent,
		BonusWageCap:       cfg.BonusWageCap,
	}
}
