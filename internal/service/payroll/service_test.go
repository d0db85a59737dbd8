package payroll

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zenithhr/payroll-backend-go/internal/domain/employee"
	"github.com/zenithhr/payroll-backend-go/internal/domain/payroll"
)

// fakeConfigRepository stores at most one config per company.
type fakeConfigRepository struct {
	configs map[string]payroll.SalaryConfig
}

func newFakeConfigRepository() *fakeConfigRepository {
	return &fakeConfigRepository{configs: make(map[string]payroll.SalaryConfig)}
}

func (r *fakeConfigRepository) GetByCompanyID(ctx context.Context, companyID string) (payroll.SalaryConfig, error) {
	cfg, ok := r.configs[companyID]
	if !ok {
		return payroll.SalaryConfig{}, payroll.ErrSalaryConfigNotFound
	}
	return cfg, nil
}

func (r *fakeConfigRepository) Upsert(ctx context.Context, cfg payroll.SalaryConfig) (payroll.SalaryConfig, error) {
	r.configs[cfg.CompanyID] = cfg
	return cfg, nil
}

type fakeEmployeeRepository struct {
	employees map[string]employee.Employee
}

func newFakeEmployeeRepository() *fakeEmployeeRepository {
	return &fakeEmployeeRepository{employees: make(map[string]employee.Employee)}
}

func (r *fakeEmployeeRepository) GetByID(ctx context.Context, id string, companyID string) (employee.Employee, error) {
	emp, ok := r.employees[id]
	if !ok || emp.CompanyID != companyID {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (r *fakeEmployeeRepository) GetActiveByCompanyID(ctx context.Context, companyID string) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, emp := range r.employees {
		if emp.CompanyID == companyID && emp.IsActive {
			out = append(out, emp)
		}
	}
	return out, nil
}

var payrollTestTokenAuth = jwtauth.New("HS256", []byte("payroll-service-test-secret"), nil)

func payrollContext(t *testing.T) context.Context {
	t.Helper()
	token, _, err := payrollTestTokenAuth.Encode(map[string]interface{}{
		"user_id":    "user-1",
		"company_id": "company-1",
		"type":       "access",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestPayrollService_ComputeBreakdown_Monthly(t *testing.T) {
	t.Parallel()
	svc := NewPayrollService(nil, newFakeConfigRepository(), newFakeEmployeeRepository())

	breakdown, err := svc.ComputeBreakdown(payrollContext(t), payroll.ComputeBreakdownRequest{
		CTC:       decimal.NewFromInt(50000),
		TaxRegime: "new",
		AsOf:      strPtr("2025-03-15"),
	})

	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(50000).Equal(breakdown.Structure.Gross))
	assert.True(t, decimal.NewFromInt(20000).Equal(breakdown.Structure.Basic))

	// PF on capped 15000, ESI zero above the gross cap, PT top slab, no MLWF in March
	assert.True(t, decimal.NewFromInt(1800).Equal(breakdown.Statutory.PF.Employee))
	assert.True(t, decimal.NewFromInt(1950).Equal(breakdown.Statutory.PF.Employer))
	assert.True(t, breakdown.Statutory.ESI.Employee.IsZero())
	assert.True(t, decimal.NewFromInt(200).Equal(breakdown.Statutory.PT.Employee))
	assert.True(t, breakdown.Statutory.MLWF.Employee.IsZero())

	// annual 600000 under the new regime stays inside the rebate
	assert.True(t, breakdown.Tax.AnnualTax.IsZero())
	assert.True(t, decimal.NewFromInt(48000).Equal(breakdown.NetPayable), "got %s", breakdown.NetPayable)
}

func TestPayrollService_ComputeBreakdown_DisabledHeads(t *testing.T) {
	t.Parallel()
	svc := NewPayrollService(nil, newFakeConfigRepository(), newFakeEmployeeRepository())

	breakdown, err := svc.ComputeBreakdown(payrollContext(t), payroll.ComputeBreakdownRequest{
		CTC:       decimal.NewFromInt(50000),
		TaxRegime: "new",
		AsOf:      strPtr("2025-06-15"),
		PFEnabled: boolPtr(false),
		PTEnabled: boolPtr(false),
	})

	require.NoError(t, err)
	assert.True(t, breakdown.Statutory.PF.Employee.IsZero())
	assert.True(t, breakdown.Statutory.PT.Employee.IsZero())
	// MLWF still charged in June
	assert.True(t, decimal.NewFromInt(25).Equal(breakdown.Statutory.MLWF.Employee))
}

func TestPayrollService_ComputeBreakdown_InvalidRegime(t *testing.T) {
	t.Parallel()
	svc := NewPayrollService(nil, newFakeConfigRepository(), newFakeEmployeeRepository())

	_, err := svc.ComputeBreakdown(payrollContext(t), payroll.ComputeBreakdownRequest{
		CTC:       decimal.NewFromInt(50000),
		TaxRegime: "flat",
	})

	assert.Error(t, err)
}

func TestPayrollService_ComputeEmployeeBreakdown(t *testing.T) {
	t.Parallel()
	empRepo := newFakeEmployeeRepository()
	empRepo.employees["emp-1"] = employee.Employee{
		ID:         "emp-1",
		CompanyID:  "company-1",
		Name:       "Asha Rao",
		MonthlyCTC: decimal.NewFromInt(20000),
		TaxRegime:  employee.TaxRegimeNew,
		PFEnabled:  true,
		ESIEnabled: true,
		PTEnabled:  true,
		IsActive:   true,
	}
	svc := NewPayrollService(nil, newFakeConfigRepository(), empRepo)

	asOf := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	breakdown, err := svc.ComputeEmployeeBreakdown(payrollContext(t), "emp-1", asOf)

	require.NoError(t, err)
	require.NotNil(t, breakdown.EmployeeID)
	assert.Equal(t, "emp-1", *breakdown.EmployeeID)

	// gross 20000 is inside the ESI cap: 0.75% = 150, 3.25% = 650
	assert.True(t, decimal.NewFromInt(150).Equal(breakdown.Statutory.ESI.Employee))
	assert.True(t, decimal.NewFromInt(650).Equal(breakdown.Statutory.ESI.Employer))
	// basic 8000: PF 960 / 1040
	assert.True(t, decimal.NewFromInt(960).Equal(breakdown.Statutory.PF.Employee))
	// MLWF not enrolled
	assert.True(t, breakdown.Statutory.MLWF.Employee.IsZero())
}

func TestPayrollService_ComputeEmployeeBreakdown_Inactive(t *testing.T) {
	t.Parallel()
	empRepo := newFakeEmployeeRepository()
	empRepo.employees["emp-2"] = employee.Employee{
		ID:         "emp-2",
		CompanyID:  "company-1",
		MonthlyCTC: decimal.NewFromInt(20000),
		TaxRegime:  employee.TaxRegimeNew,
		IsActive:   false,
	}
	svc := NewPayrollService(nil, newFakeConfigRepository(), empRepo)

	_, err := svc.ComputeEmployeeBreakdown(payrollContext(t), "emp-2", time.Now())

	assert.ErrorIs(t, err, employee.ErrEmployeeInactive)
}

func TestPayrollService_ComputeCompanyBreakdowns_SkipsInactive(t *testing.T) {
	t.Parallel()
	empRepo := newFakeEmployeeRepository()
	empRepo.employees["emp-1"] = employee.Employee{
		ID:         "emp-1",
		CompanyID:  "company-1",
		MonthlyCTC: decimal.NewFromInt(20000),
		TaxRegime:  employee.TaxRegimeNew,
		PFEnabled:  true,
		IsActive:   true,
	}
	empRepo.employees["emp-2"] = employee.Employee{
		ID:         "emp-2",
		CompanyID:  "company-1",
		MonthlyCTC: decimal.NewFromInt(30000),
		TaxRegime:  employee.TaxRegimeNew,
		IsActive:   false,
	}
	svc := NewPayrollService(nil, newFakeConfigRepository(), empRepo)

	asOf := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	breakdowns, err := svc.ComputeCompanyBreakdowns(payrollContext(t), asOf)

	require.NoError(t, err)
	require.Len(t, breakdowns, 1)
	require.NotNil(t, breakdowns[0].EmployeeID)
	assert.Equal(t, "emp-1", *breakdowns[0].EmployeeID)
}

func TestPayrollService_GetConfig_DefaultsWhenUnset(t *testing.T) {
	t.Parallel()
	svc := NewPayrollService(nil, newFakeConfigRepository(), newFakeEmployeeRepository())

	cfg, err := svc.GetConfig(payrollContext(t))

	require.NoError(t, err)
	assert.Equal(t, "company-1", cfg.CompanyID)
	assert.True(t, decimal.NewFromInt(40).Equal(cfg.BasicPercent))
	assert.Equal(t, []int{6, 12}, cfg.MLWFMonths)
}

func TestPayrollService_UpdateConfig_MergesOntoDefaults(t *testing.T) {
	t.Parallel()
	repo := newFakeConfigRepository()
	svc := NewPayrollService(nil, repo, newFakeEmployeeRepository())

	hra := decimal.NewFromInt(25)
	updated, err := svc.UpdateConfig(payrollContext(t), payroll.UpdateSalaryConfigRequest{
		HRAPercent: &hra,
	})

	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(25).Equal(updated.HRAPercent))
	// untouched fields keep their defaults
	assert.True(t, decimal.NewFromInt(40).Equal(updated.BasicPercent))

	stored, err := repo.GetByCompanyID(context.Background(), "company-1")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(25).Equal(stored.HRAPercent))
}

func TestPayrollService_UpdateConfig_RejectsOverAllocatedPercentages(t *testing.T) {
	t.Parallel()
	repo := newFakeConfigRepository()
	svc := NewPayrollService(nil, repo, newFakeEmployeeRepository())

	// defaults already carry 45% besides basic; 60 pushes the total past 100
	basic := decimal.NewFromInt(60)
	_, err := svc.UpdateConfig(payrollContext(t), payroll.UpdateSalaryConfigRequest{
		BasicPercent: &basic,
	})

	assert.Error(t, err)
	// nothing was persisted
	_, err = repo.GetByCompanyID(context.Background(), "company-1")
	assert.ErrorIs(t, err, payroll.ErrSalaryConfigNotFound)
}

func TestPayrollService_UpdateConfig_RejectsPercentAbove100(t *testing.T) {
	t.Parallel()
	svc := NewPayrollService(nil, newFakeConfigRepository(), newFakeEmployeeRepository())

	basic := decimal.NewFromInt(120)
	_, err := svc.UpdateConfig(payrollContext(t), payroll.UpdateSalaryConfigRequest{
		BasicPercent: &basic,
	})

	assert.Error(t, err)
}

func TestPayrollService_ComputeBonus(t *testing.T) {
	t.Parallel()
	svc := NewPayrollService(nil, newFakeConfigRepository(), newFakeEmployeeRepository())

	summary, err := svc.ComputeBonus(payrollContext(t), payroll.ComputeBonusRequest{
		BasicSalary:     decimal.NewFromInt(10000),
		JoinDate:        "2020-01-01",
		FiscalYearStart: 2025,
	})

	require.NoError(t, err)
	assert.Len(t, summary.Months, 12)
	assert.True(t, decimal.NewFromInt(6996).Equal(summary.TotalBonus), "got %s", summary.TotalBonus)
}
