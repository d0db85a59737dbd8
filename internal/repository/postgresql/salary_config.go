package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/zenithhr/payroll-backend-go/internal/domain/payroll"
	"github.com/zenithhr/payroll-backend-go/internal/pkg/database"
)

type salaryConfigRepository struct {
	db *database.DB
}

func NewSalaryConfigRepository(db *database.DB) payroll.SalaryConfigRepository {
	return &salaryConfigRepository{db: db}
}

func (r *salaryConfigRepository) GetByCompanyID(ctx context.Context, companyID string) (payroll.SalaryConfig, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id,
			   basic_percent, hra_percent, da_percent, lta_percent, performance_percent,
			   esi_employee_percent, esi_employer_percent, esi_gross_cap,
			   pf_employee_percent, pf_employer_percent, pf_wage_cap,
			   pt_slabs,
			   mlwf_employee, mlwf_employer, mlwf_months,
			   bonus_percent, bonus_wage_cap,
			   created_at, updated_at
		FROM salary_configs
		WHERE company_id = $1
	`

	var c payroll.SalaryConfig
	err := q.QueryRow(ctx, query, companyID).Scan(
		&c.ID, &c.CompanyID,
		&c.BasicPercent, &c.HRAPercent, &c.DAPercent, &c.LTAPercent, &c.PerformancePercent,
		&c.ESIEmployeePercent, &c.ESIEmployerPercent, &c.ESIGrossCap,
		&c.PFEmployeePercent, &c.PFEmployerPercent, &c.PFWageCap,
		&c.PTSlabs,
		&c.MLWFEmployee, &c.MLWFEmployer, &c.MLWFMonths,
		&c.BonusPercent, &c.BonusWageCap,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.SalaryConfig{}, payroll.ErrSalaryConfigNotFound
		}
		return payroll.SalaryConfig{}, fmt.Errorf("failed to get salary config: %w", err)
	}

	return c, nil
}

func (r *salaryConfigRepository) Upsert(ctx context.Context, config payroll.SalaryConfig) (payroll.SalaryConfig, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO salary_configs (
			company_id,
			basic_percent, hra_percent, da_percent, lta_percent, performance_percent,
			esi_employee_percent, esi_employer_percent, esi_gross_cap,
			pf_employee_percent, pf_employer_percent, pf_wage_cap,
			pt_slabs,
			mlwf_employee, mlwf_employer, mlwf_months,
			bonus_percent, bonus_wage_cap
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		ON CONFLICT (company_id) DO UPDATE SET
			basic_percent = EXCLUDED.basic_percent,
			hra_percent = EXCLUDED.hra_percent,
			da_percent = EXCLUDED.da_percent,
			lta_percent = EXCLUDED.lta_percent,
			performance_percent = EXCLUDED.performance_percent,
			esi_employee_percent = EXCLUDED.esi_employee_percent,
			esi_employer_percent = EXCLUDED.esi_employer_percent,
			esi_gross_cap = EXCLUDED.esi_gross_cap,
			pf_employee_percent = EXCLUDED.pf_employee_percent,
			pf_employer_percent = EXCLUDED.pf_employer_percent,
			pf_wage_cap = EXCLUDED.pf_wage_cap,
			pt_slabs = EXCLUDED.pt_slabs,
			mlwf_employee = EXCLUDED.mlwf_employee,
			mlwf_employer = EXCLUDED.mlwf_employer,
			mlwf_months = EXCLUDED.mlwf_months,
			bonus_percent = EXCLUDED.bonus_percent,
			bonus_wage_cap = EXCLUDED.bonus_wage_cap,
			updated_at = NOW()
		RETURNING id, company_id,
			basic_percent, hra_percent, da_percent, lta_percent, performance_percent,
			esi_employee_percent, esi_employer_percent, esi_gross_cap,
			pf_employee_percent, pf_employer_percent, pf_wage_cap,
			pt_slabs,
			mlwf_employee, mlwf_employer, mlwf_months,
			bonus_percent, bonus_wage_cap,
			created_at, updated_at
	`

	var c payroll.SalaryConfig
	err := q.QueryRow(ctx, query,
		config.CompanyID,
		config.BasicPercent, config.HRAPercent, config.DAPercent, config.LTAPercent, config.PerformancePercent,
		config.ESIEmployeePercent, config.ESIEmployerPercent, config.ESIGrossCap,
		config.PFEmployeePercent, config.PFEmployerPercent, config.PFWageCap,
		config.PTSlabs,
		config.MLWFEmployee, config.MLWFEmployer, config.MLWFMonths,
		config.BonusPercent, config.BonusWageCap,
	).Scan(
		&c.ID, &c.CompanyID,
		&c.BasicPercent, &c.HRAPercent, &c.DAPercent, &c.LTAPercent, &c.PerformancePercent,
		&c.ESIEmployeePercent, &c.ESIEmployerPercent, &c.ESIGrossCap,
		&c.PFEmployeePercent, &c.PFEmployerPercent, &c.PFWageCap,
		&c.PTSlabs,
		&c.MLWFEmployee, &c.MLWFEmployer, &c.MLWFMonths,
		&c.BonusPercent, &c.BonusWageCap,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return payroll.SalaryConfig{}, fmt.Errorf("failed to upsert salary config: %w", err)
	}

	return c, nil
}
