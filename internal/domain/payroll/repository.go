package payroll

import "context"

type SalaryConfigRepository interface {
	GetByCompanyID(ctx context.Context, companyID string) (SalaryConfig, error)
	Upsert(ctx context.Context, config SalaryConfig) (SalaryConfig, error)
}
