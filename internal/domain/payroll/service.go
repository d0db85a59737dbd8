package payroll

import (
	"context"
	"time"
)

type PayrollService interface {
	// ComputeBreakdown runs the full engine over caller-supplied inputs.
	ComputeBreakdown(ctx context.Context, req ComputeBreakdownRequest) (SalaryBreakdown, error)

	// ComputeEmployeeBreakdown loads the employee record and the company
	// salary configuration, then computes the breakdown for asOf.
	ComputeEmployeeBreakdown(ctx context.Context, employeeID string, asOf time.Time) (SalaryBreakdown, error)

	// ComputeCompanyBreakdowns computes breakdowns for every active employee
	// of the caller's company.
	ComputeCompanyBreakdowns(ctx context.Context, asOf time.Time) ([]SalaryBreakdown, error)

	// ComputeBonus produces the fiscal-year bonus register.
	ComputeBonus(ctx context.Context, req ComputeBonusRequest) (BonusSummary, error)

	GetConfig(ctx context.Context) (SalaryConfigResponse, error)
	UpdateConfig(ctx context.Context, req UpdateSalaryConfigRequest) (SalaryConfigResponse, error)
}
