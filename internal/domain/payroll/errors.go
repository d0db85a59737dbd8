package payroll

import "errors"

var (
	ErrSalaryConfigNotFound = errors.New("Salary configuration not found")
	ErrUnknownTaxRegime     = errors.New("Unknown tax regime")
	ErrPercentagesExceeded  = errors.New("Component percentages exceed 100% of gross")
)
