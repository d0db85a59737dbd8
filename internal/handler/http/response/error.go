package response

import (
	"errors"
	"net/http"

	"github.com/zenithhr/payroll-backend-go/internal/domain/employee"
	"github.com/zenithhr/payroll-backend-go/internal/domain/expense"
	"github.com/zenithhr/payroll-backend-go/internal/domain/payroll"
	"github.com/zenithhr/payroll-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeInactive):
		BadRequest(w, "Employee is inactive", nil)

	// Payroll domain errors
	case errors.Is(err, payroll.ErrSalaryConfigNotFound):
		NotFound(w, "Salary configuration not found")
	case errors.Is(err, payroll.ErrUnknownTaxRegime):
		BadRequest(w, "Unknown tax regime", nil)
	case errors.Is(err, payroll.ErrPercentagesExceeded):
		BadRequest(w, "Component percentages exceed 100% of gross", nil)

	// Expense domain errors
	case errors.Is(err, expense.ErrClaimNotFound):
		NotFound(w, "Expense claim not found")
	case errors.Is(err, expense.ErrSelfApproval):
		Forbidden(w, "You cannot act on your own expense claim")
	case errors.Is(err, expense.ErrClaimFinalized):
		Conflict(w, "Expense claim already finalized")
	case errors.Is(err, expense.ErrNotCurrentApprover):
		Forbidden(w, "It is not your turn to act on this claim")
	case errors.Is(err, expense.ErrClaimConflict):
		Conflict(w, "Expense claim was modified concurrently, reload and retry")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
