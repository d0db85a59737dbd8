package expense

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/zenithhr/payroll-backend-go/internal/pkg/validator"
)

// ========== REQUEST DTOs ==========

type CreateExpenseClaimRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description *string         `json:"description,omitempty"`
}

func (r *CreateExpenseClaimRequest) Validate() error {
	var errs validator.ValidationErrors

	if !r.Amount.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be positive"})
	}
	if validator.IsEmpty(r.Category) {
		errs = append(errs, validator.ValidationError{Field: "category", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RejectExpenseClaimRequest struct {
	Reason string `json:"reason"`
}

func (r *RejectExpenseClaimRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ClaimFilter struct {
	Status      *string `json:"status,omitempty"`
	SubmittedBy *string `json:"submitted_by,omitempty"`
	Page        int     `json:"page"`
	Limit       int     `json:"limit"`
}

// ========== RESPONSE DTOs ==========

type ApprovalStepResponse struct {
	Role      string     `json:"role"`
	Status    string     `json:"status"`
	ActorID   *string    `json:"actor_id,omitempty"`
	DecidedAt *time.Time `json:"decided_at,omitempty"`
	Reason    *string    `json:"reason,omitempty"`
}

type ExpenseClaimResponse struct {
	ID            string                 `json:"id"`
	SubmittedBy   string                 `json:"submitted_by"`
	SubmitterName *string                `json:"submitter_name,omitempty"`
	Amount        decimal.Decimal        `json:"amount"`
	Category      string                 `json:"category"`
	Description   *string                `json:"description,omitempty"`
	Status        string                 `json:"status"`
	CurrentStep   int                    `json:"current_step"`
	ApprovalLevel int                    `json:"approval_level"`
	Steps         []ApprovalStepResponse `json:"steps"`
	RulesVersion  int                    `json:"rules_version"`
	SubmittedAt   time.Time              `json:"submitted_at"`
}

type ListExpenseClaimResponse struct {
	Data       []ExpenseClaimResponse `json:"data"`
	TotalCount int64                  `json:"total_count"`
	Page       int                    `json:"page"`
	Limit      int                    `json:"limit"`
}
