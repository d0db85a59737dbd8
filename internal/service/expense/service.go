package expense

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"

	"github.com/zenithhr/payroll-backend-go/internal/domain/expense"
	"github.com/zenithhr/payroll-backend-go/internal/pkg/database"
)

type ExpenseServiceImpl struct {
	db        *database.DB
	claimRepo expense.ExpenseClaimRepository
	rules     expense.ApprovalRules
}

func NewExpenseService(
	db *database.DB,
	claimRepo expense.ExpenseClaimRepository,
	rules expense.ApprovalRules,
) expense.ExpenseService {
	return &ExpenseServiceImpl{
		db:        db,
		claimRepo: claimRepo,
		rules:     rules,
	}
}

// Helper to get company and actor identity from JWT context
func getActorFromContext(ctx context.Context) (companyID string, actor expense.Actor, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", expense.Actor{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", expense.Actor{}, fmt.Errorf("company_id claim is missing or invalid")
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", expense.Actor{}, fmt.Errorf("employee_id claim is missing or invalid")
	}

	role, _ := claims["role"].(string)

	return companyID, expense.Actor{ID: employeeID, Role: expense.ApprovalRole(role)}, nil
}

func (s *ExpenseServiceImpl) Submit(ctx context.Context, req expense.CreateExpenseClaimRequest) (expense.ExpenseClaimResponse, error) {
	if err := req.Validate(); err != nil {
		return expense.ExpenseClaimResponse{}, err
	}

	companyID, actor, err := getActorFromContext(ctx)
	if err != nil {
		return expense.ExpenseClaimResponse{}, err
	}

	now := time.Now()
	claim := expense.ExpenseClaim{
		ID:           uuid.NewString(),
		CompanyID:    companyID,
		SubmittedBy:  actor.ID,
		Amount:       req.Amount,
		Category:     req.Category,
		Description:  req.Description,
		Status:       expense.ClaimStatusPending,
		CurrentStep:  0,
		Steps:        StepsForAmount(s.rules, req.Amount),
		RulesVersion: s.rules.Version,
		Version:      1,
		SubmittedAt:  now,
	}

	created, err := s.claimRepo.Create(ctx, claim)
	if err != nil {
		return expense.ExpenseClaimResponse{}, fmt.Errorf("failed to create expense claim: %w", err)
	}

	return mapToClaimResponse(created), nil
}

func (s *ExpenseServiceImpl) Approve(ctx context.Context, claimID string) (expense.ExpenseClaimResponse, error) {
	return s.decide(ctx, claimID, func(c expense.ExpenseClaim, actor expense.Actor) (expense.ExpenseClaim, error) {
		return ApplyApproval(c, actor, time.Now())
	})
}

func (s *ExpenseServiceImpl) Reject(ctx context.Context, claimID string, req expense.RejectExpenseClaimRequest) (expense.ExpenseClaimResponse, error) {
	if err := req.Validate(); err != nil {
		return expense.ExpenseClaimResponse{}, err
	}

	return s.decide(ctx, claimID, func(c expense.ExpenseClaim, actor expense.Actor) (expense.ExpenseClaim, error) {
		return ApplyRejection(c, actor, req.Reason, time.Now())
	})
}

// decide loads the claim, applies the transition and persists it with an
// optimistic version check, so two actors cannot both advance the same claim.
func (s *ExpenseServiceImpl) decide(
	ctx context.Context,
	claimID string,
	apply func(expense.ExpenseClaim, expense.Actor) (expense.ExpenseClaim, error),
) (expense.ExpenseClaimResponse, error) {
	companyID, actor, err := getActorFromContext(ctx)
	if err != nil {
		return expense.ExpenseClaimResponse{}, err
	}

	claim, err := s.claimRepo.GetByID(ctx, claimID, companyID)
	if err != nil {
		return expense.ExpenseClaimResponse{}, err
	}

	decided, err := apply(claim, actor)
	if err != nil {
		return expense.ExpenseClaimResponse{}, err
	}

	expectedVersion := claim.Version
	decided.Version = expectedVersion + 1

	updated, err := s.claimRepo.Update(ctx, decided, expectedVersion)
	if err != nil {
		return expense.ExpenseClaimResponse{}, err
	}

	return mapToClaimResponse(updated), nil
}

func (s *ExpenseServiceImpl) GetByID(ctx context.Context, claimID string) (expense.ExpenseClaimResponse, error) {
	companyID, _, err := getActorFromContext(ctx)
	if err != nil {
		return expense.ExpenseClaimResponse{}, err
	}

	claim, err := s.claimRepo.GetByID(ctx, claimID, companyID)
	if err != nil {
		return expense.ExpenseClaimResponse{}, err
	}

	return mapToClaimResponse(claim), nil
}

func (s *ExpenseServiceImpl) List(ctx context.Context, filter expense.ClaimFilter) (expense.ListExpenseClaimResponse, error) {
	companyID, _, err := getActorFromContext(ctx)
	if err != nil {
		return expense.ListExpenseClaimResponse{}, err
	}

	claims, totalCount, err := s.claimRepo.List(ctx, companyID, filter)
	if err != nil {
		return expense.ListExpenseClaimResponse{}, err
	}

	data := make([]expense.ExpenseClaimResponse, 0, len(claims))
	for _, c := range claims {
		data = append(data, mapToClaimResponse(c))
	}

	return expense.ListExpenseClaimResponse{
		Data:       data,
		TotalCount: totalCount,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

// ========== HELPERS ==========

func mapToClaimResponse(c expense.ExpenseClaim) expense.ExpenseClaimResponse {
	steps := make([]expense.ApprovalStepResponse, 0, len(c.Steps))
	for _, s := range c.Steps {
		steps = append(steps, expense.ApprovalStepResponse{
			Role:      string(s.Role),
			Status:    string(s.Status),
			ActorID:   s.ActorID,
			DecidedAt: s.DecidedAt,
			Reason:    s.Reason,
		})
	}

	return expense.ExpenseClaimResponse{
		ID:            c.ID,
		SubmittedBy:   c.SubmittedBy,
		SubmitterName: c.SubmitterName,
		Amount:        c.Amount,
		Category:      c.Category,
		Description:   c.Description,
		Status:        string(c.Status),
		CurrentStep:   c.CurrentStep,
		ApprovalLevel: len(c.Steps),
		Steps:         steps,
		RulesVersion:  c.RulesVersion,
		SubmittedAt:   c.SubmittedAt,
	}
}
