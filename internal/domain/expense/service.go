package expense

import "context"

type ExpenseService interface {
	Submit(ctx context.Context, req CreateExpenseClaimRequest) (ExpenseClaimResponse, error)
	Approve(ctx context.Context, claimID string) (ExpenseClaimResponse, error)
	Reject(ctx context.Context, claimID string, req RejectExpenseClaimRequest) (ExpenseClaimResponse, error)
	GetByID(ctx context.Context, claimID string) (ExpenseClaimResponse, error)
	List(ctx context.Context, filter ClaimFilter) (ListExpenseClaimResponse, error)
}
