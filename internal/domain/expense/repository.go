package expense

import "context"

type ExpenseClaimRepository interface {
	Create(ctx context.Context, claim ExpenseClaim) (ExpenseClaim, error)
	GetByID(ctx context.Context, id string, companyID string) (ExpenseClaim, error)
	List(ctx context.Context, companyID string, filter ClaimFilter) ([]ExpenseClaim, int64, error)

	// Update persists a decided claim iff the stored row still carries
	// expectedVersion; returns ErrClaimConflict otherwise.
	Update(ctx context.Context, claim ExpenseClaim, expectedVersion int) (ExpenseClaim, error)
}
