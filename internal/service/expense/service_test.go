package expense

import (
	"context"
	"sync"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zenithhr/payroll-backend-go/internal/domain/expense"
)

// fakeClaimRepository keeps claims in memory and enforces the same version
// check the postgres repository does.
type fakeClaimRepository struct {
	mu     sync.Mutex
	claims map[string]expense.ExpenseClaim
}

func newFakeClaimRepository() *fakeClaimRepository {
	return &fakeClaimRepository{claims: make(map[string]expense.ExpenseClaim)}
}

func (r *fakeClaimRepository) Create(ctx context.Context, claim expense.ExpenseClaim) (expense.ExpenseClaim, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.claims[claim.ID] = claim
	return claim, nil
}

func (r *fakeClaimRepository) GetByID(ctx context.Context, id string, companyID string) (expense.ExpenseClaim, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	claim, ok := r.claims[id]
	if !ok || claim.CompanyID != companyID {
		return expense.ExpenseClaim{}, expense.ErrClaimNotFound
	}
	return claim, nil
}

func (r *fakeClaimRepository) List(ctx context.Context, companyID string, filter expense.ClaimFilter) ([]expense.ExpenseClaim, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []expense.ExpenseClaim
	for _, claim := range r.claims {
		if claim.CompanyID != companyID {
			continue
		}
		if filter.Status != nil && string(claim.Status) != *filter.Status {
			continue
		}
		if filter.SubmittedBy != nil && claim.SubmittedBy != *filter.SubmittedBy {
			continue
		}
		out = append(out, claim)
	}
	return out, int64(len(out)), nil
}

func (r *fakeClaimRepository) Update(ctx context.Context, claim expense.ExpenseClaim, expectedVersion int) (expense.ExpenseClaim, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.claims[claim.ID]
	if !ok || stored.CompanyID != claim.CompanyID {
		return expense.ExpenseClaim{}, expense.ErrClaimNotFound
	}
	if stored.Version != expectedVersion {
		return expense.ExpenseClaim{}, expense.ErrClaimConflict
	}
	r.claims[claim.ID] = claim
	return claim, nil
}

var testTokenAuth = jwtauth.New("HS256", []byte("expense-service-test-secret"), nil)

func contextFor(t *testing.T, employeeID string, role expense.ApprovalRole) context.Context {
	t.Helper()
	token, _, err := testTokenAuth.Encode(map[string]interface{}{
		"user_id":     "user-" + employeeID,
		"employee_id": employeeID,
		"company_id":  "company-1",
		"role":        string(role),
		"type":        "access",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func newTestService(repo expense.ExpenseClaimRepository) expense.ExpenseService {
	return NewExpenseService(nil, repo, expense.DefaultApprovalRules())
}

func TestExpenseService_Submit_FreezesChain(t *testing.T) {
	t.Parallel()
	repo := newFakeClaimRepository()
	svc := newTestService(repo)
	ctx := contextFor(t, "emp-1", "")

	created, err := svc.Submit(ctx, expense.CreateExpenseClaimRequest{
		Amount:   decimal.NewFromInt(18000),
		Category: "travel",
	})

	require.NoError(t, err)
	assert.Equal(t, "emp-1", created.SubmittedBy)
	assert.Equal(t, string(expense.ClaimStatusPending), created.Status)
	assert.Equal(t, 2, created.ApprovalLevel)
	assert.Equal(t, 1, created.RulesVersion)
	assert.Equal(t, 0, created.CurrentStep)
}

func TestExpenseService_Submit_ValidationFails(t *testing.T) {
	t.Parallel()
	svc := newTestService(newFakeClaimRepository())
	ctx := contextFor(t, "emp-1", "")

	_, err := svc.Submit(ctx, expense.CreateExpenseClaimRequest{
		Amount:   decimal.NewFromInt(-10),
		Category: "",
	})

	assert.Error(t, err)
}

func TestExpenseService_ApproveChain(t *testing.T) {
	t.Parallel()
	repo := newFakeClaimRepository()
	svc := newTestService(repo)

	created, err := svc.Submit(contextFor(t, "emp-1", ""), expense.CreateExpenseClaimRequest{
		Amount:   decimal.NewFromInt(18000),
		Category: "equipment",
	})
	require.NoError(t, err)

	afterManager, err := svc.Approve(contextFor(t, "mgr-1", expense.RoleManager), created.ID)
	require.NoError(t, err)
	assert.Equal(t, string(expense.ClaimStatusPending), afterManager.Status)
	assert.Equal(t, 1, afterManager.CurrentStep)

	afterSenior, err := svc.Approve(contextFor(t, "sr-1", expense.RoleSeniorManager), created.ID)
	require.NoError(t, err)
	assert.Equal(t, string(expense.ClaimStatusApproved), afterSenior.Status)
}

func TestExpenseService_Approve_SelfApprovalRejected(t *testing.T) {
	t.Parallel()
	repo := newFakeClaimRepository()
	svc := newTestService(repo)

	created, err := svc.Submit(contextFor(t, "mgr-1", expense.RoleManager), expense.CreateExpenseClaimRequest{
		Amount:   decimal.NewFromInt(5000),
		Category: "meals",
	})
	require.NoError(t, err)

	_, err = svc.Approve(contextFor(t, "mgr-1", expense.RoleManager), created.ID)
	assert.ErrorIs(t, err, expense.ErrSelfApproval)

	// the claim is untouched
	got, err := svc.GetByID(contextFor(t, "mgr-1", expense.RoleManager), created.ID)
	require.NoError(t, err)
	assert.Equal(t, string(expense.ClaimStatusPending), got.Status)
	assert.Equal(t, 0, got.CurrentStep)
}

func TestExpenseService_Reject_RequiresReason(t *testing.T) {
	t.Parallel()
	repo := newFakeClaimRepository()
	svc := newTestService(repo)

	created, err := svc.Submit(contextFor(t, "emp-1", ""), expense.CreateExpenseClaimRequest{
		Amount:   decimal.NewFromInt(5000),
		Category: "meals",
	})
	require.NoError(t, err)

	_, err = svc.Reject(contextFor(t, "mgr-1", expense.RoleManager), created.ID, expense.RejectExpenseClaimRequest{})
	assert.Error(t, err)

	rejected, err := svc.Reject(contextFor(t, "mgr-1", expense.RoleManager), created.ID, expense.RejectExpenseClaimRequest{
		Reason: "duplicate submission",
	})
	require.NoError(t, err)
	assert.Equal(t, string(expense.ClaimStatusRejected), rejected.Status)
}

func TestExpenseService_ConcurrentDecisionConflicts(t *testing.T) {
	t.Parallel()
	repo := newFakeClaimRepository()
	svc := newTestService(repo)

	created, err := svc.Submit(contextFor(t, "emp-1", ""), expense.CreateExpenseClaimRequest{
		Amount:   decimal.NewFromInt(5000),
		Category: "travel",
	})
	require.NoError(t, err)

	// both sessions load the claim at version 1
	stale, err := repo.GetByID(context.Background(), created.ID, "company-1")
	require.NoError(t, err)

	// the first session decides, bumping the stored version to 2
	_, err = svc.Reject(contextFor(t, "mgr-1", expense.RoleManager), created.ID, expense.RejectExpenseClaimRequest{
		Reason: "no receipt",
	})
	require.NoError(t, err)

	// the second session's write still expects version 1 and must lose
	stale.Status = expense.ClaimStatusApproved
	stale.Version = 2
	_, err = repo.Update(context.Background(), stale, 1)
	assert.ErrorIs(t, err, expense.ErrClaimConflict)
}

func TestExpenseService_GetByID_OtherCompanyHidden(t *testing.T) {
	t.Parallel()
	repo := newFakeClaimRepository()
	svc := newTestService(repo)

	repo.claims["foreign"] = expense.ExpenseClaim{
		ID:        "foreign",
		CompanyID: "company-2",
		Status:    expense.ClaimStatusPending,
		Version:   1,
	}

	_, err := svc.GetByID(contextFor(t, "emp-1", ""), "foreign")
	assert.ErrorIs(t, err, expense.ErrClaimNotFound)
}

func TestExpenseService_List_FiltersByStatus(t *testing.T) {
	t.Parallel()
	repo := newFakeClaimRepository()
	svc := newTestService(repo)
	submitCtx := contextFor(t, "emp-1", "")

	first, err := svc.Submit(submitCtx, expense.CreateExpenseClaimRequest{
		Amount:   decimal.NewFromInt(5000),
		Category: "travel",
	})
	require.NoError(t, err)
	_, err = svc.Submit(submitCtx, expense.CreateExpenseClaimRequest{
		Amount:   decimal.NewFromInt(8000),
		Category: "meals",
	})
	require.NoError(t, err)

	_, err = svc.Reject(contextFor(t, "mgr-1", expense.RoleManager), first.ID, expense.RejectExpenseClaimRequest{
		Reason: "no receipt",
	})
	require.NoError(t, err)

	rejectedStatus := string(expense.ClaimStatusRejected)
	list, err := svc.List(submitCtx, expense.ClaimFilter{Status: &rejectedStatus, Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(1), list.TotalCount)
	require.Len(t, list.Data, 1)
	assert.Equal(t, first.ID, list.Data[0].ID)
}
