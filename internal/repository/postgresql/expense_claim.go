package postgresql

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/zenithhr/payroll-backend-go/internal/domain/expense"
	"github.com/zenithhr/payroll-backend-go/internal/pkg/database"
)

type expenseClaimRepository struct {
	db *database.DB
}

func NewExpenseClaimRepository(db *database.DB) expense.ExpenseClaimRepository {
	return &expenseClaimRepository{db: db}
}

const claimColumns = `
	ec.id, ec.company_id, ec.submitted_by, ec.amount, ec.category, ec.description,
	ec.status, ec.current_step, ec.steps, ec.rules_version, ec.version,
	ec.submitted_at, ec.created_at, ec.updated_at, e.name AS submitter_name
`

func scanClaim(row pgx.Row) (expense.ExpenseClaim, error) {
	var c expense.ExpenseClaim
	err := row.Scan(
		&c.ID, &c.CompanyID, &c.SubmittedBy, &c.Amount, &c.Category, &c.Description,
		&c.Status, &c.CurrentStep, &c.Steps, &c.RulesVersion, &c.Version,
		&c.SubmittedAt, &c.CreatedAt, &c.UpdatedAt, &c.SubmitterName,
	)
	return c, err
}

func (r *expenseClaimRepository) Create(ctx context.Context, claim expense.ExpenseClaim) (expense.ExpenseClaim, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO expense_claims (
			id, company_id, submitted_by, amount, category, description,
			status, current_step, steps, rules_version, version, submitted_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, company_id, submitted_by, amount, category, description,
			status, current_step, steps, rules_version, version,
			submitted_at, created_at, updated_at
	`

	var c expense.ExpenseClaim
	err := q.QueryRow(ctx, query,
		claim.ID, claim.CompanyID, claim.SubmittedBy, claim.Amount, claim.Category, claim.Description,
		claim.Status, claim.CurrentStep, claim.Steps, claim.RulesVersion, claim.Version, claim.SubmittedAt,
	).Scan(
		&c.ID, &c.CompanyID, &c.SubmittedBy, &c.Amount, &c.Category, &c.Description,
		&c.Status, &c.CurrentStep, &c.Steps, &c.RulesVersion, &c.Version,
		&c.SubmittedAt, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return expense.ExpenseClaim{}, fmt.Errorf("failed to create expense claim: %w", err)
	}

	return c, nil
}

func (r *expenseClaimRepository) GetByID(ctx context.Context, id string, companyID string) (expense.ExpenseClaim, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + claimColumns + `
		FROM expense_claims ec
		LEFT JOIN employees e ON e.id = ec.submitted_by
		WHERE ec.id = $1 AND ec.company_id = $2
	`

	c, err := scanClaim(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return expense.ExpenseClaim{}, expense.ErrClaimNotFound
		}
		return expense.ExpenseClaim{}, fmt.Errorf("failed to get expense claim: %w", err)
	}

	return c, nil
}

func (r *expenseClaimRepository) List(ctx context.Context, companyID string, filter expense.ClaimFilter) ([]expense.ExpenseClaim, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"ec.company_id = $1"}
	args := []interface{}{companyID}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, "ec.status = $"+strconv.Itoa(len(args)))
	}
	if filter.SubmittedBy != nil {
		args = append(args, *filter.SubmittedBy)
		conditions = append(conditions, "ec.submitted_by = $"+strconv.Itoa(len(args)))
	}

	where := strings.Join(conditions, " AND ")

	var totalCount int64
	countQuery := "SELECT COUNT(*) FROM expense_claims ec WHERE " + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count expense claims: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit

	args = append(args, limit, offset)
	query := `
		SELECT ` + claimColumns + `
		FROM expense_claims ec
		LEFT JOIN employees e ON e.id = ec.submitted_by
		WHERE ` + where + `
		ORDER BY ec.submitted_at DESC
		LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list expense claims: %w", err)
	}
	defer rows.Close()

	var claims []expense.ExpenseClaim
	for rows.Next() {
		c, err := scanClaim(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan expense claim: %w", err)
		}
		claims = append(claims, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate expense claims: %w", err)
	}

	return claims, totalCount, nil
}

// Update persists a decided claim guarded by the version the decision was
// computed from. A concurrent decision bumps the version first and this
// update touches zero rows. The write and the confirmation read run in one
// transaction.
func (r *expenseClaimRepository) Update(ctx context.Context, claim expense.ExpenseClaim, expectedVersion int) (expense.ExpenseClaim, error) {
	var updated expense.ExpenseClaim

	err := WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)
		q := GetQuerier(txCtx, r.db)

		query := `
			UPDATE expense_claims
			SET status = $1, current_step = $2, steps = $3, version = $4, updated_at = NOW()
			WHERE id = $5 AND company_id = $6 AND version = $7
		`

		tag, err := q.Exec(txCtx, query,
			claim.Status, claim.CurrentStep, claim.Steps, claim.Version,
			claim.ID, claim.CompanyID, expectedVersion,
		)
		if err != nil {
			return fmt.Errorf("failed to update expense claim: %w", err)
		}
		if tag.RowsAffected() == 0 {
			// Either the claim vanished or someone decided it first.
			if _, getErr := r.GetByID(txCtx, claim.ID, claim.CompanyID); getErr != nil {
				return getErr
			}
			return expense.ErrClaimConflict
		}

		updated, err = r.GetByID(txCtx, claim.ID, claim.CompanyID)
		return err
	})
	if err != nil {
		return expense.ExpenseClaim{}, err
	}

	return updated, nil
}
