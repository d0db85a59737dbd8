package expense

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ApprovalRole enum
type ApprovalRole string

const (
	RoleManager       ApprovalRole = "manager"
	RoleSeniorManager ApprovalRole = "senior_manager"
	RoleFinance       ApprovalRole = "finance"
)

// ClaimStatus enum
type ClaimStatus string

const (
	ClaimStatusPending  ClaimStatus = "pending"
	ClaimStatusApproved ClaimStatus = "approved"
	ClaimStatusRejected ClaimStatus = "rejected"
)

// StepStatus enum
type StepStatus string

const (
	StepStatusPending  StepStatus = "pending"
	StepStatusApproved StepStatus = "approved"
	StepStatusRejected StepStatus = "rejected"
)

// ApprovalStep is one stop in a claim's approval chain.
type ApprovalStep struct {
	Role      ApprovalRole `json:"role"`
	Status    StepStatus   `json:"status"`
	ActorID   *string      `json:"actor_id,omitempty"`
	DecidedAt *time.Time   `json:"decided_at,omitempty"`
	Reason    *string      `json:"reason,omitempty"`
}

// ApprovalSteps is stored as JSONB on the claim row; the chain is frozen at
// submission and only step statuses mutate afterwards.
type ApprovalSteps []ApprovalStep

// Value implements driver.Valuer for database storage
func (s ApprovalSteps) Value() (driver.Value, error) {
	if len(s) == 0 {
		return nil, nil
	}
	return json.Marshal(s)
}

// Scan implements sql.Scanner for database retrieval
func (s *ApprovalSteps) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan ApprovalSteps: invalid type")
	}

	return json.Unmarshal(bytes, s)
}

// ApprovalTier maps a claim amount band to the roles that must sign off.
// A nil MaxAmount marks the unbounded top tier.
type ApprovalTier struct {
	MaxAmount *decimal.Decimal `json:"max_amount,omitempty"`
	Roles     []ApprovalRole   `json:"roles"`
}

// ApprovalRules is the versioned tier table. The tier is resolved once at
// submission; later rule changes never retier an existing claim.
type ApprovalRules struct {
	Version int            `json:"version"`
	Tiers   []ApprovalTier `json:"tiers"`
}

// DefaultApprovalRules: up to 10000 one manager sign-off, up to 25000 manager
// then senior manager, above that finance signs last.
func DefaultApprovalRules() ApprovalRules {
	upTo := func(v int64) *decimal.Decimal {
		d := decimal.NewFromInt(v)
		return &d
	}

	return ApprovalRules{
		Version: 1,
		Tiers: []ApprovalTier{
			{MaxAmount: upTo(10000), Roles: []ApprovalRole{RoleManager}},
			{MaxAmount: upTo(25000), Roles: []ApprovalRole{RoleManager, RoleSeniorManager}},
			{Roles: []ApprovalRole{RoleManager, RoleSeniorManager, RoleFinance}},
		},
	}
}

// RolesForAmount resolves the approval chain for a claim amount.
func (r ApprovalRules) RolesForAmount(amount decimal.Decimal) []ApprovalRole {
	for _, tier := range r.Tiers {
		if tier.MaxAmount == nil || amount.LessThanOrEqual(*tier.MaxAmount) {
			return tier.Roles
		}
	}
	return nil
}

// ExpenseClaim entity. Version is bumped on every mutation; updates carry the
// expected version so concurrent decisions on the same claim cannot both land.
type ExpenseClaim struct {
	ID          string
	CompanyID   string
	SubmittedBy string

	Amount      decimal.Decimal
	Category    string
	Description *string

	Status       ClaimStatus
	CurrentStep  int
	Steps        ApprovalSteps
	RulesVersion int

	Version     int
	SubmittedAt time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Joined fields
	SubmitterName *string
}

// IsFinal reports whether the claim reached a terminal state.
func (c ExpenseClaim) IsFinal() bool {
	return c.Status == ClaimStatusApproved || c.Status == ClaimStatusRejected
}

// Actor is the authenticated party acting on a claim.
type Actor struct {
	ID   string
	Role ApprovalRole
}
