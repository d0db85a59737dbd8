package expense

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/zenithhr/payroll-backend-go/internal/domain/expense"
)

// StepsForAmount freezes the approval chain for a claim amount under the
// given rules. The tier is resolved once at submission and never re-evaluated
// when rules change later.
func StepsForAmount(rules expense.ApprovalRules, amount decimal.Decimal) expense.ApprovalSteps {
	roles := rules.RolesForAmount(amount)

	steps := make(expense.ApprovalSteps, 0, len(roles))
	for _, role := range roles {
		steps = append(steps, expense.ApprovalStep{
			Role:   role,
			Status: expense.StepStatusPending,
		})
	}
	return steps
}

// CanDecide checks whether the actor may approve or reject the claim right
// now. The violations are distinct: a finalized claim, the submitter acting
// on their own claim, and an actor whose role is not the current step's.
func CanDecide(c expense.ExpenseClaim, actor expense.Actor) error {
	if c.IsFinal() {
		return expense.ErrClaimFinalized
	}
	if c.SubmittedBy == actor.ID {
		return expense.ErrSelfApproval
	}
	if c.CurrentStep < 0 || c.CurrentStep >= len(c.Steps) {
		return expense.ErrNotCurrentApprover
	}

	step := c.Steps[c.CurrentStep]
	if step.Status != expense.StepStatusPending || step.Role != actor.Role {
		return expense.ErrNotCurrentApprover
	}

	return nil
}

// ApplyApproval marks the current step approved and either advances the
// pointer or finalizes the claim when the last step signed off.
func ApplyApproval(c expense.ExpenseClaim, actor expense.Actor, at time.Time) (expense.ExpenseClaim, error) {
	if err := CanDecide(c, actor); err != nil {
		return expense.ExpenseClaim{}, err
	}

	steps := make(expense.ApprovalSteps, len(c.Steps))
	copy(steps, c.Steps)

	actorID := actor.ID
	decidedAt := at
	steps[c.CurrentStep].Status = expense.StepStatusApproved
	steps[c.CurrentStep].ActorID = &actorID
	steps[c.CurrentStep].DecidedAt = &decidedAt

	c.Steps = steps
	if c.CurrentStep == len(steps)-1 {
		c.Status = expense.ClaimStatusApproved
	} else {
		c.CurrentStep++
	}

	return c, nil
}

// ApplyRejection marks the current step rejected and terminates the claim
// immediately; remaining steps are never evaluated.
func ApplyRejection(c expense.ExpenseClaim, actor expense.Actor, reason string, at time.Time) (expense.ExpenseClaim, error) {
	if err := CanDecide(c, actor); err != nil {
		return expense.ExpenseClaim{}, err
	}

	steps := make(expense.ApprovalSteps, len(c.Steps))
	copy(steps, c.Steps)

	actorID := actor.ID
	decidedAt := at
	steps[c.CurrentStep].Status = expense.StepStatusRejected
	steps[c.CurrentStep].ActorID = &actorID
	steps[c.CurrentStep].DecidedAt = &decidedAt
	steps[c.CurrentStep].Reason = &reason

	c.Steps = steps
	c.Status = expense.ClaimStatusRejected

	return c, nil
}
