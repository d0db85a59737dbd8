package expense

import "errors"

var (
	ErrClaimNotFound = errors.New("Expense claim not found")

	// Policy violations, each distinguishable by the caller.
	ErrSelfApproval       = errors.New("Submitter cannot act on their own claim")
	ErrClaimFinalized     = errors.New("Expense claim already finalized")
	ErrNotCurrentApprover = errors.New("Actor is not the current approver for this claim")

	// Optimistic lock lost: someone else decided the claim concurrently.
	ErrClaimConflict = errors.New("Expense claim was modified concurrently")
)
