package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaxRegime enum
type TaxRegime string

const (
	TaxRegimeOld TaxRegime = "old"
	TaxRegimeNew TaxRegime = "new"
)

// Employee entity. The engine only needs the payroll-relevant slice of the
// employee record; the rest of the HR profile lives with the HR service.
type Employee struct {
	ID        string
	CompanyID string
	Name      string
	Code      string
	PAN       *string
	JoinDate  time.Time

	MonthlyCTC decimal.Decimal
	TaxRegime  TaxRegime

	// Statutory enrollment flags
	PFEnabled       bool
	ESIEnabled      bool
	PTEnabled       bool
	MLWFEnabled     bool
	BonusApplicable bool

	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AnnualCTC derives the yearly cost from the stored monthly figure.
func (e Employee) AnnualCTC() decimal.Decimal {
	return e.MonthlyCTC.Mul(decimal.NewFromInt(12))
}
