package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AllowanceComponent is one line item of an allowance (e.g. stipend, book
// allowance, transport).
type AllowanceComponent struct {
	ComponentID string          `json:"componentID"` // Primary Key (UUID)
	AllowanceID string          `json:"allowanceID"` // FK -> allowances.allowance_id
	Name        string          `json:"name"`
	Amount      decimal.Decimal `json:"amount"`
}

// Allowance is a monthly disbursement owed to one scholar. TotalAmount must
// equal the sum of its components at creation time; the only mutation after
// creation is the owning scholar claiming it.
type Allowance struct {
	AllowanceID string               `json:"allowanceID"` // Primary Key (UUID)
	ScholarID   string               `json:"scholarID"`   // FK -> actors.actor_id
	Month       int                  `json:"month"`       // 1..12
	Year        int                  `json:"year"`
	TotalAmount decimal.Decimal      `json:"totalAmount"`
	Components  []AllowanceComponent `json:"components,omitempty"`
	Claimed     bool                 `json:"claimed"`
	ClaimedAt   *time.Time           `json:"claimedAt,omitempty"`
	AuditFields
}

// ComponentSum returns the sum of all component amounts.
func (a Allowance) ComponentSum() decimal.Decimal {
	sum := decimal.Zero
	for _, c := range a.Components {
		sum = sum.Add(c.Amount)
	}
	return sum
}
