package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Allowance is the row shape for the allowances table.
type Allowance struct {
	AllowanceID string          `db:"allowance_id"`
	ScholarID   string          `db:"scholar_id"`
	Month       int             `db:"month"`
	Year        int             `db:"year"`
	TotalAmount decimal.Decimal `db:"total_amount"`
	Claimed     bool            `db:"claimed"`
	ClaimedAt   *time.Time      `db:"claimed_at"`
	AuditFields
}

// AllowanceComponent is the row shape for allowance_components.
type AllowanceComponent struct {
	ComponentID string          `db:"component_id"`
	AllowanceID string          `db:"allowance_id"`
	Name        string          `db:"name"`
	Amount      decimal.Decimal `db:"amount"`
}
