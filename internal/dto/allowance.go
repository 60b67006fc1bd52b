package dto

import (
	"time"

	"github.com/scholarbase/scholarship_portal_api/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AllowanceComponentInput is one line item of a new allowance.
type AllowanceComponentInput struct {
	Name   string          `json:"name" binding:"required"`
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// CreateAllowanceRequest defines the data needed to create an allowance.
// TotalAmount must equal the sum of the component amounts.
type CreateAllowanceRequest struct {
	ScholarID   string                    `json:"scholarID" binding:"required"`
	Month       int                       `json:"month" binding:"required,min=1,max=12"`
	Year        int                       `json:"year" binding:"required,min=2000"`
	TotalAmount decimal.Decimal           `json:"totalAmount" binding:"required"`
	Components  []AllowanceComponentInput `json:"components" binding:"required,min=1,dive"`
}

// AllowanceComponentResponse mirrors domain.AllowanceComponent.
type AllowanceComponentResponse struct {
	ComponentID string          `json:"componentID"`
	Name        string          `json:"name"`
	Amount      decimal.Decimal `json:"amount"`
}

// AllowanceResponse defines the data returned for an allowance.
type AllowanceResponse struct {
	AllowanceID string                       `json:"allowanceID"`
	ScholarID   string                       `json:"scholarID"`
	Month       int                          `json:"month"`
	Year        int                          `json:"year"`
	TotalAmount decimal.Decimal              `json:"totalAmount"`
	Components  []AllowanceComponentResponse `json:"components,omitempty"`
	Claimed     bool                         `json:"claimed"`
	ClaimedAt   *time.Time                   `json:"claimedAt,omitempty"`
	CreatedAt   time.Time                    `json:"createdAt"`
	CreatedBy   string                       `json:"createdBy"`
}

// ListAllowancesResponse wraps a paginated allowance listing.
type ListAllowancesResponse struct {
	Allowances []AllowanceResponse `json:"allowances"`
	NextToken  *string             `json:"nextToken,omitempty"`
}

// ToAllowanceResponse converts a domain.Allowance to its response DTO.
func ToAllowanceResponse(a *domain.Allowance) AllowanceResponse {
	components := make([]AllowanceComponentResponse, len(a.Components))
	for i, c := range a.Components {
		components[i] = AllowanceComponentResponse{
			ComponentID: c.ComponentID,
			Name:        c.Name,
			Amount:      c.Amount,
		}
	}
	return AllowanceResponse{
		AllowanceID: a.AllowanceID,
		ScholarID:   a.ScholarID,
		Month:       a.Month,
		Year:        a.Year,
		TotalAmount: a.TotalAmount,
		Components:  components,
		Claimed:     a.Claimed,
		ClaimedAt:   a.ClaimedAt,
		CreatedAt:   a.CreatedAt,
		CreatedBy:   a.CreatedBy,
	}
}

// ToListAllowancesResponse converts a domain slice plus pagination token.
func ToListAllowancesResponse(allowances []domain.Allowance, nextToken *string) *ListAllowancesResponse {
	out := make([]AllowanceResponse, len(allowances))
	for i := range allowances {
		out[i] = ToAllowanceResponse(&allowances[i])
	}
	return &ListAllowancesResponse{Allowances: out, NextToken: nextToken}
}
