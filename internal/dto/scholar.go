package dto

import (
	"time"

	"github.com/scholarbase/scholarship_portal_api/internal/core/domain"
)

// CreateScholarRequest defines the data needed to enroll a new scholar.
type CreateScholarRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// UpdateScholarRequest defines the fields an admin may change on a scholar
// profile. Pointers distinguish omitted fields from zero values.
type UpdateScholarRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email" binding:"omitempty,email"`
}

// ScholarResponse is the outward shape of any actor record.
type ScholarResponse struct {
	ActorID   string      `json:"actorID"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	Office    *string     `json:"office,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
}

// ListScholarsResponse wraps a paginated scholar listing.
type ListScholarsResponse struct {
	Scholars  []ScholarResponse `json:"scholars"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToScholarResponse converts a domain.Actor to its response DTO.
func ToScholarResponse(a *domain.Actor) ScholarResponse {
	return ScholarResponse{
		ActorID:   a.ActorID,
		Name:      a.Name,
		Email:     a.Email,
		Role:      a.Role,
		Office:    a.Office,
		CreatedAt: a.CreatedAt,
	}
}

// ToListScholarsResponse converts a domain slice plus pagination token.
func ToListScholarsResponse(scholars []domain.Actor, nextToken *string) *ListScholarsResponse {
	out := make([]ScholarResponse, len(scholars))
	for i := range scholars {
		out[i] = ToScholarResponse(&scholars[i])
	}
	return &ListScholarsResponse{Scholars: out, NextToken: nextToken}
}
