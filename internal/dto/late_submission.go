package dto

import (
	"time"

	"github.com/scholarbase/scholarship_portal_api/internal/core/domain"
)

// LateSubmissionRequestInput opens a request for one submission period.
// The requesting scholar is taken from the access token, never from the body.
type LateSubmissionRequestInput struct {
	Month  int    `json:"month" binding:"required,min=1,max=12"`
	Year   int    `json:"year" binding:"required,min=2000"`
	Reason string `json:"reason" binding:"required"`
}

// LateSubmissionDecisionInput records an admin decision. OpenUntil is a
// calendar date ("2006-01-02"), optional on approval and ignored when
// rejecting; omitting it on an already-approved request clears the stored
// deadline.
type LateSubmissionDecisionInput struct {
	Approve   bool    `json:"approve"`
	OpenUntil *string `json:"openUntil,omitempty" binding:"omitempty,datetime=2006-01-02"`
}

// LateSubmissionResponse defines the data returned for a late submission request.
type LateSubmissionResponse struct {
	RequestID  string     `json:"requestID"`
	ScholarID  string     `json:"scholarID"`
	Month      int        `json:"month"`
	Year       int        `json:"year"`
	Reason     string     `json:"reason"`
	IsApproved *bool      `json:"isApproved"`
	DecidedBy  *string    `json:"decidedBy,omitempty"`
	DecidedAt  *time.Time `json:"decidedAt,omitempty"`
	OpenUntil  *time.Time `json:"openUntil,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// ListLateSubmissionsResponse wraps a paginated request listing.
type ListLateSubmissionsResponse struct {
	Requests  []LateSubmissionResponse `json:"requests"`
	NextToken *string                  `json:"nextToken,omitempty"`
}

// ToLateSubmissionResponse converts a domain.LateSubmissionRequest to its response DTO.
func ToLateSubmissionResponse(r *domain.LateSubmissionRequest) LateSubmissionResponse {
	return LateSubmissionResponse{
		RequestID:  r.RequestID,
		ScholarID:  r.ScholarID,
		Month:      r.Month,
		Year:       r.Year,
		Reason:     r.Reason,
		IsApproved: r.IsApproved,
		DecidedBy:  r.DecidedBy,
		DecidedAt:  r.DecidedAt,
		OpenUntil:  r.OpenUntil,
		CreatedAt:  r.CreatedAt,
	}
}

// ToListLateSubmissionsResponse converts a domain slice plus pagination token.
func ToListLateSubmissionsResponse(requests []domain.LateSubmissionRequest, nextToken *string) *ListLateSubmissionsResponse {
	out := make([]LateSubmissionResponse, len(requests))
	for i := range requests {
		out[i] = ToLateSubmissionResponse(&requests[i])
	}
	return &ListLateSubmissionsResponse{Requests: out, NextToken: nextToken}
}
