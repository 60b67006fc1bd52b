package dto

import (
	"time"

	"github.com/scholarbase/scholarship_portal_api/internal/core/domain"
)

// ListAuditParams filters the audit ledger listing.
type ListAuditParams struct {
	ListParams
	EntityKind *domain.EntityKind `form:"entityKind" binding:"omitempty,oneof=SCHOLAR ALLOWANCE MEETING GATHERING ANNOUNCEMENT DOCUMENT"`
	EntityID   *string            `form:"entityID"`
	ActorID    *string            `form:"actorID"`
}

// AuditRecordResponse defines the data returned for one ledger entry.
type AuditRecordResponse struct {
	AuditID     string             `json:"auditID"`
	Action      domain.AuditAction `json:"action"`
	EntityKind  domain.EntityKind  `json:"entityKind"`
	EntityID    string             `json:"entityID"`
	Description string             `json:"description"`
	ActorID     string             `json:"actorID"`
	CreatedAt   time.Time          `json:"createdAt"`
}

// ListAuditRecordsResponse wraps a paginated ledger listing.
type ListAuditRecordsResponse struct {
	Records   []AuditRecordResponse `json:"records"`
	NextToken *string               `json:"nextToken,omitempty"`
}

// ToAuditRecordResponse converts a domain.AuditRecord to its response DTO.
func ToAuditRecordResponse(r *domain.AuditRecord) AuditRecordResponse {
	return AuditRecordResponse{
		AuditID:     r.AuditID,
		Action:      r.Action,
		EntityKind:  r.EntityKind,
		EntityID:    r.EntityID,
		Description: r.Description,
		ActorID:     r.ActorID,
		CreatedAt:   r.CreatedAt,
	}
}

// ToListAuditRecordsResponse converts a domain slice plus pagination token.
func ToListAuditRecordsResponse(records []domain.AuditRecord, nextToken *string) *ListAuditRecordsResponse {
	out := make([]AuditRecordResponse, len(records))
	for i := range records {
		out[i] = ToAuditRecordResponse(&records[i])
	}
	return &ListAuditRecordsResponse{Records: out, NextToken: nextToken}
}
