package mapping

import (
	"github.com/scholarbase/scholarship_portal_api/internal/core/domain"
	"github.com/scholarbase/scholarship_portal_api/internal/models"
)

// ToModelLateSubmissionRequest converts a domain request to its row shape
func ToModelLateSubmissionRequest(d domain.LateSubmissionRequest) models.LateSubmissionRequest {
	return models.LateSubmissionRequest{
		RequestID:  d.RequestID,
		ScholarID:  d.ScholarID,
		Month:      d.Month,
		Year:       d.Year,
		Reason:     d.Reason,
		IsApproved: d.IsApproved,
		DecidedBy:  d.DecidedBy,
		DecidedAt:  d.DecidedAt,
		OpenUntil:  d.OpenUntil,
		CreatedAt:  d.CreatedAt,
	}
}

// ToDomainLateSubmissionRequest converts a row shape to its domain form
func ToDomainLateSubmissionRequest(m models.LateSubmissionRequest) domain.LateSubmissionRequest {
	return domain.LateSubmissionRequest{
		RequestID:  m.RequestID,
		ScholarID:  m.ScholarID,
		Month:      m.Month,
		Year:       m.Year,
		Reason:     m.Reason,
		IsApproved: m.IsApproved,
		DecidedBy:  m.DecidedBy,
		DecidedAt:  m.DecidedAt,
		OpenUntil:  m.OpenUntil,
		CreatedAt:  m.CreatedAt,
	}
}
