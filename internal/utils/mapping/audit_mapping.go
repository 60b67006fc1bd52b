package mapping

import (
	"github.com/scholarbase/scholarship_portal_api/internal/core/domain"
	"github.com/scholarbase/scholarship_portal_api/internal/models"
)

// ToModelAuditRecord converts a domain AuditRecord to its row shape
func ToModelAuditRecord(d domain.AuditRecord) models.AuditRecord {
	return models.AuditRecord{
		AuditID:     d.AuditID,
		Action:      string(d.Action),
		EntityKind:  string(d.EntityKind),
		EntityID:    d.EntityID,
		Description: d.Description,
		ActorID:     d.ActorID,
		CreatedAt:   d.CreatedAt,
	}
}

// ToDomainAuditRecord converts a row shape to its domain form
func ToDomainAuditRecord(m models.AuditRecord) domain.AuditRecord {
	return domain.AuditRecord{
		AuditID:     m.AuditID,
		Action:      domain.AuditAction(m.Action),
		EntityKind:  domain.EntityKind(m.EntityKind),
		EntityID:    m.EntityID,
		Description: m.Description,
		ActorID:     m.ActorID,
		CreatedAt:   m.CreatedAt,
	}
}
