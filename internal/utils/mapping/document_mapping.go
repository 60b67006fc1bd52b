package mapping

import (
	"github.com/scholarbase/scholarship_portal_api/internal/core/domain"
	"github.com/scholarbase/scholarship_portal_api/internal/models"
)

// ToModelDocument converts a domain Document to a model Document
func ToModelDocument(d domain.Document) models.Document {
	return models.Document{
		DocumentID:  d.DocumentID,
		ScholarID:   d.ScholarID,
		Title:       d.Title,
		Kind:        string(d.Kind),
		FileRef:     d.FileRef,
		Generated:   d.Generated,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainDocument converts a model Document to a domain Document
func ToDomainDocument(m models.Document) domain.Document {
	return domain.Document{
		DocumentID:  m.DocumentID,
		ScholarID:   m.ScholarID,
		Title:       m.Title,
		Kind:        domain.DocumentKind(m.Kind),
		FileRef:     m.FileRef,
		Generated:   m.Generated,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
