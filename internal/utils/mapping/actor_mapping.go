package mapping

import (
	"github.com/scholarbase/scholarship_portal_api/internal/core/domain"
	"github.com/scholarbase/scholarship_portal_api/internal/models"
)

// ToModelActor converts a domain Actor to a model Actor
func ToModelActor(d domain.Actor) models.Actor {
	return models.Actor{
		ActorID:      d.ActorID,
		Name:         d.Name,
		Email:        d.Email,
		Role:         string(d.Role),
		Office:       d.Office,
		PasswordHash: d.PasswordHash,
		AuditFields:  ToModelAuditFields(d.AuditFields),
		DeletedAt:    d.DeletedAt,
	}
}

// ToDomainActor converts a model Actor to a domain Actor
func ToDomainActor(m models.Actor) domain.Actor {
	return domain.Actor{
		ActorID:      m.ActorID,
		Name:         m.Name,
		Email:        m.Email,
		Role:         domain.Role(m.Role),
		Office:       m.Office,
		PasswordHash: m.PasswordHash,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
		DeletedAt:    m.DeletedAt,
	}
}
