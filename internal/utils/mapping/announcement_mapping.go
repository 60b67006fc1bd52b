package mapping

import (
	"github.com/scholarbase/scholarship_portal_api/internal/core/domain"
	"github.com/scholarbase/scholarship_portal_api/internal/models"
)

// ToModelAnnouncement converts a domain Announcement to a model Announcement
func ToModelAnnouncement(d domain.Announcement) models.Announcement {
	return models.Announcement{
		AnnouncementID: d.AnnouncementID,
		Title:          d.Title,
		Body:           d.Body,
		Pinned:         d.Pinned,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAnnouncement converts a model Announcement to a domain Announcement
func ToDomainAnnouncement(m models.Announcement) domain.Announcement {
	return domain.Announcement{
		AnnouncementID: m.AnnouncementID,
		Title:          m.Title,
		Body:           m.Body,
		Pinned:         m.Pinned,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}
