package mapping

import (
	"github.com/scholarbase/scholarship_portal_api/internal/core/domain"
	"github.com/scholarbase/scholarship_portal_api/internal/models"
)

// ToModelGathering converts a domain Gathering to a model Gathering
func ToModelGathering(d domain.Gathering) models.Gathering {
	return models.Gathering{
		GatheringID: d.GatheringID,
		Title:       d.Title,
		Venue:       d.Venue,
		StartsAt:    d.StartsAt,
		EndsAt:      d.EndsAt,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainGathering converts a model Gathering to a domain Gathering
func ToDomainGathering(m models.Gathering) domain.Gathering {
	return domain.Gathering{
		GatheringID: m.GatheringID,
		Title:       m.Title,
		Venue:       m.Venue,
		StartsAt:    m.StartsAt,
		EndsAt:      m.EndsAt,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelMeeting converts a domain Meeting to a model Meeting
func ToModelMeeting(d domain.Meeting) models.Meeting {
	return models.Meeting{
		MeetingID:   d.MeetingID,
		Title:       d.Title,
		Agenda:      d.Agenda,
		ScheduledAt: d.ScheduledAt,
		Location:    d.Location,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainMeeting converts a model Meeting to a domain Meeting
func ToDomainMeeting(m models.Meeting) domain.Meeting {
	return domain.Meeting{
		MeetingID:   m.MeetingID,
		Title:       m.Title,
		Agenda:      m.Agenda,
		ScheduledAt: m.ScheduledAt,
		Location:    m.Location,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
