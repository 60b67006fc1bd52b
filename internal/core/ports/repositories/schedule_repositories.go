package repositories

import (
	"context"

	"github.com/scholarbase/scholarship_portal_api/internal/core/domain"
)

// GatheringReader defines read operations for gatherings.
type GatheringReader interface {
	FindGatheringByID(ctx context.Context, gatheringID string) (*domain.Gathering, error)
	ListGatherings(ctx context.Context, limit int, nextToken *string) ([]domain.Gathering, *string, error)
}

// GatheringWriter defines write operations for gatherings.
type GatheringWriter interface {
	// UpsertGathering inserts or replaces the gathering row.
	UpsertGathering(ctx context.Context, gathering domain.Gathering, audit domain.AuditRecord) error
	DeleteGathering(ctx context.Context, gatheringID string, audit domain.AuditRecord) error
}

// MeetingReader defines read operations for meetings.
type MeetingReader interface {
	FindMeetingByID(ctx context.Context, meetingID string) (*domain.Meeting, error)
	ListMeetings(ctx context.Context, limit int, nextToken *string) ([]domain.Meeting, *string, error)
}

// MeetingWriter defines write operations for meetings.
type MeetingWriter interface {
	UpsertMeeting(ctx context.Context, meeting domain.Meeting, audit domain.AuditRecord) error
	DeleteMeeting(ctx context.Context, meetingID string, audit domain.AuditRecord) error
}

// ScheduleRepositoryFacade combines gathering and meeting repository interfaces;
// both entity kinds live behind one repository because the manage-gatherings
// role treats them as one calendar.
type ScheduleRepositoryFacade interface {
	GatheringReader
	GatheringWriter
	MeetingReader
	MeetingWriter
}
