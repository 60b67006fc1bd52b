package repositories

import (
	"context"

	"github.com/scholarbase/scholarship_portal_api/internal/core/domain"
)

// AnnouncementReader defines read operations for announcements.
type AnnouncementReader interface {
	// FindAnnouncementByID retrieves a single announcement.
	FindAnnouncementByID(ctx context.Context, announcementID string) (*domain.Announcement, error)

	// ListAnnouncements retrieves a paginated, newest-first list.
	ListAnnouncements(ctx context.Context, limit int, nextToken *string) ([]domain.Announcement, *string, error)
}

// AnnouncementWriter defines write operations for announcements; each carries
// its audit record into the same transaction.
type AnnouncementWriter interface {
	SaveAnnouncement(ctx context.Context, announcement domain.Announcement, audit domain.AuditRecord) error
	UpdateAnnouncement(ctx context.Context, announcement domain.Announcement, audit domain.AuditRecord) error
	DeleteAnnouncement(ctx context.Context, announcementID string, audit domain.AuditRecord) error
}

// AnnouncementRepositoryFacade combines all announcement-related repository interfaces.
type AnnouncementRepositoryFacade interface {
	AnnouncementReader
	AnnouncementWriter
}
